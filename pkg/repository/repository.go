package repository

import (
	"context"
	"errors"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/option"
	"gorm.io/gorm"
)

// ErrNotFound is returned by Update and Delete when no row matched the id.
var ErrNotFound = errors.New("record_not_found")

// Repository is a generic gorm-backed store for simple reference tables.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, query *T, opts ...option.QueryOption) (int64, error)
}
