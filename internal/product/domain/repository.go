package domain

import (
	"context"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/pagination"
	"gorm.io/gorm"
)

// ProductRepository performs single-row product operations. Every call runs on the
// supplied handle, which is either the root connection or an open transaction.
type ProductRepository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64, lock bool) (*Product, error)
	FindWithAssociations(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id int64, fields map[string]any) error
	UpdateHasVariant(ctx context.Context, db *gorm.DB, id int64, hasVariant bool) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, int64, error)
	FindCategory(ctx context.Context, db *gorm.DB, id int64) (*CategorySummary, error)
	FindMerchant(ctx context.Context, db *gorm.DB, id int64) (*MerchantSummary, error)
}

type VariantRepository interface {
	Insert(ctx context.Context, db *gorm.DB, variant *Variant) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Variant, error)
	FindBySKU(ctx context.Context, db *gorm.DB, sku string, excludeID int64) (*Variant, error)
	CountByProduct(ctx context.Context, db *gorm.DB, productID int64) (int64, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id int64, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	DeleteByIDs(ctx context.Context, db *gorm.DB, productID int64, ids []int64) (int64, error)
	DeleteByProduct(ctx context.Context, db *gorm.DB, productID int64) error
	FindWithAssociations(ctx context.Context, db *gorm.DB, id int64) (*Variant, error)
	FindColour(ctx context.Context, db *gorm.DB, id int64) (*ColourSummary, error)
	FindSize(ctx context.Context, db *gorm.DB, id int64) (*SizeSummary, error)
}

type ListOrder string

const (
	OrderByNameAsc       ListOrder = "name_asc"
	OrderByCreatedAtDesc ListOrder = "created_at_desc"
)

type ListFilter struct {
	CategoryID *int64
	NameTerm   string
	OrderBy    ListOrder
	Page       pagination.Pagination
}
