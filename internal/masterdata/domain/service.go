package domain

import (
	"context"
	"time"
)

// Service manages the reference tables products and variants point at. Deleting an entry
// detaches it from every product or variant that referenced it.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error

	ListColours(ctx context.Context) ([]ColourResponse, error)
	CreateColour(ctx context.Context, req ColourRequest) (*ColourResponse, error)
	UpdateColour(ctx context.Context, id string, req ColourRequest) (*ColourResponse, error)
	DeleteColour(ctx context.Context, id string) error

	ListSizes(ctx context.Context) ([]SizeResponse, error)
	CreateSize(ctx context.Context, req SizeRequest) (*SizeResponse, error)
	UpdateSize(ctx context.Context, id string, req SizeRequest) (*SizeResponse, error)
	DeleteSize(ctx context.Context, id string) error
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type ColourRequest struct {
	Name string  `json:"name"`
	Hex  *string `json:"hex"`
}

type SizeRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"sort_order"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ColourResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hex       *string   `json:"hex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SizeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
