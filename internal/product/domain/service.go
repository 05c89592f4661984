package domain

import (
	"context"
	"time"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/pagination"
)

// Service keeps a product, its variants and the derived has_variant flag consistent.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	AddVariant(ctx context.Context, productID string, req VariantInput) (*VariantResponse, error)
	DeleteVariant(ctx context.Context, productID, variantID string) (*DeleteVariantResult, error)
	UpdateVariant(ctx context.Context, req UpdateVariantRequest) (*VariantResponse, error)
}

// QueryService serves the read paths.
type QueryService interface {
	Get(ctx context.Context, id string) (*Response, error)
	GetVariant(ctx context.Context, id string) (*VariantResponse, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	ListByCategory(ctx context.Context, categoryID string, req ListRequest) (*CategoryListResponse, error)
	Search(ctx context.Context, term string, req ListRequest) (*ListResponse, error)
}

type VariantInput struct {
	SKU      string  `json:"sku"`
	Stock    *int    `json:"stock"`
	ColourID *string `json:"colour_id"`
	SizeID   *string `json:"size_id"`
}

type VariantPatch struct {
	ID       string  `json:"id"`
	SKU      *string `json:"sku"`
	Stock    *int    `json:"stock"`
	ColourID *string `json:"colour_id"`
	SizeID   *string `json:"size_id"`
}

type VariantBatch struct {
	Create []VariantInput `json:"create"`
	Update []VariantPatch `json:"update"`
	Delete []string       `json:"delete"`
}

type CreateRequest struct {
	Name        string         `json:"name"`
	Price       *float64       `json:"price"`
	Description *string        `json:"description"`
	Discount    *float64       `json:"discount"`
	Weight      *float64       `json:"weight"`
	CategoryID  *string        `json:"category_id"`
	Variants    []VariantInput `json:"variants"`
}

// UpdateRequest touches only the fields that are non-nil. An empty CategoryID clears the category.
type UpdateRequest struct {
	ID          string        `json:"-"`
	Name        *string       `json:"name"`
	Price       *float64      `json:"price"`
	Description *string       `json:"description"`
	Discount    *float64      `json:"discount"`
	Weight      *float64      `json:"weight"`
	CategoryID  *string       `json:"category_id"`
	Avatar      *string       `json:"-"`
	Variants    *VariantBatch `json:"variants"`
}

type UpdateVariantRequest struct {
	ID       string  `json:"-"`
	SKU      *string `json:"sku"`
	Stock    *int    `json:"stock"`
	ColourID *string `json:"colour_id"`
	SizeID   *string `json:"size_id"`
}

type ListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

type Response struct {
	ID          string            `json:"id"`
	MerchantID  string            `json:"merchant_id"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Description *string           `json:"description,omitempty"`
	Discount    float64           `json:"discount"`
	Weight      float64           `json:"weight"`
	Avatar      *string           `json:"avatar,omitempty"`
	HasVariant  bool              `json:"has_variant"`
	Merchant    *MerchantRef      `json:"merchant,omitempty"`
	Category    *CategoryRef      `json:"category,omitempty"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type VariantResponse struct {
	ID        string      `json:"id"`
	ProductID string      `json:"product_id"`
	SKU       string      `json:"sku"`
	Stock     int         `json:"stock"`
	ColourID  *string     `json:"colour_id,omitempty"`
	SizeID    *string     `json:"size_id,omitempty"`
	Product   *ProductRef `json:"product,omitempty"`
	Colour    *ColourRef  `json:"colour,omitempty"`
	Size      *SizeRef    `json:"size,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type MerchantRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ColourRef struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Hex  *string `json:"hex,omitempty"`
}

type SizeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductRef struct {
	ID         string `json:"id"`
	MerchantID string `json:"merchant_id"`
	Name       string `json:"name"`
	HasVariant bool   `json:"has_variant"`
}

type ListResponse struct {
	Products   []Response          `json:"products"`
	Pagination pagination.PageInfo `json:"pagination"`
}

type CategoryListResponse struct {
	Category   CategoryRef         `json:"category"`
	Products   []Response          `json:"products"`
	Pagination pagination.PageInfo `json:"pagination"`
}

type RefusalReason string

const (
	ReasonProductNotFound         RefusalReason = "product_not_found"
	ReasonVariantNotFound         RefusalReason = "variant_not_found"
	ReasonCannotDeleteLastVariant RefusalReason = "cannot_delete_last_variant"
)

// DeleteVariantResult reports either a completed deletion or a refusal the caller must branch on.
type DeleteVariantResult struct {
	Success               bool          `json:"success"`
	Reason                RefusalReason `json:"reason,omitempty"`
	DeletedVariantID      string        `json:"deleted_variant_id,omitempty"`
	RemainingVariantCount int64         `json:"remaining_variant_count"`
	ProductHasVariant     bool          `json:"product_has_variant"`
}
