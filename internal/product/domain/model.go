package domain

import "time"

type Product struct {
	ID          int64     `gorm:"primaryKey"`
	MerchantID  int64     `gorm:"not null;index:ix_products_merchant"`
	CategoryID  *int64    `gorm:"index:ix_products_category"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Price       float64   `gorm:"not null"`
	Description *string   `gorm:"type:text"`
	Discount    float64   `gorm:"not null;default:0"`
	Weight      float64   `gorm:"not null;default:0"`
	Avatar      *string   `gorm:"type:text"`
	HasVariant  bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	Merchant *MerchantSummary `gorm:"foreignKey:MerchantID;-:migration"`
	Category *CategorySummary `gorm:"foreignKey:CategoryID;-:migration"`
	Variants []Variant        `gorm:"foreignKey:ProductID;-:migration"`
}

func (Product) TableName() string { return "products" }

type Variant struct {
	ID        int64     `gorm:"primaryKey"`
	ProductID int64     `gorm:"not null;index:ix_variants_product"`
	SKU       string    `gorm:"column:sku;type:varchar(191);not null;uniqueIndex:ux_variants_sku"`
	Stock     int       `gorm:"not null;default:0"`
	ColourID  *int64    `gorm:"index:ix_variants_colour"`
	SizeID    *int64    `gorm:"index:ix_variants_size"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Product *ProductSummary `gorm:"foreignKey:ProductID;-:migration"`
	Colour  *ColourSummary  `gorm:"foreignKey:ColourID;-:migration"`
	Size    *SizeSummary    `gorm:"foreignKey:SizeID;-:migration"`
}

func (Variant) TableName() string { return "variants" }

// Read-only projections used for eager loading.

type MerchantSummary struct {
	ID   int64
	Name string
}

func (MerchantSummary) TableName() string { return "merchants" }

type CategorySummary struct {
	ID   int64
	Name string
	Slug string
}

func (CategorySummary) TableName() string { return "categories" }

type ColourSummary struct {
	ID   int64
	Name string
	Hex  *string
}

func (ColourSummary) TableName() string { return "colours" }

type SizeSummary struct {
	ID   int64
	Name string
}

func (SizeSummary) TableName() string { return "sizes" }

type ProductSummary struct {
	ID         int64
	MerchantID int64
	Name       string
	HasVariant bool
}

func (ProductSummary) TableName() string { return "products" }
