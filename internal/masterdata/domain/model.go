package domain

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_categories_name"`
	Slug      string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_categories_slug"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Category) TableName() string { return "categories" }

type Colour struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_colours_name"`
	Hex       *string   `gorm:"type:varchar(7)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Colour) TableName() string { return "colours" }

type Size struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_sizes_name"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Size) TableName() string { return "sizes" }
