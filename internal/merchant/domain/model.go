package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Merchant struct {
	ID        int64             `gorm:"primaryKey"`
	Name      string            `gorm:"type:varchar(255);not null"`
	Email     string            `gorm:"type:varchar(191);not null;uniqueIndex:ux_merchants_email"`
	Metadata  datatypes.JSONMap
	CreatedAt time.Time         `gorm:"not null"`
	UpdatedAt time.Time         `gorm:"not null"`
}

func (Merchant) TableName() string { return "merchants" }
