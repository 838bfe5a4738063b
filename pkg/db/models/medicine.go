package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is a catalog reference row; never mutated after seeding.
type Medicine struct {
	Key       string          `gorm:"column:key;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Stock     int             `gorm:"column:stock;not null;default:0"`
	Category  string          `gorm:"column:category;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Medicine) TableName() string {
	return "medicines"
}
