package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Doctor is a catalog reference row; never mutated after seeding.
type Doctor struct {
	ID        int             `gorm:"column:id;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Specialty string          `gorm:"column:specialty;not null"`
	Rating    float64         `gorm:"column:rating;not null;default:0"`
	Available bool            `gorm:"column:available;not null;default:true"`
	Fee       decimal.Decimal `gorm:"column:fee;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Doctor) TableName() string {
	return "doctors"
}
