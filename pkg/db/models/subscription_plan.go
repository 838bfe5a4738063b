package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/pkg/enums"
)

// SubscriptionPlan captures a discount tier. Rates are fractions in [0,1];
// caps are absolute amounts the computed discount is clamped to.
type SubscriptionPlan struct {
	ID                      enums.PlanID    `gorm:"column:id;primaryKey"`
	Name                    string          `gorm:"column:name;not null"`
	Price                   decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountRate            decimal.Decimal `gorm:"column:discount_rate;type:numeric(5,4);not null"`
	DiscountCap             decimal.Decimal `gorm:"column:discount_cap;type:numeric(12,2);not null"`
	AppointmentDiscountRate decimal.Decimal `gorm:"column:appointment_discount_rate;type:numeric(5,4);not null"`
	AppointmentDiscountCap  decimal.Decimal `gorm:"column:appointment_discount_cap;type:numeric(12,2);not null"`
	CreatedAt               time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// GrantsAppointmentDiscount reports whether the plan discounts consultation fees.
func (p SubscriptionPlan) GrantsAppointmentDiscount() bool {
	return p.AppointmentDiscountRate.IsPositive()
}
