package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription описывает подписку компании на тариф платформы.
// Платёжные события приходят из внешнего биллинга, здесь только отражение.
type Subscription struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	CompanyID          uuid.UUID  `db:"company_id" json:"company_id"`
	Plan               string     `db:"plan" json:"plan"`
	Status             string     `db:"status" json:"status"`
	CurrentPeriodStart time.Time  `db:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `db:"current_period_end" json:"current_period_end"`
	CanceledAt         *time.Time `db:"canceled_at" json:"canceled_at,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// Coupon описывает промокод на скидку при оформлении подписки.
type Coupon struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Code           string     `db:"code" json:"code"`
	PercentOff     int        `db:"percent_off" json:"percent_off"`
	MaxRedemptions *int       `db:"max_redemptions" json:"max_redemptions,omitempty"`
	RedeemedCount  int        `db:"redeemed_count" json:"redeemed_count"`
	ExpiresAt      *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
