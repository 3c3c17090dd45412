package models

import "time"

// Membership levels.
const (
	LevelFree    = "free"
	LevelBasic   = "basic"
	LevelPremium = "premium"
)

// MembershipPlan describes a purchasable membership tier.
type MembershipPlan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Level        string `json:"level"` // free | basic | premium
	PeriodType   string `json:"period_type,omitempty"`
	PriceCents   int64  `json:"price_cents"`
	DurationDays int    `json:"duration_days"`
	ImageQuota   int    `json:"image_quota"`
	PremiumQuota int    `json:"premium_quota"`
	Enabled      bool   `json:"enabled"`
	IsDefault    bool   `json:"is_default,omitempty"`
}

// MembershipStatus is the server's view of the user's current tier. The
// effective level falls back to free once the membership expires, without
// the stored level changing.
type MembershipStatus struct {
	UserID         string     `json:"user_id"`
	Level          string     `json:"level"`
	EffectiveLevel string     `json:"effective_level"`
	Display        string     `json:"membership_display,omitempty"`
	IsActive       bool       `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	ImageQuota     int        `json:"image_quota"`
	PremiumQuota   int        `json:"premium_quota"`
	QuotaResetAt   *time.Time `json:"quota_reset_at,omitempty"`
}

// QuotaStatus is the user's remaining generation allowance.
type QuotaStatus struct {
	ImageQuota   int        `json:"image_quota"`
	PremiumQuota int        `json:"premium_quota"`
	QuotaResetAt *time.Time `json:"quota_reset_at,omitempty"`
}

// Order statuses.
const (
	OrderStatusPending  = "PENDING"
	OrderStatusPaid     = "PAID"
	OrderStatusExpired  = "EXPIRED"
	OrderStatusRefunded = "REFUNDED"
)

// Order is a membership purchase record. PayURL points at the external
// payment page and is only set while the order is pending.
type Order struct {
	ID            string     `json:"id"`
	OrderNo       string     `json:"order_no"`
	UserID        string     `json:"user_id"`
	Username      string     `json:"username,omitempty"`
	PlanID        string     `json:"plan_id"`
	PlanName      string     `json:"plan_name,omitempty"`
	AmountCents   int64      `json:"amount_cents"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	PayURL        string     `json:"pay_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}
