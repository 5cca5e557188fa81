package models

// Coupon as listed by GET /coupons, normalized from the backend record.
type Coupon struct {
	ID                string `json:"id"`
	Code              string `json:"code"`
	DiscountType      string `json:"discount_type"`
	DiscountValue     Money  `json:"discount_value"`
	MinimumAmount     Money  `json:"minimum_amount"`
	MinQuantity       int    `json:"min_quantity_required"`
	UserSpecific      bool   `json:"user_specific"`
	FirstTimeUserOnly bool   `json:"first_time_user_only"`
	Description       string `json:"description,omitempty"`
	ValidFrom         string `json:"valid_from,omitempty"`
	ValidUntil        string `json:"valid_until,omitempty"`
	UsageLimit        *int   `json:"usage_limit,omitempty"`
	TimesUsed         int    `json:"times_used"`
	IsActive          bool   `json:"is_active"`
}

// CouponValidation is the transient result of validating one
// (code, cart, user) triple. Intentionally returned with HTTP 200 even when
// invalid: a non-qualifying coupon is expected traffic, not a failure.
type CouponValidation struct {
	Success           bool    `json:"success"`
	Valid             bool    `json:"valid"`
	Message           string  `json:"message"`
	DiscountType      string  `json:"discount_type,omitempty"`
	DiscountValue     Money   `json:"discount_value,omitempty"`
	DiscountAmount    Money   `json:"discount_amount"`
	ProductDiscount   Money   `json:"product_discount"`
	ShippingDiscount  Money   `json:"shipping_discount"`
	MinCartTotal      *Money  `json:"min_cart_total,omitempty"`
	MinQuantity       *int    `json:"min_quantity_required,omitempty"`
	UserSpecific      bool    `json:"user_specific"`
	FirstTimeUserOnly bool    `json:"first_time_user_only"`
	IsFirstTimeUser   *bool   `json:"is_first_time_user,omitempty"`
	UserEligible      bool    `json:"user_eligible"`
	ExpiresAt         string  `json:"expires_at,omitempty"`
	UsageLimit        *int    `json:"usage_limit,omitempty"`
	TimesUsed         *int    `json:"times_used,omitempty"`
}
