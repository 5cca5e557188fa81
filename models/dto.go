package models

import "encoding/json"

// CartItemRequest is a cart line as submitted by checkout endpoints.
// Quantity and price tolerate string encodings from older clients.
type CartItemRequest struct {
	ProductID int64       `json:"product_id"`
	Quantity  json.Number `json:"quantity"`
	Color     string      `json:"color,omitempty"`
	Size      string      `json:"size,omitempty"`
	Price     Money       `json:"price,omitempty"`
}

type ShippingAnalysisRequest struct {
	CartItems []CartItemRequest `json:"cart_items"`
}

type CalculationRequest struct {
	CartItems                []CartItemRequest `json:"cart_items"`
	CouponCode               string            `json:"coupon_code,omitempty"`
	SelectedShippingMethodID json.Number       `json:"selected_shipping_method_id,omitempty"`
	UserID                   int64             `json:"user_id,omitempty"`
	UserInfo                 json.RawMessage   `json:"user_info,omitempty"`
}

type CompleteCheckoutRequest struct {
	CartItems        []CartItemRequest `json:"cart_items"`
	UserInfo         *UserInfo         `json:"user_info"`
	ShippingMethodID json.Number       `json:"shipping_method_id,omitempty"`
	CouponCode       string            `json:"coupon_code,omitempty"`
	PaymentMethod    string            `json:"payment_method,omitempty"`
	UserID           int64             `json:"user_id,omitempty"`
}

type CouponValidateRequest struct {
	CouponCode string            `json:"coupon_code"`
	CartItems  []CartItemRequest `json:"cart_items"`
	CartTotal  *Money            `json:"cart_total,omitempty"`
	UserID     int64             `json:"user_id,omitempty"`
}

type AddCartItemRequest struct {
	Product  *Product              `json:"product"`
	Quantity int                   `json:"quantity"`
	Color    *ProductVariantOption `json:"color,omitempty"`
	Size     *ProductVariantOption `json:"size,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
