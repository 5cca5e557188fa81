package models

import "encoding/json"

// UserInfo is the customer block the checkout form submits. Address is
// either a structured object or a bare street string; Address captures the
// raw JSON and is interpreted at order-construction time.
type UserInfo struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   json.RawMessage `json:"address"`
	City      string          `json:"city,omitempty"`
	State     string          `json:"state,omitempty"`
	ZipCode   string          `json:"zip_code,omitempty"`
}

type StructuredAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type ShippingAddress struct {
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
}

type OrderItem struct {
	Product  int64  `json:"product"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
}

type OrderCustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrderCreatePayload is the order-creation request sent to the commerce API.
type OrderCreatePayload struct {
	Items           []OrderItem       `json:"items"`
	CustomerInfo    OrderCustomerInfo `json:"customer_info"`
	ShippingAddress ShippingAddress   `json:"shipping_address"`
	ShippingMethod  json.Number       `json:"shipping_method"`
	CouponCode      string            `json:"coupon_code,omitempty"`
	PaymentMethod   string            `json:"payment_method"`
	Notes           string            `json:"notes,omitempty"`
}

type CalculationSummary struct {
	CartSubtotal   string `json:"cart_subtotal"`
	TotalQuantity  int    `json:"total_quantity"`
	ShippingCost   string `json:"shipping_cost"`
	DiscountAmount string `json:"discount_amount"`
	FinalTotal     string `json:"final_total"`
	Currency       string `json:"currency"`
}

type ShippingDetails struct {
	AvailableMethods      []ShippingMethod  `json:"available_methods"`
	SelectedMethod        *ShippingMethod   `json:"selected_method"`
	RequiresSplitShipping bool              `json:"requires_split_shipping"`
	FreeShippingEligible  bool              `json:"free_shipping_eligible"`
	QualifyingFreeRule    *FreeShippingRule `json:"qualifying_free_rule"`
}

type CouponDetails struct {
	Code             string `json:"code,omitempty"`
	Type             string `json:"type,omitempty"`
	DiscountPercent  string `json:"discount_percent,omitempty"`
	ProductDiscount  string `json:"product_discount,omitempty"`
	ShippingDiscount string `json:"shipping_discount,omitempty"`
	TotalDiscount    string `json:"total_discount,omitempty"`
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
	Valid            *bool  `json:"valid,omitempty"`
}

// ClientInfo is the local correlation annotation attached to successful
// calculations and orders. Monetary fields are never touched by this layer.
type ClientInfo struct {
	Timestamp string          `json:"timestamp"`
	RequestID string          `json:"request_id"`
	OrderID   string          `json:"order_id,omitempty"`
	UserInfo  json.RawMessage `json:"user_info,omitempty"`
}

// CheckoutCalculation is a successful combined calculation, annotated with
// client correlation info.
type CheckoutCalculation struct {
	Success            bool                `json:"success"`
	CalculationSummary *CalculationSummary `json:"calculation_summary,omitempty"`
	CartDetails        json.RawMessage     `json:"cart_details,omitempty"`
	ShippingDetails    *ShippingDetails    `json:"shipping_details,omitempty"`
	CouponDetails      *CouponDetails      `json:"coupon_details,omitempty"`
	Recommendations    json.RawMessage     `json:"recommendations,omitempty"`
	ClientInfo         *ClientInfo         `json:"client_info,omitempty"`
}

// OrderResult is the consolidated outcome of a completed checkout.
type OrderResult struct {
	Success            bool                `json:"success"`
	Order              json.RawMessage     `json:"order"`
	CalculationSummary *CalculationSummary `json:"calculation_summary,omitempty"`
	ShippingDetails    *ShippingDetails    `json:"shipping_details,omitempty"`
	CouponDetails      *CouponDetails      `json:"coupon_details,omitempty"`
	ClientInfo         *ClientInfo         `json:"client_info,omitempty"`
}
