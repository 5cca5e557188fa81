package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type CouponListResponse struct {
	Success  bool     `json:"success"`
	Fallback bool     `json:"fallback,omitempty"`
	Coupons  []Coupon `json:"coupons"`
	Count    int      `json:"count"`
	Error    string   `json:"error,omitempty"`
}

type PaymentAccountsResponse struct {
	Success  bool        `json:"success"`
	Accounts interface{} `json:"accounts"`
	Error    string      `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Service   string  `json:"service"`
	Uptime    float64 `json:"uptime"`
}

type CartResponse struct {
	Success bool        `json:"success"`
	CartID  string      `json:"cart_id"`
	Items   []CartItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}
