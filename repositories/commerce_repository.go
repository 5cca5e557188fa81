package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"storefront-api/config"
	"storefront-api/models"
	"storefront-api/utils"
)

// BackendShippingAnalysis is the wire shape of the backend's per-product
// shipping resolution.
type BackendShippingAnalysis struct {
	Success          bool                     `json:"success"`
	CartAnalysis     *models.CartAnalysis     `json:"cart_analysis"`
	ShippingAnalysis *models.ShippingAnalysis `json:"shipping_analysis"`
	MissingProducts  []string                 `json:"missing_products"`
	Partial          bool                     `json:"partial"`
	Message          string                   `json:"message"`
}

// BackendCalculation is the wire shape of the combined calculation endpoint.
type BackendCalculation struct {
	Success            bool                       `json:"success"`
	Error              string                     `json:"error,omitempty"`
	CalculationSummary *models.CalculationSummary `json:"calculation_summary"`
	CartDetails        json.RawMessage            `json:"cart_details,omitempty"`
	ShippingDetails    *models.ShippingDetails    `json:"shipping_details"`
	CouponDetails      *models.CouponDetails      `json:"coupon_details"`
	Recommendations    json.RawMessage            `json:"recommendations,omitempty"`
}

// CalculationPayload mirrors the backend's request contract. Optional fields
// are omitted entirely, never sent as null.
type CalculationPayload struct {
	CartItems                []models.CartItemRequest `json:"cart_items"`
	CouponCode               string                   `json:"coupon_code,omitempty"`
	SelectedShippingMethodID json.Number              `json:"selected_shipping_method_id,omitempty"`
	UserID                   int64                    `json:"user_id,omitempty"`
}

type CouponValidationPayload struct {
	CouponCode string                   `json:"coupon_code"`
	CartItems  []models.CartItemRequest `json:"cart_items"`
	CartTotal  *models.Money            `json:"cart_total,omitempty"`
	UserID     int64                    `json:"user_id,omitempty"`
}

// BackendCouponValidation is the backend's validation verdict. It is parsed
// even from non-2xx responses: a rejected coupon still carries constraints
// the UI shows.
type BackendCouponValidation struct {
	Valid             bool          `json:"valid"`
	Message           string        `json:"message"`
	DiscountType      string        `json:"discount_type"`
	DiscountValue     models.Money  `json:"discount_value"`
	DiscountAmount    models.Money  `json:"discount_amount"`
	ProductDiscount   models.Money  `json:"product_discount"`
	ShippingDiscount  models.Money  `json:"shipping_discount"`
	MinCartTotal      *models.Money `json:"min_cart_total"`
	MinQuantity       *int          `json:"min_quantity_required"`
	UserSpecific      bool          `json:"user_specific"`
	FirstTimeUserOnly bool          `json:"first_time_user_only"`
	IsFirstTimeUser   *bool         `json:"is_first_time_user"`
	UserEligible      *bool         `json:"user_eligible"`
	ExpiresAt         string        `json:"expires_at"`
	UsageLimit        *int          `json:"usage_limit"`
	TimesUsed         *int          `json:"times_used"`
}

// BackendCoupon is a raw coupon record from the backend list endpoint.
type BackendCoupon struct {
	ID                json.Number  `json:"id"`
	Code              string       `json:"code"`
	DiscountType      string       `json:"discount_type"`
	DiscountValue     models.Money `json:"discount_value"`
	MinimumAmount     models.Money `json:"minimum_amount"`
	MinQuantity       int          `json:"min_quantity_required"`
	UserSpecific      bool         `json:"user_specific"`
	FirstTimeUserOnly bool         `json:"first_time_user_only"`
	Description       string       `json:"description"`
	ValidFrom         string       `json:"valid_from"`
	ValidUntil        string       `json:"valid_until"`
	UsageLimit        *int         `json:"usage_limit"`
	TimesUsed         int          `json:"times_used"`
	IsActive          bool         `json:"is_active"`
}

// CommerceAPI is the outbound surface of the remote commerce backend.
// Services depend on this interface so tests can stand in for the backend.
type CommerceAPI interface {
	AnalyzeCartShipping(ctx context.Context, items []models.CartItemRequest) (*BackendShippingAnalysis, error)
	CheckoutCalculation(ctx context.Context, payload CalculationPayload) (*BackendCalculation, error)
	ListCoupons(ctx context.Context) ([]BackendCoupon, error)
	ValidateCoupon(ctx context.Context, payload CouponValidationPayload) (*BackendCouponValidation, bool, error)
	CreateOrder(ctx context.Context, payload models.OrderCreatePayload, userID int64) (json.RawMessage, error)
	SubmitRawOrder(ctx context.Context, body json.RawMessage) (json.RawMessage, int, error)
	GetPaymentAccounts(ctx context.Context) (json.RawMessage, error)
}

// CommerceRepository talks HTTP JSON to the commerce backend. It is
// stateless; resilience comes from the retry policy on idempotent reads.
type CommerceRepository struct {
	baseURL string
	client  *http.Client
	retry   utils.RetryPolicy
}

func NewCommerceRepository() *CommerceRepository {
	cfg := config.AppConfig
	return &CommerceRepository{
		baseURL: cfg.BackendAPIURL,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
		retry: utils.RetryPolicy{
			MaxAttempts: cfg.RetryMaxAttempts,
			BaseDelay:   cfg.RetryBaseDelay,
			MaxDelay:    5 * cfg.RetryBaseDelay,
			Retryable:   RetryableBackendError,
		},
	}
}

func (r *CommerceRepository) AnalyzeCartShipping(ctx context.Context, items []models.CartItemRequest) (*BackendShippingAnalysis, error) {
	var analysis BackendShippingAnalysis
	op := func() error {
		status, body, err := r.do(ctx, http.MethodPost, "/api/orders/analyze-cart-shipping/", map[string]interface{}{
			"cart_items": items,
		}, nil)
		if err != nil {
			return err
		}
		if status < 200 || status >= 300 {
			return &BackendRejectedError{Op: "shipping analysis", Status: status, Body: body}
		}
		if err := json.Unmarshal(body, &analysis); err != nil {
			return &BackendUnavailableError{Op: "shipping analysis", Cause: err}
		}
		return nil
	}

	if err := r.retry.Do(ctx, op); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *CommerceRepository) CheckoutCalculation(ctx context.Context, payload CalculationPayload) (*BackendCalculation, error) {
	status, body, err := r.do(ctx, http.MethodPost, "/api/enhanced-checkout-calculation/", payload, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &BackendRejectedError{Op: "checkout calculation", Status: status, Body: body}
	}

	var calculation BackendCalculation
	if err := json.Unmarshal(body, &calculation); err != nil {
		return nil, &BackendUnavailableError{Op: "checkout calculation", Cause: err}
	}
	return &calculation, nil
}

func (r *CommerceRepository) ListCoupons(ctx context.Context) ([]BackendCoupon, error) {
	var coupons []BackendCoupon
	op := func() error {
		status, body, err := r.do(ctx, http.MethodGet, "/api/coupons/", nil, nil)
		if err != nil {
			return err
		}
		if status < 200 || status >= 300 {
			return &BackendRejectedError{Op: "coupon list", Status: status, Body: body}
		}

		// The backend returns either a bare array or a paginated envelope.
		if err := json.Unmarshal(body, &coupons); err == nil {
			return nil
		}
		var envelope struct {
			Results []BackendCoupon `json:"results"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return &BackendUnavailableError{Op: "coupon list", Cause: err}
		}
		coupons = envelope.Results
		return nil
	}

	if err := r.retry.Do(ctx, op); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CommerceRepository) ValidateCoupon(ctx context.Context, payload CouponValidationPayload) (*BackendCouponValidation, bool, error) {
	status, body, err := r.do(ctx, http.MethodPost, "/api/coupons/validate/", payload, nil)
	if err != nil {
		return nil, false, err
	}

	var validation BackendCouponValidation
	if err := json.Unmarshal(body, &validation); err != nil {
		if status < 200 || status >= 300 {
			return nil, false, &BackendRejectedError{Op: "coupon validation", Status: status, Body: body}
		}
		return nil, false, &BackendUnavailableError{Op: "coupon validation", Cause: err}
	}

	return &validation, status >= 200 && status < 300, nil
}

func (r *CommerceRepository) CreateOrder(ctx context.Context, payload models.OrderCreatePayload, userID int64) (json.RawMessage, error) {
	headers := map[string]string{}
	if userID > 0 {
		headers["X-User-ID"] = fmt.Sprintf("%d", userID)
	}

	status, body, err := r.do(ctx, http.MethodPost, "/api/orders/", payload, headers)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &BackendRejectedError{Op: "order creation", Status: status, Body: body}
	}
	return json.RawMessage(body), nil
}

func (r *CommerceRepository) SubmitRawOrder(ctx context.Context, rawBody json.RawMessage) (json.RawMessage, int, error) {
	status, body, err := r.do(ctx, http.MethodPost, "/api/orders/", rawBody, nil)
	if err != nil {
		return nil, 0, err
	}
	return json.RawMessage(body), status, nil
}

func (r *CommerceRepository) GetPaymentAccounts(ctx context.Context) (json.RawMessage, error) {
	var accounts json.RawMessage
	op := func() error {
		status, body, err := r.do(ctx, http.MethodGet, "/api/payment/accounts/", nil, nil)
		if err != nil {
			return err
		}
		if status < 200 || status >= 300 {
			return &BackendRejectedError{Op: "payment accounts", Status: status, Body: body}
		}
		accounts = json.RawMessage(body)
		return nil
	}

	if err := r.retry.Do(ctx, op); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *CommerceRepository) do(ctx context.Context, method, path string, payload interface{}, headers map[string]string) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, &BackendUnavailableError{Op: method + " " + path, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &BackendUnavailableError{Op: method + " " + path, Cause: err}
	}

	return resp.StatusCode, body, nil
}
