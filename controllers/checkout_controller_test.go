package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-api/models"
	"storefront-api/repositories"
	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCommerce implements repositories.CommerceAPI with canned responses.
type stubCommerce struct {
	analysis    *repositories.BackendShippingAnalysis
	analysisErr error

	calculation    *repositories.BackendCalculation
	calculationErr error

	validation         *repositories.BackendCouponValidation
	validationAccepted bool

	orderBody json.RawMessage
	orderErr  error

	rawBody   json.RawMessage
	rawStatus int
	rawErr    error

	accounts    json.RawMessage
	accountsErr error
}

func (s *stubCommerce) AnalyzeCartShipping(context.Context, []models.CartItemRequest) (*repositories.BackendShippingAnalysis, error) {
	return s.analysis, s.analysisErr
}

func (s *stubCommerce) CheckoutCalculation(context.Context, repositories.CalculationPayload) (*repositories.BackendCalculation, error) {
	return s.calculation, s.calculationErr
}

func (s *stubCommerce) ListCoupons(context.Context) ([]repositories.BackendCoupon, error) {
	return nil, nil
}

func (s *stubCommerce) ValidateCoupon(context.Context, repositories.CouponValidationPayload) (*repositories.BackendCouponValidation, bool, error) {
	return s.validation, s.validationAccepted, nil
}

func (s *stubCommerce) CreateOrder(context.Context, models.OrderCreatePayload, int64) (json.RawMessage, error) {
	return s.orderBody, s.orderErr
}

func (s *stubCommerce) SubmitRawOrder(context.Context, json.RawMessage) (json.RawMessage, int, error) {
	return s.rawBody, s.rawStatus, s.rawErr
}

func (s *stubCommerce) GetPaymentAccounts(context.Context) (json.RawMessage, error) {
	return s.accounts, s.accountsErr
}

func newTestRouter(stub *stubCommerce) *gin.Engine {
	gin.SetMode(gin.TestMode)

	shippingSvc := services.NewShippingService(stub)
	checkoutSvc := services.NewCheckoutService(stub)
	orderSvc := services.NewOrderService(stub, checkoutSvc, repositories.NewMemoryConfirmationStore(time.Minute))
	couponSvc := services.NewCouponService(stub)
	cartSvc := services.NewCartService(repositories.NewMemoryCartStore(), services.NewPricingService())

	checkoutCtrl := NewCheckoutController(shippingSvc, checkoutSvc, orderSvc)
	couponCtrl := NewCouponController(couponSvc)
	orderCtrl := NewOrderController(orderSvc)
	paymentCtrl := NewPaymentController(orderSvc)
	cartCtrl := NewCartController(cartSvc)
	healthCtrl := &HealthController{}

	router := gin.New()
	router.GET("/health", healthCtrl.Check)
	router.POST("/checkout/shipping-analysis", checkoutCtrl.ShippingAnalysis)
	router.POST("/checkout/calculation", checkoutCtrl.Calculation)
	router.POST("/checkout/complete", checkoutCtrl.Complete)
	router.GET("/checkout/confirmation/:request_id", checkoutCtrl.Confirmation)
	router.POST("/coupons/validate", couponCtrl.Validate)
	router.POST("/orders/submit", orderCtrl.Submit)
	router.GET("/payment/accounts", paymentCtrl.Accounts)
	router.GET("/cart", cartCtrl.Get)
	router.POST("/cart/items", cartCtrl.AddItem)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	parsed := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestShippingAnalysis_EmptyBody(t *testing.T) {
	router := newTestRouter(&stubCommerce{})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/shipping-analysis", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Empty request body", body["error"])
}

func TestShippingAnalysis_InvalidQuantity(t *testing.T) {
	router := newTestRouter(&stubCommerce{})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/shipping-analysis",
		`{"cart_items":[{"product_id":1,"quantity":0}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "invalid_item")
}

func TestShippingAnalysis_ProductNotFoundMapsTo400(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		analysisErr: &repositories.BackendRejectedError{
			Op:     "shipping analysis",
			Status: http.StatusNotFound,
			Body:   []byte(`{"error":"Product 42 not found"}`),
		},
	})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/shipping-analysis",
		`{"cart_items":[{"product_id":42,"quantity":1}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product not found", body["error"])
	assert.Contains(t, body, "cart_items")
}

func TestCalculation_InvalidShippingMethod(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		calculation: &repositories.BackendCalculation{
			Success: true,
			ShippingDetails: &models.ShippingDetails{
				AvailableMethods: []models.ShippingMethod{{ID: "1", Name: "Standard"}},
			},
		},
	})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/calculation",
		`{"cart_items":[{"product_id":1,"quantity":1}],"selected_shipping_method_id":9}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SHIPPING_METHOD", body["code"])
	assert.Contains(t, body, "available_methods")
}

func TestCalculation_Success(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		calculation: &repositories.BackendCalculation{
			Success: true,
			CalculationSummary: &models.CalculationSummary{
				CartSubtotal: "100.00", FinalTotal: "100.00", Currency: "USD",
			},
		},
	})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/calculation",
		`{"cart_items":[{"product_id":1,"quantity":1}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	clientInfo, ok := body["client_info"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, clientInfo["request_id"], "calc_")
}

func TestCalculation_BackendFailureIsHTTP200(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		calculation: &repositories.BackendCalculation{
			Success: false,
			Error:   "Minimum purchase not met",
		},
	})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/calculation",
		`{"cart_items":[{"product_id":1,"quantity":1}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Minimum purchase not met", body["error"])
}

func TestComplete_MissingUserInfo(t *testing.T) {
	router := newTestRouter(&stubCommerce{})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/complete",
		`{"cart_items":[{"product_id":1,"quantity":1}],"shipping_method_id":3}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_info is required", body["error"])
}

func TestComplete_ThenConfirmationConsumedOnce(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		calculation: &repositories.BackendCalculation{
			Success: true,
			ShippingDetails: &models.ShippingDetails{
				AvailableMethods: []models.ShippingMethod{{ID: "3"}},
				SelectedMethod:   &models.ShippingMethod{ID: "3"},
			},
		},
		orderBody: json.RawMessage(`{"id":11}`),
	})

	w, body := doJSON(t, router, http.MethodPost, "/checkout/complete",
		`{"cart_items":[{"product_id":1,"quantity":1}],
		  "user_info":{"first_name":"Ada","last_name":"L","email":"a@b.c","phone":"555",
		               "address":{"street":"1 Main","city":"X","state":"Y","zip_code":"1"}},
		  "shipping_method_id":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	clientInfo := body["client_info"].(map[string]interface{})
	requestID := clientInfo["request_id"].(string)

	w, body = doJSON(t, router, http.MethodGet, "/checkout/confirmation/"+requestID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	w, _ = doJSON(t, router, http.MethodGet, "/checkout/confirmation/"+requestID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCouponValidate_RejectionIsHTTP200(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		validation: &repositories.BackendCouponValidation{
			Valid:   false,
			Message: "Coupon expired",
		},
	})

	w, body := doJSON(t, router, http.MethodPost, "/coupons/validate",
		`{"coupon_code":"OLD","cart_items":[{"product_id":1,"quantity":1}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "Coupon expired", body["message"])
}

func TestCouponValidate_MissingFieldsRejected(t *testing.T) {
	router := newTestRouter(&stubCommerce{})

	w, body := doJSON(t, router, http.MethodPost, "/coupons/validate",
		`{"cart_items":[{"product_id":1,"quantity":1}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "Invalid request. Coupon code and cart items are required.", body["message"])

	w, body = doJSON(t, router, http.MethodPost, "/coupons/validate",
		`{"coupon_code":"SAVE10","cart_items":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["valid"])
}

func TestOrderSubmit_BackendStatusPassesThrough(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		rawBody:   json.RawMessage(`{"error":"invalid items"}`),
		rawStatus: http.StatusUnprocessableEntity,
	})

	w, body := doJSON(t, router, http.MethodPost, "/orders/submit", `{"items":[]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid items", body["error"])
}

func TestPaymentAccounts_FailureDegradesToEmptyList(t *testing.T) {
	router := newTestRouter(&stubCommerce{
		accountsErr: &repositories.BackendUnavailableError{Op: "payment accounts"},
	})

	w, body := doJSON(t, router, http.MethodGet, "/payment/accounts", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, []interface{}{}, body["accounts"])
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubCommerce{})

	w, body := doJSON(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "storefront-api", body["service"])
}

func TestCart_AddAndGetWithHeaderIdentity(t *testing.T) {
	router := newTestRouter(&stubCommerce{})

	req := httptest.NewRequest(http.MethodPost, "/cart/items",
		strings.NewReader(`{"product":{"id":5,"name":"Mug","price":20,"discount_price":15},"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cartID := w.Header().Get("X-Cart-ID")
	require.NotEmpty(t, cartID)

	var cart models.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "5_default_default", cart.Items[0].VariantID)
	assert.Equal(t, 15.0, cart.Items[0].Price)
	assert.Equal(t, 30.0, cart.Summary.TotalPrice)

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-Cart-ID", cartID)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, cartID, cart.CartID)
	require.Len(t, cart.Items, 1)
}
