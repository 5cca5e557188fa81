package services

import (
	"context"
	"encoding/json"

	"storefront-api/models"
	"storefront-api/repositories"
)

// fakeCommerce implements repositories.CommerceAPI for testing. Each call
// records its payload so tests can assert on what was sent.
type fakeCommerce struct {
	analysis    *repositories.BackendShippingAnalysis
	analysisErr error

	calculation         *repositories.BackendCalculation
	calculationErr      error
	calculationPayloads []repositories.CalculationPayload

	coupons    []repositories.BackendCoupon
	couponsErr error

	validation         *repositories.BackendCouponValidation
	validationAccepted bool
	validationErr      error
	validationPayloads []repositories.CouponValidationPayload

	orderBody     json.RawMessage
	orderErr      error
	orderPayloads []models.OrderCreatePayload
	orderUserIDs  []int64

	rawBody   json.RawMessage
	rawStatus int
	rawErr    error

	accounts    json.RawMessage
	accountsErr error
}

func (f *fakeCommerce) AnalyzeCartShipping(_ context.Context, _ []models.CartItemRequest) (*repositories.BackendShippingAnalysis, error) {
	return f.analysis, f.analysisErr
}

func (f *fakeCommerce) CheckoutCalculation(_ context.Context, payload repositories.CalculationPayload) (*repositories.BackendCalculation, error) {
	f.calculationPayloads = append(f.calculationPayloads, payload)
	return f.calculation, f.calculationErr
}

func (f *fakeCommerce) ListCoupons(_ context.Context) ([]repositories.BackendCoupon, error) {
	return f.coupons, f.couponsErr
}

func (f *fakeCommerce) ValidateCoupon(_ context.Context, payload repositories.CouponValidationPayload) (*repositories.BackendCouponValidation, bool, error) {
	f.validationPayloads = append(f.validationPayloads, payload)
	return f.validation, f.validationAccepted, f.validationErr
}

func (f *fakeCommerce) CreateOrder(_ context.Context, payload models.OrderCreatePayload, userID int64) (json.RawMessage, error) {
	f.orderPayloads = append(f.orderPayloads, payload)
	f.orderUserIDs = append(f.orderUserIDs, userID)
	return f.orderBody, f.orderErr
}

func (f *fakeCommerce) SubmitRawOrder(_ context.Context, _ json.RawMessage) (json.RawMessage, int, error) {
	return f.rawBody, f.rawStatus, f.rawErr
}

func (f *fakeCommerce) GetPaymentAccounts(_ context.Context) (json.RawMessage, error) {
	return f.accounts, f.accountsErr
}
