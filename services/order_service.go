package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"time"

	"storefront-api/models"
	"storefront-api/repositories"
	"storefront-api/utils"
)

// OrderService completes a checkout in two phases: the calculation is
// re-validated first, and the order is created only when the calculation
// succeeded with no blocking condition. A calculation failure means zero
// order-creation attempts.
type OrderService struct {
	commerce      repositories.CommerceAPI
	checkout      *CheckoutService
	confirmations repositories.ConfirmationStore
}

func NewOrderService(commerce repositories.CommerceAPI, checkout *CheckoutService, confirmations repositories.ConfirmationStore) *OrderService {
	return &OrderService{commerce: commerce, checkout: checkout, confirmations: confirmations}
}

func (s *OrderService) Submit(ctx context.Context, req models.CompleteCheckoutRequest) (*models.OrderResult, error) {
	if err := validateCompleteCheckout(req); err != nil {
		return nil, err
	}

	// Phase 1: re-run the authoritative calculation. Any blocking condition
	// stops the flow here, before the backend ever sees an order.
	calculation, err := s.checkout.Calculate(ctx, models.CalculationRequest{
		CartItems:                req.CartItems,
		CouponCode:               req.CouponCode,
		SelectedShippingMethodID: req.ShippingMethodID,
		UserID:                   req.UserID,
	})
	if err != nil {
		if rejected, ok := repositories.AsBackendRejected(err); ok {
			return nil, &BlockingError{
				Code:    CodeValidationFailed,
				Message: "Checkout validation failed",
				Details: rejected.Details(),
				Status:  rejected.Status,
			}
		}
		return nil, err
	}

	payload, err := buildOrderPayload(req)
	if err != nil {
		return nil, err
	}

	// Phase 2: create the order. Not retried; a duplicate order is worse
	// than a failed one.
	orderBody, err := s.commerce.CreateOrder(ctx, payload, req.UserID)
	if err != nil {
		if rejected, ok := repositories.AsBackendRejected(err); ok {
			return nil, &BlockingError{
				Code:    CodeOrderCreationFailed,
				Message: "Failed to create order",
				Details: rejected.Details(),
				Status:  rejected.Status,
			}
		}
		return nil, err
	}

	result := &models.OrderResult{
		Success:            true,
		Order:              orderBody,
		CalculationSummary: calculation.CalculationSummary,
		ShippingDetails:    calculation.ShippingDetails,
		CouponDetails:      calculation.CouponDetails,
		ClientInfo: &models.ClientInfo{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: utils.NewRequestID("order"),
			OrderID:   orderIdentifier(orderBody),
		},
	}

	if err := s.confirmations.Put(ctx, result.ClientInfo.RequestID, result); err != nil {
		log.Printf("failed to stash confirmation %s: %v", result.ClientInfo.RequestID, err)
	}

	return result, nil
}

// SubmitRaw forwards an already-shaped order body to the backend without
// the two-phase validation. Used by clients that build the payload
// themselves; the backend's verdict and status pass through untouched.
func (s *OrderService) SubmitRaw(ctx context.Context, body json.RawMessage) (json.RawMessage, int, error) {
	return s.commerce.SubmitRawOrder(ctx, body)
}

// PaymentAccounts proxies the backend's manual-payment account list.
func (s *OrderService) PaymentAccounts(ctx context.Context) (json.RawMessage, error) {
	return s.commerce.GetPaymentAccounts(ctx)
}

// Confirmation retrieves a stashed order result exactly once.
func (s *OrderService) Confirmation(ctx context.Context, requestID string) (*models.OrderResult, error) {
	return s.confirmations.Consume(ctx, requestID)
}

func validateCompleteCheckout(req models.CompleteCheckoutRequest) error {
	if len(req.CartItems) == 0 {
		return &ValidationError{Message: "cart_items is required and must be a non-empty array"}
	}
	if req.UserInfo == nil {
		return &ValidationError{Message: "user_info is required"}
	}

	info := req.UserInfo
	required := []struct {
		field string
		value string
	}{
		{"first_name", info.FirstName},
		{"last_name", info.LastName},
		{"email", info.Email},
		{"phone", info.Phone},
	}
	for _, entry := range required {
		if entry.value == "" {
			return &ValidationError{Message: "user_info." + entry.field + " is required"}
		}
	}
	if len(info.Address) == 0 || bytes.Equal(info.Address, []byte("null")) {
		return &ValidationError{Message: "user_info.address is required"}
	}

	if addressIsObject(info.Address) {
		var address models.StructuredAddress
		if err := json.Unmarshal(info.Address, &address); err != nil {
			return &ValidationError{Message: "user_info.address is malformed"}
		}
		addressFields := []struct {
			field string
			value string
		}{
			{"street", address.Street},
			{"city", address.City},
			{"state", address.State},
			{"zip_code", address.ZipCode},
		}
		for _, entry := range addressFields {
			if entry.value == "" {
				return &ValidationError{Message: "user_info.address." + entry.field + " is required"}
			}
		}
	}

	if err := ValidateCartItems(req.CartItems); err != nil {
		return err
	}

	if req.ShippingMethodID.String() == "" {
		return &ValidationError{Message: "shipping_method_id is required"}
	}
	return nil
}

func addressIsObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func buildOrderPayload(req models.CompleteCheckoutRequest) (models.OrderCreatePayload, error) {
	items := make([]models.OrderItem, 0, len(req.CartItems))
	for _, line := range req.CartItems {
		quantity, err := parseQuantity(line.Quantity)
		if err != nil {
			return models.OrderCreatePayload{}, &ValidationError{
				Message:     "each cart item needs a positive product_id and quantity",
				InvalidItem: line,
			}
		}
		items = append(items, models.OrderItem{
			Product:  line.ProductID,
			Quantity: quantity,
			Color:    line.Color,
			Size:     line.Size,
		})
	}

	info := req.UserInfo
	var shippingAddress models.ShippingAddress
	if addressIsObject(info.Address) {
		var address models.StructuredAddress
		if err := json.Unmarshal(info.Address, &address); err != nil {
			return models.OrderCreatePayload{}, &ValidationError{Message: "user_info.address is malformed"}
		}
		shippingAddress = models.ShippingAddress{
			StreetAddress: address.Street,
			City:          address.City,
			State:         address.State,
			ZipCode:       address.ZipCode,
		}
	} else {
		var street string
		if err := json.Unmarshal(info.Address, &street); err != nil || street == "" {
			return models.OrderCreatePayload{}, &ValidationError{Message: "user_info.address is required"}
		}
		shippingAddress = models.ShippingAddress{
			StreetAddress: street,
			City:          info.City,
			State:         info.State,
			ZipCode:       info.ZipCode,
		}
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = "pending"
	}

	return models.OrderCreatePayload{
		Items: items,
		CustomerInfo: models.OrderCustomerInfo{
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Email:     info.Email,
			Phone:     info.Phone,
		},
		ShippingAddress: shippingAddress,
		ShippingMethod:  req.ShippingMethodID,
		CouponCode:      normalizeCoupon(req.CouponCode),
		PaymentMethod:   payment,
		Notes:           "Order created via storefront API at " + time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// orderIdentifier pulls the backend's id or order number out of the raw
// order body for correlation. Empty when neither is present.
func orderIdentifier(body json.RawMessage) string {
	var order struct {
		ID          json.Number `json:"id"`
		OrderNumber string      `json:"order_number"`
	}
	if err := json.Unmarshal(body, &order); err != nil {
		return ""
	}
	if order.ID.String() != "" {
		return order.ID.String()
	}
	return order.OrderNumber
}
