package services

import (
	"context"
	"time"

	"storefront-api/models"
	"storefront-api/repositories"
	"storefront-api/utils"
)

// CheckoutService runs the combined calculation: subtotal, shipping and
// coupon resolved together by the backend in one consistent pass, then
// checked locally for blocking conditions before anything is shown as final.
type CheckoutService struct {
	commerce repositories.CommerceAPI
}

func NewCheckoutService(commerce repositories.CommerceAPI) *CheckoutService {
	return &CheckoutService{commerce: commerce}
}

// Calculate produces the authoritative totals for a cart. A selected
// shipping method that the backend did not echo back as selected is
// invalid; a split-shipping cart cannot carry a single method selection.
// Both conditions surface as BlockingError rather than totals.
func (s *CheckoutService) Calculate(ctx context.Context, req models.CalculationRequest) (*models.CheckoutCalculation, error) {
	if err := ValidateCartItems(req.CartItems); err != nil {
		return nil, err
	}

	payload := repositories.CalculationPayload{
		CartItems:                req.CartItems,
		CouponCode:               normalizeCoupon(req.CouponCode),
		SelectedShippingMethodID: req.SelectedShippingMethodID,
		UserID:                   req.UserID,
	}

	calculation, err := s.commerce.CheckoutCalculation(ctx, payload)
	if err != nil {
		return nil, err
	}

	if !calculation.Success {
		message := calculation.Error
		if message == "" {
			message = "Checkout calculation failed"
		}
		return nil, &BlockingError{
			Code:    CodeCalculationFailed,
			Message: message,
		}
	}

	methodRequested := req.SelectedShippingMethodID.String() != ""
	if shipping := calculation.ShippingDetails; shipping != nil {
		if shipping.RequiresSplitShipping && methodRequested {
			return nil, &BlockingError{
				Code:                  CodeSplitShippingRequired,
				Message:               "This cart requires split shipping; items cannot ship with a single method",
				AvailableMethods:      shipping.AvailableMethods,
				RequiresSplitShipping: true,
			}
		}
		if methodRequested && shipping.SelectedMethod == nil {
			return nil, &BlockingError{
				Code:             CodeInvalidShippingMethod,
				Message:          "Selected shipping method is not available for this cart",
				AvailableMethods: shipping.AvailableMethods,
			}
		}
	}

	return &models.CheckoutCalculation{
		Success:            true,
		CalculationSummary: calculation.CalculationSummary,
		CartDetails:        calculation.CartDetails,
		ShippingDetails:    calculation.ShippingDetails,
		CouponDetails:      calculation.CouponDetails,
		Recommendations:    calculation.Recommendations,
		ClientInfo: &models.ClientInfo{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: utils.NewRequestID("calc"),
			UserInfo:  req.UserInfo,
		},
	}, nil
}
