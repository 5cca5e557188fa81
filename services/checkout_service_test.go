package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"storefront-api/models"
	"storefront-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_InvalidShippingMethod(t *testing.T) {
	fake := &fakeCommerce{
		calculation: &repositories.BackendCalculation{
			Success: true,
			ShippingDetails: &models.ShippingDetails{
				AvailableMethods: []models.ShippingMethod{{ID: "1", Name: "Standard"}},
				SelectedMethod:   nil,
			},
		},
	}
	svc := NewCheckoutService(fake)

	_, err := svc.Calculate(context.Background(), models.CalculationRequest{
		CartItems:                cartItems("1"),
		SelectedShippingMethodID: "99",
	})

	blocking, ok := AsBlockingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidShippingMethod, blocking.Code)
	assert.Len(t, blocking.AvailableMethods, 1)
}

func TestCalculate_SplitShippingBlocksMethodSelection(t *testing.T) {
	fake := &fakeCommerce{
		calculation: &repositories.BackendCalculation{
			Success: true,
			ShippingDetails: &models.ShippingDetails{
				AvailableMethods:      []models.ShippingMethod{{ID: "1"}, {ID: "2"}},
				RequiresSplitShipping: true,
			},
		},
	}
	svc := NewCheckoutService(fake)

	_, err := svc.Calculate(context.Background(), models.CalculationRequest{
		CartItems:                cartItems("1", "1"),
		SelectedShippingMethodID: "1",
	})

	blocking, ok := AsBlockingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeSplitShippingRequired, blocking.Code)
	assert.True(t, blocking.RequiresSplitShipping)
}

func TestCalculate_NoMethodRequestedTolerated(t *testing.T) {
	fake := &fakeCommerce{
		calculation: &repositories.BackendCalculation{
			Success: true,
			CalculationSummary: &models.CalculationSummary{
				CartSubtotal: "100.00", FinalTotal: "110.00",
			},
			ShippingDetails: &models.ShippingDetails{
				AvailableMethods: []models.ShippingMethod{{ID: "1"}},
			},
		},
	}
	svc := NewCheckoutService(fake)

	calculation, err := svc.Calculate(context.Background(), models.CalculationRequest{
		CartItems: cartItems("1"),
	})

	require.NoError(t, err)
	assert.True(t, calculation.Success)
}

func TestCalculate_BackendFailureIsBlocking(t *testing.T) {
	fake := &fakeCommerce{
		calculation: &repositories.BackendCalculation{
			Success: false,
			Error:   "coupon expired",
		},
	}
	svc := NewCheckoutService(fake)

	_, err := svc.Calculate(context.Background(), models.CalculationRequest{
		CartItems: cartItems("1"),
	})

	blocking, ok := AsBlockingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeCalculationFailed, blocking.Code)
	assert.Equal(t, "coupon expired", blocking.Message)
}

func TestCalculate_AnnotatesClientInfoWithoutTouchingTotals(t *testing.T) {
	summary := &models.CalculationSummary{
		CartSubtotal:   "200.00",
		TotalQuantity:  2,
		ShippingCost:   "10.00",
		DiscountAmount: "20.00",
		FinalTotal:     "190.00",
		Currency:       "USD",
	}
	fake := &fakeCommerce{
		calculation: &repositories.BackendCalculation{
			Success:            true,
			CalculationSummary: summary,
		},
	}
	svc := NewCheckoutService(fake)
	userInfo := json.RawMessage(`{"email":"a@b.c"}`)

	calculation, err := svc.Calculate(context.Background(), models.CalculationRequest{
		CartItems: cartItems("2"),
		UserInfo:  userInfo,
	})

	require.NoError(t, err)
	assert.Equal(t, summary, calculation.CalculationSummary)
	require.NotNil(t, calculation.ClientInfo)
	assert.True(t, strings.HasPrefix(calculation.ClientInfo.RequestID, "calc_"))
	assert.NotEmpty(t, calculation.ClientInfo.Timestamp)
	assert.Equal(t, userInfo, calculation.ClientInfo.UserInfo)
}

func TestCalculate_NormalizesCouponAndForwardsFields(t *testing.T) {
	fake := &fakeCommerce{
		calculation: &repositories.BackendCalculation{Success: true},
	}
	svc := NewCheckoutService(fake)

	_, err := svc.Calculate(context.Background(), models.CalculationRequest{
		CartItems:  cartItems("1"),
		CouponCode: " save10 ",
		UserID:     7,
	})

	require.NoError(t, err)
	require.Len(t, fake.calculationPayloads, 1)
	payload := fake.calculationPayloads[0]
	assert.Equal(t, "SAVE10", payload.CouponCode)
	assert.Equal(t, int64(7), payload.UserID)
	assert.Empty(t, payload.SelectedShippingMethodID)
}
