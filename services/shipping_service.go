package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-api/models"
	"storefront-api/repositories"
)

// ShippingService asks the commerce backend which shipping methods fit a
// cart and derives the split-shipping verdict from per-item eligibility.
type ShippingService struct {
	commerce repositories.CommerceAPI
}

func NewShippingService(commerce repositories.CommerceAPI) *ShippingService {
	return &ShippingService{commerce: commerce}
}

// ValidateCartItems checks that every line has a positive integer product id
// and quantity. The first offending line is attached to the error.
func ValidateCartItems(items []models.CartItemRequest) error {
	if len(items) == 0 {
		return &ValidationError{Message: "cart_items array is required"}
	}
	for _, item := range items {
		quantity, err := parseQuantity(item.Quantity)
		if err != nil || quantity <= 0 || item.ProductID <= 0 {
			return &ValidationError{
				Message:     "each cart item needs a positive product_id and quantity",
				InvalidItem: item,
			}
		}
	}
	return nil
}

func parseQuantity(raw json.Number) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("quantity missing")
	}
	value, err := raw.Int64()
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

func (s *ShippingService) Analyze(ctx context.Context, items []models.CartItemRequest) (*models.ShippingAnalysisResult, error) {
	if err := ValidateCartItems(items); err != nil {
		return nil, err
	}

	analysis, err := s.commerce.AnalyzeCartShipping(ctx, items)
	if err != nil {
		return nil, err
	}

	result := &models.ShippingAnalysisResult{
		Success:         analysis.Success,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		CartAnalysis:    analysis.CartAnalysis,
		MissingProducts: analysis.MissingProducts,
		Partial:         analysis.Partial,
		Message:         analysis.Message,
	}
	if result.MissingProducts == nil {
		result.MissingProducts = []string{}
	}

	if shipping := analysis.ShippingAnalysis; shipping != nil {
		result.ShippingAnalysis = shipping
		result.AvailableShippingMethods = shipping.AvailableMethods
		result.FreeShippingEligible = shipping.FreeShippingEligible
		result.FreeShippingRule = shipping.QualifyingFreeRule
		result.RequiresSplitShipping = shipping.RequiresSplitShipping
	}
	if result.AvailableShippingMethods == nil {
		result.AvailableShippingMethods = []models.ShippingMethod{}
	}

	// The split verdict is recomputed locally from per-item eligibility when
	// the backend provides it; the backend's aggregate flag is only a
	// fallback for older responses without item detail.
	if analysis.CartAnalysis != nil {
		if split, ok := computeSplitShipping(analysis.CartAnalysis.Items); ok {
			result.RequiresSplitShipping = split
			if result.ShippingAnalysis != nil {
				result.ShippingAnalysis.RequiresSplitShipping = split
			}
		}
	}

	return result, nil
}

// computeSplitShipping intersects per-item eligible method sets. A split is
// required exactly when every item has at least one eligible method but no
// single method covers them all. Returns ok=false when any item lacks
// eligibility data, leaving the verdict to the backend aggregate.
func computeSplitShipping(items []models.CartItemAnalysis) (bool, bool) {
	if len(items) == 0 {
		return false, false
	}

	var intersection map[int64]bool
	for _, item := range items {
		if len(item.EligibleMethodIDs) == 0 {
			return false, false
		}
		if intersection == nil {
			intersection = make(map[int64]bool, len(item.EligibleMethodIDs))
			for _, id := range item.EligibleMethodIDs {
				intersection[id] = true
			}
			continue
		}
		next := make(map[int64]bool)
		for _, id := range item.EligibleMethodIDs {
			if intersection[id] {
				next[id] = true
			}
		}
		intersection = next
	}

	return len(intersection) == 0, true
}
