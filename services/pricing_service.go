package services

import (
	"math"

	"storefront-api/models"
)

// PricingService decides which price a viewer pays. Pure computation, no
// side effects; missing or malformed numeric fields degrade to zero.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

func (s *PricingService) ResolvePrice(product *models.Product, viewer models.Viewer) models.PricingDecision {
	regular := product.Price.Float64()
	discount := product.DiscountPrice.Float64()
	wholesale := product.WholesalePrice.Float64()

	if viewer.IsWholesaler && wholesale > 0 {
		return models.PricingDecision{
			DisplayPrice:   wholesale,
			OriginalPrice:  regular,
			Label:          "Wholesale Price",
			IsWholesale:    true,
			SavingsPercent: savingsPercent(regular, wholesale),
		}
	}

	if discount > 0 {
		return models.PricingDecision{
			DisplayPrice:   discount,
			OriginalPrice:  regular,
			Label:          "Discounted Price",
			SavingsPercent: savingsPercent(regular, discount),
		}
	}

	return models.PricingDecision{
		DisplayPrice: regular,
		Label:        "Regular Price",
	}
}

// savingsPercent is a rounded integer in [0,100]; a zero regular price
// yields 0 rather than dividing by zero.
func savingsPercent(regular, applied float64) int {
	if regular <= 0 || applied >= regular {
		return 0
	}
	percent := int(math.Round((regular - applied) / regular * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
