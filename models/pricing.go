package models

// PricingDecision is derived, never stored: which price a viewer pays for a
// product and what they save relative to the regular price.
type PricingDecision struct {
	DisplayPrice   float64 `json:"display_price"`
	OriginalPrice  float64 `json:"original_price"`
	Label          string  `json:"label"`
	IsWholesale    bool    `json:"is_wholesale"`
	SavingsPercent int     `json:"savings_percent"`
}
