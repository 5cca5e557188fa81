package models

import "encoding/json"

// ShippingMethod is the normalized shape callers depend on, regardless of
// backend field naming. Monetary fields stay as the backend sent them.
type ShippingMethod struct {
	ID                 json.Number `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description,omitempty"`
	BasePrice          string      `json:"base_price,omitempty"`
	CalculatedPrice    string      `json:"calculated_price,omitempty"`
	DeliveryEstimate   string      `json:"delivery_estimated_time,omitempty"`
	MaxWeight          *string     `json:"max_weight,omitempty"`
	MaxQuantity        *int        `json:"max_quantity,omitempty"`
	TierApplied        bool        `json:"tier_applied,omitempty"`
	IsFreeShippingRule bool        `json:"is_free_shipping_rule,omitempty"`
}

type FreeShippingRule struct {
	Name            string `json:"name,omitempty"`
	ThresholdAmount string `json:"threshold_amount,omitempty"`
	Description     string `json:"description,omitempty"`
}

// CartItemAnalysis is the backend's per-line breakdown, including which
// shipping methods the line is eligible for.
type CartItemAnalysis struct {
	ProductID          string  `json:"product_id"`
	ProductName        string  `json:"product_name,omitempty"`
	Quantity           int     `json:"quantity"`
	UnitPrice          string  `json:"unit_price,omitempty"`
	ItemTotal          string  `json:"item_total,omitempty"`
	UnitWeight         string  `json:"unit_weight,omitempty"`
	ItemWeight         string  `json:"item_weight,omitempty"`
	ShippingCategory   string  `json:"shipping_category,omitempty"`
	ShippingCategoryID *int64  `json:"shipping_category_id,omitempty"`
	EligibleMethodIDs  []int64 `json:"eligible_method_ids,omitempty"`
}

type CartAnalysis struct {
	Items                   []CartItemAnalysis `json:"items"`
	Subtotal                string             `json:"subtotal"`
	TotalQuantity           int                `json:"total_quantity"`
	TotalWeight             string             `json:"total_weight,omitempty"`
	ShippingCategoriesCount int                `json:"shipping_categories_count,omitempty"`
	ShippingCategoryIDs     []int64            `json:"shipping_category_ids,omitempty"`
}

type ShippingAnalysis struct {
	RequiresSplitShipping bool              `json:"requires_split_shipping"`
	AvailableMethodsCount int               `json:"available_methods_count"`
	AvailableMethods      []ShippingMethod  `json:"available_methods"`
	FreeShippingEligible  bool              `json:"free_shipping_eligible"`
	QualifyingFreeRule    *FreeShippingRule `json:"qualifying_free_rule"`
}

// ShippingAnalysisResult is the stable, flattened shape handed to callers.
// Recomputed fresh for each distinct cart content; never persisted.
type ShippingAnalysisResult struct {
	Success                  bool              `json:"success"`
	Timestamp                string            `json:"timestamp"`
	CartAnalysis             *CartAnalysis     `json:"cart_analysis,omitempty"`
	ShippingAnalysis         *ShippingAnalysis `json:"shipping_analysis,omitempty"`
	AvailableShippingMethods []ShippingMethod  `json:"available_shipping_methods"`
	FreeShippingRule         *FreeShippingRule `json:"free_shipping_rule"`
	RequiresSplitShipping    bool              `json:"requires_split_shipping"`
	FreeShippingEligible     bool              `json:"free_shipping_eligible"`
	MissingProducts          []string          `json:"missing_products"`
	Partial                  bool              `json:"partial"`
	Message                  string            `json:"message,omitempty"`
}
