package models

import "fmt"

// CartItem is one line of a cart, unique per (product, color, size) variant.
// The unit price is snapshotted at add time using the viewer's tier.
type CartItem struct {
	ProductID      int64   `json:"product_id"`
	VariantID      string  `json:"variant_id"`
	Name           string  `json:"name,omitempty"`
	Slug           string  `json:"slug,omitempty"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"original_price,omitempty"`
	DiscountPrice  float64 `json:"discount_price,omitempty"`
	WholesalePrice float64 `json:"wholesale_price,omitempty"`
	IsWholesale    bool    `json:"is_wholesale,omitempty"`
	PriceLabel     string  `json:"price_label,omitempty"`
	ColorID        *int64  `json:"color_id,omitempty"`
	ColorName      string  `json:"color_name,omitempty"`
	SizeID         *int64  `json:"size_id,omitempty"`
	SizeName       string  `json:"size_name,omitempty"`
	ThumbnailURL   string  `json:"thumbnail_url,omitempty"`
	Weight         float64 `json:"weight,omitempty"`
	Stock          int     `json:"stock,omitempty"`
}

// VariantKey builds the identity of a cart line from product, color and size.
func VariantKey(productID int64, colorID, sizeID *int64) string {
	color := "default"
	if colorID != nil {
		color = fmt.Sprintf("%d", *colorID)
	}
	size := "default"
	if sizeID != nil {
		size = fmt.Sprintf("%d", *sizeID)
	}
	return fmt.Sprintf("%d_%s_%s", productID, color, size)
}

type CartSummary struct {
	TotalItems  int     `json:"total_items"`
	TotalPrice  float64 `json:"total_price"`
	TotalWeight float64 `json:"total_weight"`
	ItemCount   int     `json:"item_count"`
}

// Summarize computes the aggregate totals the cart page displays.
func Summarize(items []CartItem) CartSummary {
	summary := CartSummary{ItemCount: len(items)}
	for _, item := range items {
		summary.TotalItems += item.Quantity
		summary.TotalPrice += item.Price * float64(item.Quantity)
		summary.TotalWeight += item.Weight * float64(item.Quantity)
	}
	return summary
}
