package models

// Product is the slice of the catalog record the storefront needs for
// pricing and cart snapshots. The catalog itself is owned by the commerce
// backend; this is reference data carried in requests.
type Product struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug,omitempty"`
	Price           Money  `json:"price"`
	DiscountPrice   Money  `json:"discount_price"`
	WholesalePrice  Money  `json:"wholesale_price"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	Stock           int    `json:"stock,omitempty"`
	Weight          Money  `json:"weight,omitempty"`
	MinimumPurchase int    `json:"minimum_purchase,omitempty"`
}

type ProductVariantOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Viewer is the account tier resolved from the request's bearer token.
// Guests are the zero value.
type Viewer struct {
	UserID       int64
	Email        string
	IsWholesaler bool
}
