package services

import (
	"context"

	"storefront-api/models"
	"storefront-api/repositories"
)

// CartService owns server-side carts. Prices are snapshotted at add time
// with the viewer's tier; adding an existing variant again merges into the
// line's quantity.
type CartService struct {
	store   repositories.CartStore
	pricing *PricingService
}

func NewCartService(store repositories.CartStore, pricing *PricingService) *CartService {
	return &CartService{store: store, pricing: pricing}
}

func (s *CartService) Get(ctx context.Context, cartID string) ([]models.CartItem, error) {
	return s.store.Get(ctx, cartID)
}

func (s *CartService) Add(ctx context.Context, cartID string, req models.AddCartItemRequest, viewer models.Viewer) ([]models.CartItem, error) {
	if req.Product == nil || req.Product.ID <= 0 {
		return nil, &ValidationError{Message: "product with a positive id is required"}
	}
	if req.Quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be a positive integer"}
	}
	if minimum := req.Product.MinimumPurchase; minimum > 1 && req.Quantity < minimum {
		return nil, &ValidationError{
			Message:     "quantity is below the product's minimum purchase",
			InvalidItem: req,
		}
	}

	item := s.snapshot(req, viewer)
	return s.store.Add(ctx, cartID, item)
}

func (s *CartService) UpdateQuantity(ctx context.Context, cartID, variantID string, quantity int) ([]models.CartItem, error) {
	return s.store.UpdateQuantity(ctx, cartID, variantID, quantity)
}

func (s *CartService) Remove(ctx context.Context, cartID, variantID string) ([]models.CartItem, error) {
	return s.store.Remove(ctx, cartID, variantID)
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.store.Clear(ctx, cartID)
}

func (s *CartService) Events() <-chan repositories.CartEvent {
	return s.store.Subscribe()
}

// snapshot freezes the product's identity and the resolved price into a
// cart line keyed by (product, color, size).
func (s *CartService) snapshot(req models.AddCartItemRequest, viewer models.Viewer) models.CartItem {
	product := req.Product
	decision := s.pricing.ResolvePrice(product, viewer)

	var colorID, sizeID *int64
	var colorName, sizeName string
	if req.Color != nil {
		colorID = &req.Color.ID
		colorName = req.Color.Name
	}
	if req.Size != nil {
		sizeID = &req.Size.ID
		sizeName = req.Size.Name
	}

	return models.CartItem{
		ProductID:      product.ID,
		VariantID:      models.VariantKey(product.ID, colorID, sizeID),
		Name:           product.Name,
		Slug:           product.Slug,
		Quantity:       req.Quantity,
		Price:          decision.DisplayPrice,
		OriginalPrice:  decision.OriginalPrice,
		DiscountPrice:  product.DiscountPrice.Float64(),
		WholesalePrice: product.WholesalePrice.Float64(),
		IsWholesale:    decision.IsWholesale,
		PriceLabel:     decision.Label,
		ColorID:        colorID,
		ColorName:      colorName,
		SizeID:         sizeID,
		SizeName:       sizeName,
		ThumbnailURL:   product.ThumbnailURL,
		Weight:         product.Weight.Float64(),
		Stock:          product.Stock,
	}
}
