package services

import (
	"context"
	"log"
	"strings"
	"time"

	"storefront-api/models"
	"storefront-api/repositories"
)

// CouponService lists available coupons and forwards validation to the
// commerce backend. Validation is idempotent and side-effect free; usage
// accounting happens only when an order is actually created.
type CouponService struct {
	commerce repositories.CommerceAPI
}

func NewCouponService(commerce repositories.CommerceAPI) *CouponService {
	return &CouponService{commerce: commerce}
}

// normalizeCoupon uppercases and trims a code; coupons are matched
// case-insensitively everywhere.
func normalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// fallbackCoupons keeps the coupon UI alive when the backend list endpoint
// is unreachable. These mirror permanently-running promotions.
func fallbackCoupons() []models.Coupon {
	return []models.Coupon{
		{
			ID:            "fallback-1",
			Code:          "SAVE10",
			DiscountType:  "percentage",
			DiscountValue: 10,
			MinimumAmount: 0,
			Description:   "Save 10% on your order",
			IsActive:      true,
		},
		{
			ID:                "fallback-2",
			Code:              "WELCOME15",
			DiscountType:      "percentage",
			DiscountValue:     15,
			MinimumAmount:     50,
			FirstTimeUserOnly: true,
			Description:       "15% off for first-time customers",
			IsActive:          true,
		},
	}
}

// List returns coupons currently inside their validity window. Backend
// failure degrades to the static fallback set rather than an error.
func (s *CouponService) List(ctx context.Context) ([]models.Coupon, bool) {
	records, err := s.commerce.ListCoupons(ctx)
	if err != nil {
		log.Printf("coupon list unavailable, serving fallback: %v", err)
		return fallbackCoupons(), true
	}

	now := time.Now()
	coupons := make([]models.Coupon, 0, len(records))
	for _, record := range records {
		if !record.IsActive {
			continue
		}
		if !withinWindow(record.ValidFrom, record.ValidUntil, now) {
			continue
		}
		if record.UsageLimit != nil && record.TimesUsed >= *record.UsageLimit {
			continue
		}
		coupons = append(coupons, models.Coupon{
			ID:                record.ID.String(),
			Code:              strings.ToUpper(record.Code),
			DiscountType:      record.DiscountType,
			DiscountValue:     record.DiscountValue,
			MinimumAmount:     record.MinimumAmount,
			MinQuantity:       record.MinQuantity,
			UserSpecific:      record.UserSpecific,
			FirstTimeUserOnly: record.FirstTimeUserOnly,
			Description:       record.Description,
			ValidFrom:         record.ValidFrom,
			ValidUntil:        record.ValidUntil,
			UsageLimit:        record.UsageLimit,
			TimesUsed:         record.TimesUsed,
			IsActive:          record.IsActive,
		})
	}
	return coupons, false
}

// withinWindow treats unparseable or absent bounds as open-ended.
func withinWindow(from, until string, now time.Time) bool {
	if start, err := parseCouponTime(from); err == nil && now.Before(start) {
		return false
	}
	if end, err := parseCouponTime(until); err == nil && now.After(end) {
		return false
	}
	return true
}

func parseCouponTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, &ValidationError{Message: "unrecognized time format"}
}

// Validate checks one (code, cart, user) triple against the backend. A
// missing code or empty cart is a ValidationError; past that, the result
// always carries valid plus a human-readable message — an invalid coupon is
// a normal answer, not an error, and even infrastructure failure yields a
// structured rejection.
func (s *CouponService) Validate(ctx context.Context, req models.CouponValidateRequest) (*models.CouponValidation, error) {
	code := normalizeCoupon(req.CouponCode)
	if code == "" || len(req.CartItems) == 0 {
		return nil, &ValidationError{Message: "Invalid request. Coupon code and cart items are required."}
	}

	payload := repositories.CouponValidationPayload{
		CouponCode: code,
		CartItems:  req.CartItems,
		CartTotal:  req.CartTotal,
		UserID:     req.UserID,
	}

	verdict, accepted, err := s.commerce.ValidateCoupon(ctx, payload)
	if err != nil {
		log.Printf("coupon validation failed for %s: %v", code, err)
		return &models.CouponValidation{
			Success: false,
			Valid:   false,
			Message: "Unable to validate coupon right now. Please try again.",
		}, nil
	}

	result := &models.CouponValidation{
		Success:           true,
		Valid:             verdict.Valid && accepted,
		Message:           verdict.Message,
		DiscountType:      verdict.DiscountType,
		DiscountValue:     verdict.DiscountValue,
		DiscountAmount:    verdict.DiscountAmount,
		ProductDiscount:   verdict.ProductDiscount,
		ShippingDiscount:  verdict.ShippingDiscount,
		MinCartTotal:      verdict.MinCartTotal,
		MinQuantity:       verdict.MinQuantity,
		UserSpecific:      verdict.UserSpecific,
		FirstTimeUserOnly: verdict.FirstTimeUserOnly,
		IsFirstTimeUser:   verdict.IsFirstTimeUser,
		ExpiresAt:         verdict.ExpiresAt,
		UsageLimit:        verdict.UsageLimit,
		TimesUsed:         verdict.TimesUsed,
	}
	if verdict.UserEligible != nil {
		result.UserEligible = *verdict.UserEligible
	} else {
		result.UserEligible = result.Valid
	}
	if result.Message == "" {
		if result.Valid {
			result.Message = "Coupon applied"
		} else {
			result.Message = "Coupon is not valid for this cart"
		}
	}
	return result, nil
}
