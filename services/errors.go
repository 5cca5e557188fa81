package services

import (
	"errors"

	"storefront-api/models"
)

// Blocking business-rule codes. A blocking error halts the checkout flow
// and requires explicit user re-selection; it is never retried.
const (
	CodeInvalidShippingMethod = "INVALID_SHIPPING_METHOD"
	CodeSplitShippingRequired = "SPLIT_SHIPPING_REQUIRED"
	CodeValidationFailed      = "VALIDATION_FAILED"
	CodeCalculationFailed     = "CALCULATION_FAILED"
	CodeOrderCreationFailed   = "ORDER_CREATION_FAILED"
)

// ValidationError rejects a malformed request before any network call.
type ValidationError struct {
	Message     string
	InvalidItem interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BlockingError is a business-rule stop carrying the remediation payload
// the UI needs (available methods, split flag, backend details).
type BlockingError struct {
	Code                  string
	Message               string
	AvailableMethods      []models.ShippingMethod
	RequiresSplitShipping bool
	Details               interface{}
	Status                int
}

func (e *BlockingError) Error() string {
	return e.Code + ": " + e.Message
}

func AsValidationError(err error) (*ValidationError, bool) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation, true
	}
	return nil, false
}

func AsBlockingError(err error) (*BlockingError, bool) {
	var blocking *BlockingError
	if errors.As(err, &blocking) {
		return blocking, true
	}
	return nil, false
}
