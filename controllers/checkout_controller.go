package controllers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"storefront-api/models"
	"storefront-api/repositories"
	"storefront-api/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	Shipping *services.ShippingService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

func NewCheckoutController(shipping *services.ShippingService, checkout *services.CheckoutService, orders *services.OrderService) *CheckoutController {
	return &CheckoutController{Shipping: shipping, Checkout: checkout, Orders: orders}
}

// @Summary Analyze cart shipping
// @Description Resolve available shipping methods for a cart and detect split-shipping carts
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.ShippingAnalysisRequest true "Cart items"
// @Success 200 {object} models.ShippingAnalysisResult
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/shipping-analysis [post]
func (ctrl *CheckoutController) ShippingAnalysis(c *gin.Context) {
	var req models.ShippingAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message := "Invalid JSON in request body"
		if errors.Is(err, io.EOF) {
			message = "Empty request body"
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   message,
		})
		return
	}

	result, err := ctrl.Shipping.Analyze(c.Request.Context(), req.CartItems)
	if err != nil {
		if validation, ok := services.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":      false,
				"error":        validation.Message,
				"invalid_item": validation.InvalidItem,
			})
			return
		}
		if rejected, ok := repositories.AsBackendRejected(err); ok {
			// A 404 means one or more products vanished; the client should
			// refresh its cart, so hand the items back with a 400.
			if rejected.Status == http.StatusNotFound {
				details := rejected.ErrorField()
				if details == "" {
					details = "One or more products in your cart were not found. Please refresh your cart."
				}
				c.JSON(http.StatusBadRequest, gin.H{
					"success":    false,
					"error":      "Product not found",
					"details":    details,
					"cart_items": req.CartItems,
				})
				return
			}
			c.JSON(rejected.Status, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Backend service error: %d", rejected.Status),
				"details": rejected.Details(),
			})
			return
		}
		log.Printf("shipping analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Shipping analysis is temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Checkout calculation
// @Description Compute authoritative totals for a cart, coupon and shipping selection
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.CalculationRequest true "Calculation request"
// @Success 200 {object} models.CheckoutCalculation
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/calculation [post]
func (ctrl *CheckoutController) Calculation(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON in request body",
		})
		return
	}

	calculation, err := ctrl.Checkout.Calculate(c.Request.Context(), req)
	if err != nil {
		// A backend answer of success:false is not an HTTP failure on this
		// endpoint; the caller inspects the body and surfaces the message.
		if blocking, ok := services.AsBlockingError(err); ok && blocking.Code == services.CodeCalculationFailed {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   blocking.Message,
			})
			return
		}
		ctrl.renderCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, calculation)
}

// @Summary Complete checkout
// @Description Re-validate the calculation and create the order in one flow
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.CompleteCheckoutRequest true "Complete checkout request"
// @Success 200 {object} models.OrderResult
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/complete [post]
func (ctrl *CheckoutController) Complete(c *gin.Context) {
	var req models.CompleteCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON in request body",
		})
		return
	}
	if req.UserID == 0 {
		req.UserID = middlewareUserID(c)
	}

	result, err := ctrl.Orders.Submit(c.Request.Context(), req)
	if err != nil {
		ctrl.renderCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Order confirmation
// @Description Read the one-shot confirmation payload stashed by a completed checkout
// @Tags Checkout
// @Produce json
// @Param request_id path string true "Checkout request id"
// @Success 200 {object} models.OrderResult
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout/confirmation/{request_id} [get]
func (ctrl *CheckoutController) Confirmation(c *gin.Context) {
	requestID := c.Param("request_id")

	result, err := ctrl.Orders.Confirmation(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrConfirmationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Order confirmation not found or already viewed",
			})
			return
		}
		log.Printf("confirmation lookup failed for %s: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// renderCheckoutError maps the error taxonomy onto HTTP responses shared by
// the calculation and completion endpoints.
func (ctrl *CheckoutController) renderCheckoutError(c *gin.Context, err error) {
	if validation, ok := services.AsValidationError(err); ok {
		body := gin.H{
			"success": false,
			"error":   validation.Message,
		}
		if validation.InvalidItem != nil {
			body["invalid_item"] = validation.InvalidItem
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	if blocking, ok := services.AsBlockingError(err); ok {
		body := gin.H{
			"success": false,
			"error":   blocking.Message,
			"code":    blocking.Code,
		}
		if len(blocking.AvailableMethods) > 0 {
			body["available_methods"] = blocking.AvailableMethods
		}
		if blocking.RequiresSplitShipping {
			body["requires_split_shipping"] = true
		}
		if blocking.Details != nil {
			body["details"] = blocking.Details
		}
		status := blocking.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		c.JSON(status, body)
		return
	}

	if rejected, ok := repositories.AsBackendRejected(err); ok {
		c.JSON(rejected.Status, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Backend service error: %d", rejected.Status),
			"details": rejected.Details(),
		})
		return
	}

	if repositories.IsBackendUnavailable(err) {
		log.Printf("commerce backend unavailable: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Checkout is temporarily unavailable. Please try again.",
		})
		return
	}

	log.Printf("checkout internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Internal server error",
		"code":    "INTERNAL_ERROR",
	})
}

// middlewareUserID reads the authenticated user id set by OptionalAuth.
func middlewareUserID(c *gin.Context) int64 {
	if id, ok := c.Get("user_id"); ok {
		if userID, ok := id.(int64); ok {
			return userID
		}
	}
	return 0
}
