package controllers

import (
	"net/http"

	"storefront-api/models"
	"storefront-api/services"

	"github.com/gin-gonic/gin"
)

type CouponController struct {
	Coupons *services.CouponService
}

func NewCouponController(coupons *services.CouponService) *CouponController {
	return &CouponController{Coupons: coupons}
}

// @Summary List coupons
// @Description List currently active coupons; degrades to a static fallback set when the backend is unreachable
// @Tags Coupons
// @Produce json
// @Success 200 {object} models.CouponListResponse
// @Router /coupons [get]
func (ctrl *CouponController) List(c *gin.Context) {
	coupons, fallback := ctrl.Coupons.List(c.Request.Context())

	c.JSON(http.StatusOK, models.CouponListResponse{
		Success:  true,
		Fallback: fallback,
		Coupons:  coupons,
		Count:    len(coupons),
	})
}

// @Summary Validate coupon
// @Description Check a coupon against a cart snapshot. Non-qualifying coupons come back 200 with valid=false
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body models.CouponValidateRequest true "Coupon and cart snapshot"
// @Success 200 {object} models.CouponValidation
// @Failure 400 {object} models.ErrorResponse
// @Router /coupons/validate [post]
func (ctrl *CouponController) Validate(c *gin.Context) {
	var req models.CouponValidateRequest
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

	validation, err := ctrl.Coupons.Validate(c.Request.Context(), req)
	if err != nil {
		if invalid, ok := services.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"valid":   false,
				"message": invalid.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, validation)
}
