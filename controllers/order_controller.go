package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"storefront-api/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// @Summary Submit raw order
// @Description Forward an already-shaped order payload to the commerce backend; its status passes through
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body object true "Order payload"
// @Success 200 {object} models.Response
// @Router /orders/submit [post]
func (ctrl *OrderController) Submit(c *gin.Context) {
	var body json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON in request body",
		})
		return
	}

	orderBody, status, err := ctrl.Orders.SubmitRaw(c.Request.Context(), body)
	if err != nil {
		log.Printf("raw order submission failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Order submission is temporarily unavailable",
		})
		return
	}

	if status >= 200 && status < 300 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order":   orderBody,
		})
		return
	}

	var details interface{}
	errorMessage := "Failed to submit order"
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(orderBody, &parsed); err == nil && parsed.Error != "" {
		errorMessage = parsed.Error
	}
	if err := json.Unmarshal(orderBody, &details); err != nil {
		details = string(orderBody)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   errorMessage,
		"details": details,
	})
}
