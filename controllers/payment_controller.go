package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"storefront-api/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Orders *services.OrderService
}

func NewPaymentController(orders *services.OrderService) *PaymentController {
	return &PaymentController{Orders: orders}
}

// @Summary List payment accounts
// @Description Proxy the backend's manual-payment account list; failures degrade to an empty list
// @Tags Payments
// @Produce json
// @Success 200 {object} models.PaymentAccountsResponse
// @Router /payment/accounts [get]
func (ctrl *PaymentController) Accounts(c *gin.Context) {
	accounts, err := ctrl.Orders.PaymentAccounts(c.Request.Context())
	if err != nil {
		log.Printf("payment accounts unavailable: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"success":  false,
			"accounts": []interface{}{},
			"error":    "Payment accounts are temporarily unavailable",
		})
		return
	}

	var parsed interface{}
	if err := json.Unmarshal(accounts, &parsed); err != nil || parsed == nil {
		parsed = []interface{}{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"accounts": parsed,
	})
}
