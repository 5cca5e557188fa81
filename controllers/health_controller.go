package controllers

import (
	"net/http"
	"time"

	"storefront-api/models"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

type HealthController struct{}

// @Summary Health check
// @Description Liveness probe with service uptime
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (ctrl *HealthController) Check(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "storefront-api",
		Uptime:    time.Since(startedAt).Seconds(),
	})
}
