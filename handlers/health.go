package handlers

import (
	"net/http"

	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health. It reports the latest dependency
// snapshot; a degraded dependency answers 503 for load-balancer draining.
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
