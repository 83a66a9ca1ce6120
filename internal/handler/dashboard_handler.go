package handler

import (
	"net/http"

	"portfoliohub/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	portfolio *service.PortfolioService
}

func NewDashboardHandler(portfolio *service.PortfolioService) *DashboardHandler {
	return &DashboardHandler{portfolio: portfolio}
}

// Budget handles GET /dashboard/budget
func (h *DashboardHandler) Budget(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.Budget())
}

// Workforce handles GET /dashboard/workforce
func (h *DashboardHandler) Workforce(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.Workforce())
}

// Metrics handles GET /dashboard/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.Metrics())
}
