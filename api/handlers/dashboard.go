package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/api/models"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/chart"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/service"
)

func nowUTC() time.Time { return time.Now().UTC() }

// DashboardHandler serves the aggregate challenge view
type DashboardHandler struct {
	svc *service.Service
}

func NewDashboardHandler(svc *service.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Get handles GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	dash, err := h.svc.Dashboard(nowUTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.FromDashboard(dash))
}

// EquityChart handles GET /api/v1/dashboard/equity.html
func (h *DashboardHandler) EquityChart(c *gin.Context) {
	dash, err := h.svc.Dashboard(nowUTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := chart.RenderEquityCurve(c.Writer, dash.Account.StartBalance, dash.Curve); err != nil {
		_ = c.Error(err)
	}
}

// Failures handles GET /api/v1/failures
func (h *DashboardHandler) Failures(c *gin.Context) {
	dash, err := h.svc.Dashboard(nowUTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	failures := make([]models.FailureResponse, 0, len(dash.Failures))
	for _, f := range dash.Failures {
		failures = append(failures, models.FromFailure(f))
	}
	c.JSON(http.StatusOK, gin.H{"failures": failures})
}
