package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/api/models"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/service"
)

// AccountHandler handles account-level operations
type AccountHandler struct {
	svc *service.Service
}

func NewAccountHandler(svc *service.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Reset handles POST /api/v1/accounts/reset. Resets are always explicit:
// a failed challenge stays failed until someone calls this.
func (h *AccountHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	dash, err := h.svc.Dashboard(nowUTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": models.FromAccount(dash.Account)})
}
