package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/api/models"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/challenge"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/service"
)

// TradeHandler handles trade submission and listing
type TradeHandler struct {
	svc *service.Service
}

func NewTradeHandler(svc *service.Service) *TradeHandler {
	return &TradeHandler{svc: svc}
}

// Submit handles POST /api/v1/trades
func (h *TradeHandler) Submit(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	candidate, err := req.ToTrade()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "MALFORMED_TIMESTAMP", Message: err.Error()},
		})
		return
	}

	trade, account, err := h.svc.SubmitTrade(candidate)
	switch {
	case errors.Is(err, challenge.ErrInvalidTrade):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_TRADE", Message: err.Error()},
		})
		return
	case errors.Is(err, challenge.ErrTerminalAccount):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "CHALLENGE_CONCLUDED", Message: "challenge already concluded; reset the account to trade again"},
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SubmitTradeResponse{
		Trade:   models.FromTrade(trade),
		Account: models.FromAccount(account),
	})
}

// List handles GET /api/v1/trades
func (h *TradeHandler) List(c *gin.Context) {
	dash, err := h.svc.Dashboard(nowUTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	trades := make([]models.TradeResponse, 0, len(dash.Account.Trades))
	for _, t := range dash.Account.Trades {
		trades = append(trades, models.FromTrade(t))
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades})
}
