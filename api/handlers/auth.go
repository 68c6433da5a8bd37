package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/api/models"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/auth"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/journal"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	journal *journal.SQLite
	auth    *auth.Service
	log     *slog.Logger
}

func NewAuthHandler(j *journal.SQLite, a *auth.Service, log *slog.Logger) *AuthHandler {
	return &AuthHandler{journal: j, auth: a, log: log}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: "could not hash password"},
		})
		return
	}

	user, err := h.journal.CreateUser(req.Username, req.Email, hash)
	if err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "USERNAME_TAKEN", Message: err.Error()},
		})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: "could not issue token"},
		})
		return
	}

	h.log.Info("user registered", slog.String("username", user.Username))
	c.JSON(http.StatusCreated, models.TokenResponse{Token: token, Username: user.Username})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	user, err := h.journal.GetUser(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"},
		})
		return
	}

	if err := h.auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"},
		})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: "could not issue token"},
		})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token, Username: user.Username})
}
