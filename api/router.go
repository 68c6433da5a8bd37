// Package api wires the gin router: auth endpoints are public, everything
// else under /api/v1 requires a valid session token.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/api/handlers"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/api/middleware"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/auth"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/journal"
	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/service"
)

func NewRouter(svc *service.Service, j *journal.SQLite, authService *auth.Service, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	authHandler := handlers.NewAuthHandler(j, authService, log)
	tradeHandler := handlers.NewTradeHandler(svc)
	dashboardHandler := handlers.NewDashboardHandler(svc)
	accountHandler := handlers.NewAccountHandler(svc)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(authService))
		{
			protected.GET("/dashboard", dashboardHandler.Get)
			protected.GET("/dashboard/equity.html", dashboardHandler.EquityChart)
			protected.GET("/failures", dashboardHandler.Failures)
			protected.POST("/trades", tradeHandler.Submit)
			protected.GET("/trades", tradeHandler.List)
			protected.POST("/accounts/reset", accountHandler.Reset)
		}
	}

	return router
}
