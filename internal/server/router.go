package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitanimal-backend/internal/handlers"
	"github.com/yungbote/habitanimal-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	ActivityHandler     *handlers.ActivityHandler
	CompletionHandler   *handlers.CompletionHandler
	DashboardHandler    *handlers.DashboardHandler
	WeightConfigHandler *handlers.WeightConfigHandler
	TriggerHandler      *handlers.TriggerHandler
	WhoopHandler        *handlers.WhoopHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Activities
	api.POST("/activities", cfg.ActivityHandler.Create)
	api.GET("/activities", cfg.ActivityHandler.List)
	api.POST("/activities/:id/archive", cfg.ActivityHandler.Archive)
	api.POST("/activities/:id/unarchive", cfg.ActivityHandler.Unarchive)

	// Completions
	api.POST("/activities/:id/complete", cfg.CompletionHandler.Complete)
	api.DELETE("/activities/:id/complete", cfg.CompletionHandler.Uncomplete)
	api.GET("/activities/:id/completions", cfg.CompletionHandler.History)

	// Dashboard
	api.GET("/dashboard", cfg.DashboardHandler.GetDashboard)
	api.GET("/score", cfg.DashboardHandler.GetScore)
	api.GET("/streak", cfg.DashboardHandler.GetStreak)
	api.GET("/companions", cfg.DashboardHandler.ListCompanions)

	// Weights
	api.GET("/weights", cfg.WeightConfigHandler.Get)
	api.PUT("/weights", cfg.WeightConfigHandler.Update)

	// Auto-triggers
	api.POST("/triggers", cfg.TriggerHandler.Create)
	api.GET("/triggers", cfg.TriggerHandler.List)

	// External sync
	api.POST("/sync/whoop", cfg.WhoopHandler.Sync)

	return router
}
