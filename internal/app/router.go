package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitanimal-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:         handlerset.Auth,
		AuthMiddleware:      middlewareset.Auth,
		ActivityHandler:     handlerset.Activity,
		CompletionHandler:   handlerset.Completion,
		DashboardHandler:    handlerset.Dashboard,
		WeightConfigHandler: handlerset.WeightConfig,
		TriggerHandler:      handlerset.Trigger,
		WhoopHandler:        handlerset.Whoop,
		AllowOrigins:        cfg.AllowOrigins,
	})
}
