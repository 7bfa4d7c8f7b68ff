package app

import (
	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/handlers"
	"github.com/yungbote/habitanimal-backend/internal/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Activity     *handlers.ActivityHandler
	Completion   *handlers.CompletionHandler
	Dashboard    *handlers.DashboardHandler
	WeightConfig *handlers.WeightConfigHandler
	Trigger      *handlers.TriggerHandler
	Whoop        *handlers.WhoopHandler
}

func wireHandlers(log *logger.Logger, clk clock.Clock, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         handlers.NewAuthHandler(log, serviceset.Auth),
		Activity:     handlers.NewActivityHandler(log, serviceset.Activity),
		Completion:   handlers.NewCompletionHandler(log, serviceset.Completion, serviceset.Trigger),
		Dashboard:    handlers.NewDashboardHandler(log, clk, serviceset.Scoring, serviceset.Streak, serviceset.Companion),
		WeightConfig: handlers.NewWeightConfigHandler(log, serviceset.WeightConfig),
		Trigger:      handlers.NewTriggerHandler(log, serviceset.Trigger),
		Whoop:        handlers.NewWhoopHandler(log, clk, serviceset.Scoring, serviceset.Trigger),
	}
}
