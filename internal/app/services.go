package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Activity     services.ActivityService
	Companion    services.CompanionService
	WeightConfig services.WeightConfigService
	Scoring      services.ScoringService
	Completion   services.CompletionService
	Streak       services.StreakService
	Trigger      services.TriggerService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clk clock.Clock, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	companionService := services.NewCompanionService(db, log, clk, reposet.Companion)
	authService := services.NewAuthService(db, log, reposet.User, companionService, reposet.WeightConfig, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	activityService := services.NewActivityService(db, log, reposet.Activity)
	weightService := services.NewWeightConfigService(db, log, reposet.WeightConfig)

	scoringService := services.NewScoringService(
		db, log, clk,
		reposet.Activity,
		reposet.Completion,
		reposet.DailyScore,
		weightService,
		clients.Redis,
		cfg.IncludeJournaling,
	)

	// The scoring service doubles as the cache invalidator for completions.
	completionService := services.NewCompletionService(db, log, clk, reposet.Activity, reposet.Completion, reposet.Companion, scoringService)

	streakService := services.NewStreakService(db, log, clk, reposet.Completion, reposet.Activity)
	triggerService := services.NewTriggerService(db, log, reposet.AutoTrigger, reposet.Activity, completionService)

	return Services{
		Auth:         authService,
		Activity:     activityService,
		Companion:    companionService,
		WeightConfig: weightService,
		Scoring:      scoringService,
		Completion:   completionService,
		Streak:       streakService,
		Trigger:      triggerService,
	}
}
