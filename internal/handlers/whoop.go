package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/services"
)

// WhoopHandler ingests one day of Whoop biometrics: auto-triggers fire
// first so their completions count toward the day, then the score is
// recomputed with the biometric overrides.
type WhoopHandler struct {
	log            *logger.Logger
	clk            clock.Clock
	scoringService services.ScoringService
	triggerService services.TriggerService
}

func NewWhoopHandler(
	log *logger.Logger,
	clk clock.Clock,
	scoringService services.ScoringService,
	triggerService services.TriggerService,
) *WhoopHandler {
	return &WhoopHandler{
		log:            log.With("handler", "WhoopHandler"),
		clk:            clk,
		scoringService: scoringService,
		triggerService: triggerService,
	}
}

func (h *WhoopHandler) Sync(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Strain           *float64 `json:"strain"`
		RecoveryScore    *float64 `json:"recovery_score"`
		SleepPerformance *float64 `json:"sleep_performance"`
		SleepEfficiency  *float64 `json:"sleep_efficiency"`
		SleepHours       *float64 `json:"sleep_hours"`
		WorkoutTypeID    *int     `json:"workout_type_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ctx := c.Request.Context()

	results, err := h.triggerService.Evaluate(ctx, userID, services.TriggerContext{
		WhoopRecovery:      req.RecoveryScore,
		WhoopSleepHours:    req.SleepHours,
		WhoopStrain:        req.Strain,
		WhoopWorkoutTypeID: req.WorkoutTypeID,
	})
	if err != nil {
		h.log.Error("Sync trigger evaluation failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}

	score, err := h.scoringService.ComputeDailyScore(ctx, userID, h.clk.Now(), &services.WhoopDaily{
		Strain:           req.Strain,
		RecoveryScore:    req.RecoveryScore,
		SleepPerformance: req.SleepPerformance,
		SleepEfficiency:  req.SleepEfficiency,
		SleepHours:       req.SleepHours,
	})
	if err != nil {
		h.log.Error("Sync score compute failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"score":    score,
		"triggers": results,
	})
}
