package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/services"
)

const dateLayout = "2006-01-02"

// DashboardHandler serves the aggregate home view: today's score, the
// streak, and every companion with live health.
type DashboardHandler struct {
	log              *logger.Logger
	clk              clock.Clock
	scoringService   services.ScoringService
	streakService    services.StreakService
	companionService services.CompanionService
}

func NewDashboardHandler(
	log *logger.Logger,
	clk clock.Clock,
	scoringService services.ScoringService,
	streakService services.StreakService,
	companionService services.CompanionService,
) *DashboardHandler {
	return &DashboardHandler{
		log:              log.With("handler", "DashboardHandler"),
		clk:              clk,
		scoringService:   scoringService,
		streakService:    streakService,
		companionService: companionService,
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	today := h.clk.Now()

	score, err := h.scoringService.GetDailyScore(ctx, userID, today)
	if err != nil {
		h.log.Error("GetDashboard score failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}
	streak, err := h.streakService.GetStreak(ctx, userID)
	if err != nil {
		h.log.Error("GetDashboard streak failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}
	companions, err := h.companionService.ListForUser(ctx, userID)
	if err != nil {
		h.log.Error("GetDashboard companions failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"score":      score,
		"streak":     streak,
		"companions": companions,
	})
}

func (h *DashboardHandler) GetScore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := h.clk.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, date.Location())
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_date", err)
			return
		}
		date = parsed
	}
	score, err := h.scoringService.GetDailyScore(c.Request.Context(), userID, date)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"score": score})
}

func (h *DashboardHandler) GetStreak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	streak, err := h.streakService.GetStreak(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"streak": streak})
}

func (h *DashboardHandler) ListCompanions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companions, err := h.companionService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"companions": companions})
}
