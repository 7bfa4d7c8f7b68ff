package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/services"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type WeightConfigHandler struct {
	log           *logger.Logger
	weightService services.WeightConfigService
}

func NewWeightConfigHandler(log *logger.Logger, weightService services.WeightConfigService) *WeightConfigHandler {
	return &WeightConfigHandler{
		log:           log.With("handler", "WeightConfigHandler"),
		weightService: weightService,
	}
}

func (h *WeightConfigHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cfg, err := h.weightService.Get(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"weights": cfg})
}

func (h *WeightConfigHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Preset           string `json:"preset"`
		TrainingWeight   int    `json:"training_weight"`
		SleepWeight      int    `json:"sleep_weight"`
		NutritionWeight  int    `json:"nutrition_weight"`
		MeditationWeight int    `json:"meditation_weight"`
		ReadingWeight    int    `json:"reading_weight"`
		LearningWeight   int    `json:"learning_weight"`
		JournalingWeight int    `json:"journaling_weight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	cfg := &types.WeightConfig{
		Preset:           req.Preset,
		TrainingWeight:   req.TrainingWeight,
		SleepWeight:      req.SleepWeight,
		NutritionWeight:  req.NutritionWeight,
		MeditationWeight: req.MeditationWeight,
		ReadingWeight:    req.ReadingWeight,
		LearningWeight:   req.LearningWeight,
		JournalingWeight: req.JournalingWeight,
	}
	saved, err := h.weightService.Update(c.Request.Context(), userID, cfg)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"weights": saved})
}
