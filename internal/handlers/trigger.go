package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/services"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type TriggerHandler struct {
	log            *logger.Logger
	triggerService services.TriggerService
}

func NewTriggerHandler(log *logger.Logger, triggerService services.TriggerService) *TriggerHandler {
	return &TriggerHandler{
		log:            log.With("handler", "TriggerHandler"),
		triggerService: triggerService,
	}
}

func (h *TriggerHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		ActivityID        uuid.UUID  `json:"activity_id"`
		TriggerType       string     `json:"trigger_type"`
		ThresholdValue    *float64   `json:"threshold_value"`
		WorkoutTypeID     *int       `json:"workout_type_id"`
		TriggerActivityID *uuid.UUID `json:"trigger_activity_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	trigger := &types.AutoTrigger{
		ActivityID:        req.ActivityID,
		TriggerType:       req.TriggerType,
		ThresholdValue:    req.ThresholdValue,
		WorkoutTypeID:     req.WorkoutTypeID,
		TriggerActivityID: req.TriggerActivityID,
	}
	created, err := h.triggerService.CreateTrigger(c.Request.Context(), userID, trigger)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"trigger": created})
}

func (h *TriggerHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	triggers, err := h.triggerService.ListTriggers(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("List failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"triggers": triggers})
}
