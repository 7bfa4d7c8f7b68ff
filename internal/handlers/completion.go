package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/services"
)

type CompletionHandler struct {
	log               *logger.Logger
	completionService services.CompletionService
	triggerService    services.TriggerService
}

func NewCompletionHandler(log *logger.Logger, completionService services.CompletionService, triggerService services.TriggerService) *CompletionHandler {
	return &CompletionHandler{
		log:               log.With("handler", "CompletionHandler"),
		completionService: completionService,
		triggerService:    triggerService,
	}
}

func (h *CompletionHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
		return
	}
	var req struct {
		Details string `json:"details"`
	}
	// Body is optional; an empty body means no details.
	_ = c.ShouldBindJSON(&req)

	result, err := h.completionService.Complete(c.Request.Context(), userID, activityID, req.Details)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	// Chained triggers fire off the completion that just landed.
	triggered, err := h.triggerService.Evaluate(c.Request.Context(), userID, services.TriggerContext{
		CompletedActivityID: &activityID,
	})
	if err != nil {
		h.log.Warn("Chained trigger evaluation failed", "error", err, "activity_id", activityID)
	}

	RespondOK(c, gin.H{
		"result":   result,
		"triggers": triggered,
	})
}

func (h *CompletionHandler) Uncomplete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
		return
	}
	result, err := h.completionService.Uncomplete(c.Request.Context(), userID, activityID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CompletionHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	history, err := h.completionService.GetHistory(c.Request.Context(), userID, activityID, limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, history)
}
