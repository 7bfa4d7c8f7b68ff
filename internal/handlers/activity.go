package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/services"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type ActivityHandler struct {
	log             *logger.Logger
	activityService services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		log:             log.With("handler", "ActivityHandler"),
		activityService: activityService,
	}
}

func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		SubCategory string `json:"sub_category"`
		Points      int    `json:"points"`
		IsHabit     bool   `json:"is_habit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	activity, err := h.activityService.Create(c.Request.Context(), userID, req.Name, types.SubCategory(req.SubCategory), req.Points, req.IsHabit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activity": activity})
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	includeArchived := c.Query("include_archived") == "true"
	activities, err := h.activityService.List(c.Request.Context(), userID, includeArchived)
	if err != nil {
		h.log.Error("List failed", "error", err, "user_id", userID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activities": activities})
}

func (h *ActivityHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *ActivityHandler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ActivityHandler) setArchived(c *gin.Context, archived bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
		return
	}
	var activity *types.Activity
	if archived {
		activity, err = h.activityService.Archive(c.Request.Context(), userID, activityID)
	} else {
		activity, err = h.activityService.Unarchive(c.Request.Context(), userID, activityID)
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activity": activity})
}
