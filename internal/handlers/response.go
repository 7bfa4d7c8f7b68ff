package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/habitanimal-backend/internal/apierr"
	"github.com/yungbote/habitanimal-backend/internal/requestdata"
	"github.com/yungbote/habitanimal-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the domain error taxonomy onto HTTP statuses.
// Anything unrecognized is treated as internal.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr.Err)
		return
	}

	switch {
	case errors.Is(err, services.ErrActivityNotFound):
		RespondError(c, http.StatusNotFound, "activity_not_found", err)
	case errors.Is(err, services.ErrAlreadyCompletedToday):
		RespondError(c, http.StatusConflict, "already_completed_today", err)
	case errors.Is(err, services.ErrNoCompletionToday):
		RespondError(c, http.StatusConflict, "no_completion_today", err)
	case errors.Is(err, services.ErrInvalidWeights):
		RespondError(c, http.StatusBadRequest, "invalid_weights", err)
	case errors.Is(err, services.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

// currentUserID pulls the authenticated user off the request context; the
// auth middleware guarantees it is set on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.UserID, true
}
