package services

import (
	"errors"
	"fmt"

	"github.com/yungbote/habitanimal-backend/internal/types"
)

// Domain error taxonomy. NotFound-class errors are safe to surface as-is;
// Conflict-class errors mean the state machine refused a transition;
// ErrCompanionMissing is an integrity failure (provisioning bug), not a
// user error, and is logged distinctly.
var (
	ErrActivityNotFound      = errors.New("activity not found")
	ErrAlreadyCompletedToday = errors.New("activity already completed today")
	ErrNoCompletionToday     = errors.New("no completion for this activity today")
	ErrCompanionMissing      = errors.New("companion missing for category")
	ErrInvalidWeights        = errors.New("invalid weight configuration")
	ErrInvalidInput          = errors.New("invalid input")
)

// WeightValidationError names the pillar whose weights failed validation.
type WeightValidationError struct {
	Pillar types.Pillar
	Reason string
}

func (e *WeightValidationError) Error() string {
	return fmt.Sprintf("invalid %s weights: %s", e.Pillar, e.Reason)
}

func (e *WeightValidationError) Unwrap() error { return ErrInvalidWeights }
