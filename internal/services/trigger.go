package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

// TriggerContext carries the external signals one evaluation sees. Nil
// fields mean the signal was not delivered; a trigger whose required field
// is absent never matches (fail closed).
type TriggerContext struct {
	WhoopRecovery       *float64   `json:"whoop_recovery,omitempty"`
	WhoopSleepHours     *float64   `json:"whoop_sleep_hours,omitempty"`
	WhoopStrain         *float64   `json:"whoop_strain,omitempty"`
	WhoopWorkoutTypeID  *int       `json:"whoop_workout_type_id,omitempty"`
	CompletedActivityID *uuid.UUID `json:"completed_activity_id,omitempty"`
}

// TriggerResult reports what one trigger did during an evaluation pass.
// Individual failures land in Error instead of aborting the pass.
type TriggerResult struct {
	TriggerID             uuid.UUID `json:"trigger_id"`
	ActivityID            uuid.UUID `json:"activity_id"`
	TriggerType           string    `json:"trigger_type"`
	Triggered             bool      `json:"triggered"`
	AlreadyCompletedToday bool      `json:"already_completed_today"`
	CompletionCreated     bool      `json:"completion_created"`
	Error                 string    `json:"error,omitempty"`
}

type TriggerService interface {
	Evaluate(ctx context.Context, userID uuid.UUID, tctx TriggerContext) ([]TriggerResult, error)
	CreateTrigger(ctx context.Context, userID uuid.UUID, trigger *types.AutoTrigger) (*types.AutoTrigger, error)
	ListTriggers(ctx context.Context, userID uuid.UUID) ([]*types.AutoTrigger, error)
}

type triggerService struct {
	db            *gorm.DB
	log           *logger.Logger
	triggerRepo   repos.AutoTriggerRepo
	activityRepo  repos.ActivityRepo
	completionSvc CompletionService
}

func NewTriggerService(
	db *gorm.DB,
	log *logger.Logger,
	triggerRepo repos.AutoTriggerRepo,
	activityRepo repos.ActivityRepo,
	completionSvc CompletionService,
) TriggerService {
	serviceLog := log.With("service", "TriggerService")
	return &triggerService{
		db:            db,
		log:           serviceLog,
		triggerRepo:   triggerRepo,
		activityRepo:  activityRepo,
		completionSvc: completionSvc,
	}
}

// Evaluate runs every active trigger against the context. It never fails
// as a whole because of one trigger: the caller (a data sync) must not be
// blocked by a misconfigured rule.
func (ts *triggerService) Evaluate(ctx context.Context, userID uuid.UUID, tctx TriggerContext) ([]TriggerResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}

	triggers, err := ts.triggerRepo.GetActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load triggers: %w", err)
	}

	results := make([]TriggerResult, 0, len(triggers))
	for _, trigger := range triggers {
		result := TriggerResult{
			TriggerID:   trigger.ID,
			ActivityID:  trigger.ActivityID,
			TriggerType: trigger.TriggerType,
		}

		matched, detail := matchTrigger(trigger, tctx)
		if !matched {
			results = append(results, result)
			continue
		}
		result.Triggered = true

		_, err := ts.completionSvc.CompleteFromTrigger(ctx, userID, trigger.ActivityID, detail)
		switch {
		case err == nil:
			result.CompletionCreated = true
		case errors.Is(err, ErrAlreadyCompletedToday):
			result.AlreadyCompletedToday = true
		default:
			ts.log.Warn("Trigger completion failed", "trigger_id", trigger.ID, "error", err)
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}

func (ts *triggerService) CreateTrigger(ctx context.Context, userID uuid.UUID, trigger *types.AutoTrigger) (*types.AutoTrigger, error) {
	if trigger == nil || trigger.ActivityID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing trigger activity", ErrInvalidInput)
	}
	if !validTriggerType(trigger.TriggerType) {
		return nil, fmt.Errorf("%w: unknown trigger type %q", ErrInvalidInput, trigger.TriggerType)
	}

	found, err := ts.activityRepo.GetByIDs(ctx, nil, []uuid.UUID{trigger.ActivityID})
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	if len(found) == 0 || found[0].UserID != userID || found[0].Archived {
		return nil, ErrActivityNotFound
	}

	trigger.IsActive = true
	if _, err := ts.triggerRepo.Create(ctx, nil, []*types.AutoTrigger{trigger}); err != nil {
		return nil, fmt.Errorf("create trigger: %w", err)
	}
	return trigger, nil
}

// ListTriggers returns triggers for the user's active activities only,
// matching what Evaluate considers: a trigger on an archived activity
// can never fire.
func (ts *triggerService) ListTriggers(ctx context.Context, userID uuid.UUID) ([]*types.AutoTrigger, error) {
	activities, err := ts.activityRepo.GetByUserID(ctx, nil, userID, false)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ID)
	}
	return ts.triggerRepo.GetByActivityIDs(ctx, nil, ids)
}

// matchTrigger dispatches to the evaluator for the trigger's kind and
// renders the human-readable details string recorded on the completion.
func matchTrigger(trigger *types.AutoTrigger, tctx TriggerContext) (bool, string) {
	switch trigger.TriggerType {
	case types.TriggerWhoopRecoveryAbove:
		if matchAbove(tctx.WhoopRecovery, trigger.ThresholdValue) {
			return true, fmt.Sprintf("Auto-completed: Whoop recovery %.0f%% >= %.0f%%", *tctx.WhoopRecovery, *trigger.ThresholdValue)
		}
	case types.TriggerWhoopRecoveryBelow:
		if matchBelow(tctx.WhoopRecovery, trigger.ThresholdValue) {
			return true, fmt.Sprintf("Auto-completed: Whoop recovery %.0f%% < %.0f%%", *tctx.WhoopRecovery, *trigger.ThresholdValue)
		}
	case types.TriggerWhoopSleepHoursAbove:
		if matchAbove(tctx.WhoopSleepHours, trigger.ThresholdValue) {
			return true, fmt.Sprintf("Auto-completed: slept %.1fh >= %.1fh", *tctx.WhoopSleepHours, *trigger.ThresholdValue)
		}
	case types.TriggerWhoopSleepHoursBelow:
		if matchBelow(tctx.WhoopSleepHours, trigger.ThresholdValue) {
			return true, fmt.Sprintf("Auto-completed: slept %.1fh < %.1fh", *tctx.WhoopSleepHours, *trigger.ThresholdValue)
		}
	case types.TriggerWhoopStrainAbove:
		if matchAbove(tctx.WhoopStrain, trigger.ThresholdValue) {
			return true, fmt.Sprintf("Auto-completed: Whoop strain %.1f >= %.1f", *tctx.WhoopStrain, *trigger.ThresholdValue)
		}
	case types.TriggerWhoopWorkoutType:
		if tctx.WhoopWorkoutTypeID != nil && trigger.WorkoutTypeID != nil && *tctx.WhoopWorkoutTypeID == *trigger.WorkoutTypeID {
			return true, fmt.Sprintf("Auto-completed: Whoop workout type %d logged", *tctx.WhoopWorkoutTypeID)
		}
	case types.TriggerActivityCompleted:
		if tctx.CompletedActivityID != nil && trigger.TriggerActivityID != nil && *tctx.CompletedActivityID == *trigger.TriggerActivityID {
			return true, "Auto-completed: linked activity completed"
		}
	}
	return false, ""
}

func matchAbove(value, threshold *float64) bool {
	return value != nil && threshold != nil && *value >= *threshold
}

func matchBelow(value, threshold *float64) bool {
	return value != nil && threshold != nil && *value < *threshold
}

func validTriggerType(t string) bool {
	switch t {
	case types.TriggerWhoopRecoveryAbove,
		types.TriggerWhoopRecoveryBelow,
		types.TriggerWhoopSleepHoursAbove,
		types.TriggerWhoopSleepHoursBelow,
		types.TriggerWhoopStrainAbove,
		types.TriggerWhoopWorkoutType,
		types.TriggerActivityCompleted:
		return true
	}
	return false
}
