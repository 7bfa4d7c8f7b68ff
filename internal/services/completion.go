package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/companion"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

const (
	historyDefaultLimit = 20
	historyMaxLimit     = 100
)

// CompanionDelta is the before/after companion snapshot a completion (or
// reversal) produced, with the celebration flags the UI keys off.
type CompanionDelta struct {
	Companion      *types.Companion `json:"companion"`
	PreviousXP     int              `json:"previous_xp"`
	NewXP          int              `json:"new_xp"`
	PreviousLevel  int              `json:"previous_level"`
	NewLevel       int              `json:"new_level"`
	PreviousStage  int              `json:"previous_stage"`
	NewStage       int              `json:"new_stage"`
	PreviousHealth int              `json:"previous_health"`
	NewHealth      int              `json:"new_health"`
	LeveledUp      bool             `json:"leveled_up"`
	Evolved        bool             `json:"evolved"`
}

type CompletionResult struct {
	Completion *types.Completion `json:"completion,omitempty"`
	XPEarned   int               `json:"xp_earned"`
	Delta      CompanionDelta    `json:"companion_delta"`
}

type CompletionHistory struct {
	Completions []*types.Completion `json:"completions"`
	Total       int64               `json:"total"`
	HasMore     bool                `json:"has_more"`
}

// ScoreInvalidator lets the completion transaction drop any cached daily
// score for the day it just changed, without depending on the scoring
// service directly.
type ScoreInvalidator interface {
	InvalidateDay(ctx context.Context, userID uuid.UUID, day time.Time)
}

type CompletionService interface {
	Complete(ctx context.Context, userID, activityID uuid.UUID, details string) (*CompletionResult, error)
	CompleteFromTrigger(ctx context.Context, userID, activityID uuid.UUID, details string) (*CompletionResult, error)
	Uncomplete(ctx context.Context, userID, activityID uuid.UUID) (*CompletionResult, error)
	GetHistory(ctx context.Context, userID, activityID uuid.UUID, limit, offset int) (*CompletionHistory, error)
}

type completionService struct {
	db             *gorm.DB
	log            *logger.Logger
	clk            clock.Clock
	activityRepo   repos.ActivityRepo
	completionRepo repos.CompletionRepo
	companionRepo  repos.CompanionRepo
	invalidator    ScoreInvalidator
}

func NewCompletionService(
	db *gorm.DB,
	log *logger.Logger,
	clk clock.Clock,
	activityRepo repos.ActivityRepo,
	completionRepo repos.CompletionRepo,
	companionRepo repos.CompanionRepo,
	invalidator ScoreInvalidator,
) CompletionService {
	serviceLog := log.With("service", "CompletionService")
	return &completionService{
		db:             db,
		log:            serviceLog,
		clk:            clk,
		activityRepo:   activityRepo,
		completionRepo: completionRepo,
		companionRepo:  companionRepo,
		invalidator:    invalidator,
	}
}

func (cs *completionService) Complete(ctx context.Context, userID, activityID uuid.UUID, details string) (*CompletionResult, error) {
	return cs.complete(ctx, userID, activityID, details, types.CompletionSourceManual)
}

// CompleteFromTrigger runs the same transaction with AUTO_TRIGGER
// provenance, so trigger-created completions keep every companion
// invariant a manual completion does.
func (cs *completionService) CompleteFromTrigger(ctx context.Context, userID, activityID uuid.UUID, details string) (*CompletionResult, error) {
	return cs.complete(ctx, userID, activityID, details, types.CompletionSourceAutoTrigger)
}

func (cs *completionService) complete(ctx context.Context, userID, activityID uuid.UUID, details, source string) (*CompletionResult, error) {
	if userID == uuid.Nil || activityID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user or activity id", ErrInvalidInput)
	}

	now := cs.clk.Now()
	dayStart := clock.DayStart(now)
	dayEnd := clock.DayEnd(now)

	var result *CompletionResult
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := cs.loadOwnedActivity(ctx, tx, userID, activityID)
		if err != nil {
			return err
		}

		existing, err := cs.completionRepo.GetByActivityAndRange(ctx, tx, activityID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("check today's completions: %w", err)
		}
		if len(existing) > 0 {
			return ErrAlreadyCompletedToday
		}

		xpEarned := companion.XPForCompletion(details != "")

		pet, err := cs.companionRepo.GetByUserAndCategory(ctx, tx, userID, activity.SubCategory)
		if err != nil {
			return fmt.Errorf("load companion: %w", err)
		}
		if pet == nil {
			cs.log.Error("Companion missing for category", "user_id", userID, "category", activity.SubCategory)
			return fmt.Errorf("%w: %s", ErrCompanionMissing, activity.SubCategory)
		}

		previousXP := pet.XP
		previousLevel := pet.Level
		previousStage := pet.EvolutionStage
		previousHealth := companion.DecayHealth(pet.Health, pet.LastInteraction, now)

		newXP := previousXP + xpEarned
		newLevel := companion.Level(newXP)
		newStage := companion.EvolutionStage(newLevel)
		newHealth := companion.RecoverHealth(previousHealth)

		pet.XP = newXP
		pet.Level = newLevel
		pet.EvolutionStage = newStage
		pet.Health = newHealth
		pet.LastInteraction = now

		row := &types.Completion{
			ActivityID:   activity.ID,
			CompletedAt:  now,
			PointsEarned: activity.Points,
			XPEarned:     xpEarned,
			Details:      details,
			Source:       source,
		}
		if activity.IsHabit {
			day := dayStart
			row.CompletedOn = &day
		}

		if _, err := cs.completionRepo.Create(ctx, tx, []*types.Completion{row}); err != nil {
			// The (activity_id, completed_on) unique index is the
			// last word: a racing request that slipped past the
			// read above loses here and sees the same conflict.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCompletedToday
			}
			return fmt.Errorf("create completion: %w", err)
		}
		if err := cs.companionRepo.Update(ctx, tx, pet); err != nil {
			return fmt.Errorf("update companion: %w", err)
		}

		result = &CompletionResult{
			Completion: row,
			XPEarned:   xpEarned,
			Delta: CompanionDelta{
				Companion:      pet,
				PreviousXP:     previousXP,
				NewXP:          newXP,
				PreviousLevel:  previousLevel,
				NewLevel:       newLevel,
				PreviousStage:  previousStage,
				NewStage:       newStage,
				PreviousHealth: previousHealth,
				NewHealth:      newHealth,
				LeveledUp:      newLevel > previousLevel,
				Evolved:        newStage > previousStage,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cs.invalidator != nil {
		cs.invalidator.InvalidateDay(ctx, userID, dayStart)
	}
	return result, nil
}

// Uncomplete reverses today's completion: XP (and the level/stage derived
// from it) is restored, health and LastInteraction are deliberately not.
func (cs *completionService) Uncomplete(ctx context.Context, userID, activityID uuid.UUID) (*CompletionResult, error) {
	if userID == uuid.Nil || activityID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user or activity id", ErrInvalidInput)
	}

	now := cs.clk.Now()
	dayStart := clock.DayStart(now)
	dayEnd := clock.DayEnd(now)

	var result *CompletionResult
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := cs.loadOwnedActivity(ctx, tx, userID, activityID)
		if err != nil {
			return err
		}

		existing, err := cs.completionRepo.GetByActivityAndRange(ctx, tx, activityID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("check today's completions: %w", err)
		}
		if len(existing) == 0 {
			return ErrNoCompletionToday
		}
		comp := existing[0]

		pet, err := cs.companionRepo.GetByUserAndCategory(ctx, tx, userID, activity.SubCategory)
		if err != nil {
			return fmt.Errorf("load companion: %w", err)
		}
		if pet == nil {
			cs.log.Error("Companion missing for category", "user_id", userID, "category", activity.SubCategory)
			return fmt.Errorf("%w: %s", ErrCompanionMissing, activity.SubCategory)
		}

		previousXP := pet.XP
		previousLevel := pet.Level
		previousStage := pet.EvolutionStage

		newXP := previousXP - comp.XPEarned
		if newXP < 0 {
			newXP = 0
		}
		newLevel := companion.Level(newXP)
		newStage := companion.EvolutionStage(newLevel)

		pet.XP = newXP
		pet.Level = newLevel
		pet.EvolutionStage = newStage

		if err := cs.completionRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{comp.ID}); err != nil {
			return fmt.Errorf("delete completion: %w", err)
		}
		if err := cs.companionRepo.Update(ctx, tx, pet); err != nil {
			return fmt.Errorf("update companion: %w", err)
		}

		result = &CompletionResult{
			XPEarned: -comp.XPEarned,
			Delta: CompanionDelta{
				Companion:      pet,
				PreviousXP:     previousXP,
				NewXP:          newXP,
				PreviousLevel:  previousLevel,
				NewLevel:       newLevel,
				PreviousStage:  previousStage,
				NewStage:       newStage,
				PreviousHealth: pet.Health,
				NewHealth:      pet.Health,
				LeveledUp:      newLevel > previousLevel,
				Evolved:        newStage > previousStage,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cs.invalidator != nil {
		cs.invalidator.InvalidateDay(ctx, userID, dayStart)
	}
	return result, nil
}

func (cs *completionService) GetHistory(ctx context.Context, userID, activityID uuid.UUID, limit, offset int) (*CompletionHistory, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := cs.loadOwnedActivity(ctx, nil, userID, activityID); err != nil {
		return nil, err
	}

	rows, err := cs.completionRepo.ListByActivity(ctx, nil, activityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	total, err := cs.completionRepo.CountByActivity(ctx, nil, activityID)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}

	return &CompletionHistory{
		Completions: rows,
		Total:       total,
		HasMore:     int64(offset+len(rows)) < total,
	}, nil
}

// loadOwnedActivity resolves the activity and hides existence from
// non-owners: unowned and archived both read as not found.
func (cs *completionService) loadOwnedActivity(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (*types.Activity, error) {
	found, err := cs.activityRepo.GetByIDs(ctx, tx, []uuid.UUID{activityID})
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID || found[0].Archived {
		return nil, ErrActivityNotFound
	}
	return found[0], nil
}
