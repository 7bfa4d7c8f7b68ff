package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

const defaultActivityPoints = 10

type ActivityService interface {
	Create(ctx context.Context, userID uuid.UUID, name string, category types.SubCategory, points int, isHabit bool) (*types.Activity, error)
	List(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*types.Activity, error)
	Archive(ctx context.Context, userID, activityID uuid.UUID) (*types.Activity, error)
	Unarchive(ctx context.Context, userID, activityID uuid.UUID) (*types.Activity, error)
}

type activityService struct {
	db           *gorm.DB
	log          *logger.Logger
	activityRepo repos.ActivityRepo
}

func NewActivityService(db *gorm.DB, log *logger.Logger, activityRepo repos.ActivityRepo) ActivityService {
	serviceLog := log.With("service", "ActivityService")
	return &activityService{db: db, log: serviceLog, activityRepo: activityRepo}
}

// Create derives the pillar from the sub-category; the pair can never
// disagree because callers don't get to choose both.
func (as *activityService) Create(ctx context.Context, userID uuid.UUID, name string, category types.SubCategory, points int, isHabit bool) (*types.Activity, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: activity name required", ErrInvalidInput)
	}
	pillar, ok := category.Pillar()
	if !ok {
		return nil, fmt.Errorf("%w: unknown sub-category %q", ErrInvalidInput, category)
	}
	if points <= 0 {
		points = defaultActivityPoints
	}

	row := &types.Activity{
		UserID:      userID,
		Name:        name,
		Pillar:      pillar,
		SubCategory: category,
		Points:      points,
		IsHabit:     isHabit,
	}
	if _, err := as.activityRepo.Create(ctx, nil, []*types.Activity{row}); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return row, nil
}

func (as *activityService) List(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*types.Activity, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	return as.activityRepo.GetByUserID(ctx, nil, userID, includeArchived)
}

func (as *activityService) Archive(ctx context.Context, userID, activityID uuid.UUID) (*types.Activity, error) {
	return as.setArchived(ctx, userID, activityID, true)
}

func (as *activityService) Unarchive(ctx context.Context, userID, activityID uuid.UUID) (*types.Activity, error) {
	return as.setArchived(ctx, userID, activityID, false)
}

func (as *activityService) setArchived(ctx context.Context, userID, activityID uuid.UUID, archived bool) (*types.Activity, error) {
	found, err := as.activityRepo.GetByIDs(ctx, nil, []uuid.UUID{activityID})
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	if len(found) == 0 || found[0].UserID != userID {
		return nil, ErrActivityNotFound
	}

	activity := found[0]
	activity.Archived = archived
	if err := as.activityRepo.Update(ctx, nil, activity); err != nil {
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return activity, nil
}
