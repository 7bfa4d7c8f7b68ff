package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type AutoTriggerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.AutoTrigger) ([]*types.AutoTrigger, error)
	GetByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.AutoTrigger, error)
	GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.AutoTrigger, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.AutoTrigger) error
}

type autoTriggerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAutoTriggerRepo(db *gorm.DB, baseLog *logger.Logger) AutoTriggerRepo {
	repoLog := baseLog.With("repo", "AutoTriggerRepo")
	return &autoTriggerRepo{db: db, log: repoLog}
}

func (r *autoTriggerRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AutoTrigger) ([]*types.AutoTrigger, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.AutoTrigger{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *autoTriggerRepo) GetByActivityIDs(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID) ([]*types.AutoTrigger, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AutoTrigger
	if len(activityIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("activity_id IN ?", activityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetActiveByUserID returns active triggers whose activities belong to the
// user and are not archived, with the activity preloaded for evaluation.
func (r *autoTriggerRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.AutoTrigger, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AutoTrigger
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Activity").
		Joins("JOIN activities ON activities.id = auto_triggers.activity_id").
		Where("auto_triggers.is_active = ? AND activities.user_id = ? AND activities.archived = ?", true, userID, false).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *autoTriggerRepo) Update(ctx context.Context, tx *gorm.DB, row *types.AutoTrigger) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	return nil
}
