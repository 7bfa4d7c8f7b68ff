package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type CompletionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Completion) ([]*types.Completion, error)
	GetByActivityAndRange(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, from, to time.Time) ([]*types.Completion, error)
	GetByActivitiesAndRange(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID, from, to time.Time) ([]*types.Completion, error)
	GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Completion, error)
	ListByActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, limit, offset int) ([]*types.Completion, error)
	CountByActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (int64, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type completionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CompletionRepo {
	repoLog := baseLog.With("repo", "CompletionRepo")
	return &completionRepo{db: db, log: repoLog}
}

func (r *completionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Completion) ([]*types.Completion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Completion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *completionRepo) GetByActivityAndRange(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, from, to time.Time) ([]*types.Completion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Completion
	if activityID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("activity_id = ? AND completed_at >= ? AND completed_at < ?", activityID, from, to).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *completionRepo) GetByActivitiesAndRange(ctx context.Context, tx *gorm.DB, activityIDs []uuid.UUID, from, to time.Time) ([]*types.Completion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Completion
	if len(activityIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("activity_id IN ? AND completed_at >= ? AND completed_at < ?", activityIDs, from, to).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUserAndRange spans all of the user's activities, archived ones
// included, since completions survive archiving.
func (r *completionRepo) GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Completion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Completion
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Joins("JOIN activities ON activities.id = completions.activity_id").
		Where("activities.user_id = ? AND completions.completed_at >= ? AND completions.completed_at < ?", userID, from, to).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *completionRepo) ListByActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID, limit, offset int) ([]*types.Completion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Completion
	if activityID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *completionRepo) CountByActivity(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Completion{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *completionRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Completion{}).Error; err != nil {
		return err
	}
	return nil
}
