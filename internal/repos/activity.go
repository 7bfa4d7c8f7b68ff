package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Activity) ([]*types.Activity, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Activity, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeArchived bool) ([]*types.Activity, error)
	GetHabitsByUserAndCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category types.SubCategory) ([]*types.Activity, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Activity) error
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	repoLog := baseLog.With("repo", "ActivityRepo")
	return &activityRepo{db: db, log: repoLog}
}

func (r *activityRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Activity) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Activity{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *activityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Activity
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *activityRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeArchived bool) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Activity
	if userID == uuid.Nil {
		return results, nil
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	if err := query.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetHabitsByUserAndCategory returns the user's non-archived habit
// activities in one sub-category, the denominator of a manual sub-score.
func (r *activityRepo) GetHabitsByUserAndCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category types.SubCategory) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Activity
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND sub_category = ? AND is_habit = ? AND archived = ?", userID, category, true, false).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *activityRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Activity) error {
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
