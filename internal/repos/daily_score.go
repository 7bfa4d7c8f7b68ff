package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type DailyScoreRepo interface {
	GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyScore, error)
	GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyScore, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyScore) error
}

type dailyScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyScoreRepo(db *gorm.DB, baseLog *logger.Logger) DailyScoreRepo {
	repoLog := baseLog.With("repo", "DailyScoreRepo")
	return &dailyScoreRepo{db: db, log: repoLog}
}

func (r *dailyScoreRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DailyScore
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *dailyScoreRepo) GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DailyScore
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert by unique user_id + date; recomputation overwrites in place so
// rescoring a day never accumulates.
func (r *dailyScoreRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyScore) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	var existing []*types.DailyScore
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", row.UserID, row.Date).
		Limit(1).
		Find(&existing).Error; err != nil {
		return err
	}
	if len(existing) > 0 {
		row.ID = existing[0].ID
		row.CreatedAt = existing[0].CreatedAt
		return transaction.WithContext(ctx).Save(row).Error
	}
	return transaction.WithContext(ctx).Create(row).Error
}
