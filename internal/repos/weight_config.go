package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type WeightConfigRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.WeightConfig, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.WeightConfig) error
}

type weightConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeightConfigRepo(db *gorm.DB, baseLog *logger.Logger) WeightConfigRepo {
	repoLog := baseLog.With("repo", "WeightConfigRepo")
	return &weightConfigRepo{db: db, log: repoLog}
}

func (r *weightConfigRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.WeightConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WeightConfig
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *weightConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.WeightConfig) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	existing, err := r.GetByUserID(ctx, transaction, row.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		return transaction.WithContext(ctx).Save(row).Error
	}
	return transaction.WithContext(ctx).Create(row).Error
}
