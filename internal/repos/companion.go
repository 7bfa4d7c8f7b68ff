package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

type CompanionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Companion) ([]*types.Companion, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Companion, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Companion, error)
	GetByUserAndCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category types.SubCategory) (*types.Companion, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Companion) error
}

type companionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompanionRepo(db *gorm.DB, baseLog *logger.Logger) CompanionRepo {
	repoLog := baseLog.With("repo", "CompanionRepo")
	return &companionRepo{db: db, log: repoLog}
}

func (r *companionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Companion) ([]*types.Companion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Companion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *companionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Companion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Companion
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

func (r *companionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Companion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Companion
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUserAndCategory returns nil (no error) when the companion is
// absent; callers decide whether absence is an integrity failure.
func (r *companionRepo) GetByUserAndCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category types.SubCategory) (*types.Companion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Companion
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *companionRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Companion) error {
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
