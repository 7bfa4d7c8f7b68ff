package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/companion"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

// CompanionView is a companion as presented: health decayed to the moment
// of the read, without persisting the decay. Persisted health only moves
// inside the completion transaction.
type CompanionView struct {
	*types.Companion
	CurrentHealth  int            `json:"current_health"`
	Mood           companion.Mood `json:"mood"`
	NeedsAttention bool           `json:"needs_attention"`
	XPToNextLevel  int            `json:"xp_to_next_level"`
}

type CompanionService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*CompanionView, error)
	ProvisionForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type companionService struct {
	db            *gorm.DB
	log           *logger.Logger
	clk           clock.Clock
	companionRepo repos.CompanionRepo
}

func NewCompanionService(db *gorm.DB, log *logger.Logger, clk clock.Clock, companionRepo repos.CompanionRepo) CompanionService {
	serviceLog := log.With("service", "CompanionService")
	return &companionService{db: db, log: serviceLog, clk: clk, companionRepo: companionRepo}
}

func (cs *companionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*CompanionView, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}

	rows, err := cs.companionRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load companions: %w", err)
	}

	now := cs.clk.Now()
	views := make([]*CompanionView, 0, len(rows))
	for _, row := range rows {
		health := companion.DecayHealth(row.Health, row.LastInteraction, now)
		views = append(views, &CompanionView{
			Companion:      row,
			CurrentHealth:  health,
			Mood:           companion.MoodFor(health),
			NeedsAttention: companion.NeedsAttention(health),
			XPToNextLevel:  companion.TotalXPForLevel(row.Level+1) - row.XP,
		})
	}
	return views, nil
}

// ProvisionForUser creates the full set of companions, one per
// sub-category, inside the caller's transaction. Used at signup.
func (cs *companionService) ProvisionForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	now := cs.clk.Now()
	rows := make([]*types.Companion, 0, len(types.AllSubCategories()))
	for _, category := range types.AllSubCategories() {
		rows = append(rows, &types.Companion{
			UserID:          userID,
			Category:        category,
			XP:              0,
			Level:           1,
			EvolutionStage:  1,
			Health:          companion.MaxHealth,
			LastInteraction: now,
		})
	}
	if _, err := cs.companionRepo.Create(ctx, tx, rows); err != nil {
		return fmt.Errorf("provision companions: %w", err)
	}
	return nil
}
