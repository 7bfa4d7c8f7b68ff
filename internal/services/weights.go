package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

const pillarWeightSum = 100

// presetWeights are the named weight distributions. CUSTOM is absent on
// purpose: custom weights come from the caller and are validated instead.
var presetWeights = map[string]types.WeightConfig{
	types.WeightPresetBalanced: {
		TrainingWeight: 34, SleepWeight: 33, NutritionWeight: 33,
		MeditationWeight: 34, ReadingWeight: 33, LearningWeight: 33,
		JournalingWeight: 0,
	},
	types.WeightPresetBodyFocused: {
		TrainingWeight: 45, SleepWeight: 35, NutritionWeight: 20,
		MeditationWeight: 34, ReadingWeight: 33, LearningWeight: 33,
		JournalingWeight: 0,
	},
	types.WeightPresetMindFocused: {
		TrainingWeight: 34, SleepWeight: 33, NutritionWeight: 33,
		MeditationWeight: 40, ReadingWeight: 35, LearningWeight: 25,
		JournalingWeight: 0,
	},
}

type WeightConfigService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.WeightConfig, error)
	Update(ctx context.Context, userID uuid.UUID, cfg *types.WeightConfig) (*types.WeightConfig, error)
}

type weightConfigService struct {
	db         *gorm.DB
	log        *logger.Logger
	weightRepo repos.WeightConfigRepo
}

func NewWeightConfigService(db *gorm.DB, log *logger.Logger, weightRepo repos.WeightConfigRepo) WeightConfigService {
	serviceLog := log.With("service", "WeightConfigService")
	return &weightConfigService{db: db, log: serviceLog, weightRepo: weightRepo}
}

// Get returns the user's config, or the BALANCED preset when none has
// been saved yet.
func (ws *weightConfigService) Get(ctx context.Context, userID uuid.UUID) (*types.WeightConfig, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	existing, err := ws.weightRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load weight config: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	return DefaultWeightConfig(userID), nil
}

func (ws *weightConfigService) Update(ctx context.Context, userID uuid.UUID, cfg *types.WeightConfig) (*types.WeightConfig, error) {
	if userID == uuid.Nil || cfg == nil {
		return nil, fmt.Errorf("%w: missing user or config", ErrInvalidInput)
	}

	if cfg.Preset != types.WeightPresetCustom {
		preset, ok := presetWeights[cfg.Preset]
		if !ok {
			return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidInput, cfg.Preset)
		}
		applied := preset
		applied.Preset = cfg.Preset
		applied.UserID = userID
		cfg = &applied
	} else {
		cfg.UserID = userID
	}

	if err := ValidateWeights(cfg); err != nil {
		return nil, err
	}

	if err := ws.weightRepo.Upsert(ctx, nil, cfg); err != nil {
		return nil, fmt.Errorf("save weight config: %w", err)
	}
	return cfg, nil
}

// DefaultWeightConfig is the BALANCED preset for a user, used both as the
// implicit config and as the record provisioned at signup.
func DefaultWeightConfig(userID uuid.UUID) *types.WeightConfig {
	cfg := presetWeights[types.WeightPresetBalanced]
	cfg.Preset = types.WeightPresetBalanced
	cfg.UserID = userID
	return &cfg
}

// ValidateWeights rejects negative weights and pillar sums other than 100.
// The journaling weight only needs to be non-negative; it sits outside the
// mind sum.
func ValidateWeights(cfg *types.WeightConfig) error {
	bodyWeights := []int{cfg.TrainingWeight, cfg.SleepWeight, cfg.NutritionWeight}
	mindWeights := []int{cfg.MeditationWeight, cfg.ReadingWeight, cfg.LearningWeight}

	if err := validatePillarWeights(types.PillarBody, bodyWeights); err != nil {
		return err
	}
	if err := validatePillarWeights(types.PillarMind, mindWeights); err != nil {
		return err
	}
	if cfg.JournalingWeight < 0 || cfg.JournalingWeight > 100 {
		return &WeightValidationError{Pillar: types.PillarMind, Reason: "journaling weight out of range"}
	}
	return nil
}

func validatePillarWeights(pillar types.Pillar, weights []int) error {
	sum := 0
	for _, w := range weights {
		if w < 0 {
			return &WeightValidationError{Pillar: pillar, Reason: "weights must be non-negative"}
		}
		sum += w
	}
	if sum != pillarWeightSum {
		return &WeightValidationError{Pillar: pillar, Reason: fmt.Sprintf("weights sum to %d, expected %d", sum, pillarWeightSum)}
	}
	return nil
}
