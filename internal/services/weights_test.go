package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/habitanimal-backend/internal/types"
)

func TestWeightsDefaultToBalanced(t *testing.T) {
	env := newTestEnv(t)
	svc := env.weightService()
	user := env.seedUser(t)

	cfg, err := svc.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Preset != types.WeightPresetBalanced {
		t.Fatalf("preset: want BALANCED got %s", cfg.Preset)
	}
	if cfg.TrainingWeight+cfg.SleepWeight+cfg.NutritionWeight != 100 {
		t.Fatalf("body weights do not sum to 100: %+v", cfg)
	}
	if cfg.MeditationWeight+cfg.ReadingWeight+cfg.LearningWeight != 100 {
		t.Fatalf("mind weights do not sum to 100: %+v", cfg)
	}
}

func TestWeightsPresetUpdate(t *testing.T) {
	env := newTestEnv(t)
	svc := env.weightService()
	user := env.seedUser(t)

	// Presets ignore whatever weights the caller sent.
	saved, err := svc.Update(context.Background(), user.ID, &types.WeightConfig{
		Preset:         types.WeightPresetBodyFocused,
		TrainingWeight: 99,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if saved.TrainingWeight != 45 || saved.SleepWeight != 35 || saved.NutritionWeight != 20 {
		t.Fatalf("body-focused weights: %+v", saved)
	}

	loaded, err := svc.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if loaded.Preset != types.WeightPresetBodyFocused || loaded.TrainingWeight != 45 {
		t.Fatalf("persisted config: %+v", loaded)
	}

	// A second update replaces, not duplicates, the row.
	if _, err := svc.Update(context.Background(), user.ID, &types.WeightConfig{Preset: types.WeightPresetMindFocused}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	var count int64
	if err := env.db.Model(&types.WeightConfig{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count configs: %v", err)
	}
	if count != 1 {
		t.Fatalf("config rows: want=1 got=%d", count)
	}
}

func TestWeightsUnknownPresetRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := env.weightService()
	user := env.seedUser(t)

	_, err := svc.Update(context.Background(), user.ID, &types.WeightConfig{Preset: "EXTREME"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown preset: want ErrInvalidInput, got %v", err)
	}
}

func TestWeightsCustomValidation(t *testing.T) {
	base := types.WeightConfig{
		Preset:           types.WeightPresetCustom,
		TrainingWeight:   40,
		SleepWeight:      30,
		NutritionWeight:  30,
		MeditationWeight: 50,
		ReadingWeight:    25,
		LearningWeight:   25,
	}

	cases := []struct {
		name       string
		mutate     func(*types.WeightConfig)
		wantErr    bool
		wantPillar types.Pillar
	}{
		{
			name:   "valid custom split",
			mutate: func(c *types.WeightConfig) {},
		},
		{
			name:       "body sum under 100",
			mutate:     func(c *types.WeightConfig) { c.TrainingWeight = 30 },
			wantErr:    true,
			wantPillar: types.PillarBody,
		},
		{
			name:       "mind sum over 100",
			mutate:     func(c *types.WeightConfig) { c.MeditationWeight = 60 },
			wantErr:    true,
			wantPillar: types.PillarMind,
		},
		{
			name: "negative weight",
			mutate: func(c *types.WeightConfig) {
				c.SleepWeight = -10
				c.TrainingWeight = 80
			},
			wantErr:    true,
			wantPillar: types.PillarBody,
		},
		{
			name:       "journaling weight out of range",
			mutate:     func(c *types.WeightConfig) { c.JournalingWeight = 120 },
			wantErr:    true,
			wantPillar: types.PillarMind,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := env.weightService()
			user := env.seedUser(t)

			cfg := base
			tc.mutate(&cfg)
			_, err := svc.Update(context.Background(), user.ID, &cfg)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("Update: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidWeights) {
				t.Fatalf("want ErrInvalidWeights, got %v", err)
			}
			var verr *WeightValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want WeightValidationError, got %T", err)
			}
			if verr.Pillar != tc.wantPillar {
				t.Fatalf("pillar: want=%s got=%s", tc.wantPillar, verr.Pillar)
			}
		})
	}
}
