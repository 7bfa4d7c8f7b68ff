package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/companion"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

// testNow is the pinned "now" for every service test: a Sunday morning.
var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&types.User{},
		&types.Companion{},
		&types.Activity{},
		&types.Completion{},
		&types.DailyScore{},
		&types.WeightConfig{},
		&types.AutoTrigger{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type testEnv struct {
	db             *gorm.DB
	log            *logger.Logger
	clk            clock.Clock
	userRepo       repos.UserRepo
	companionRepo  repos.CompanionRepo
	activityRepo   repos.ActivityRepo
	completionRepo repos.CompletionRepo
	dailyScoreRepo repos.DailyScoreRepo
	weightRepo     repos.WeightConfigRepo
	triggerRepo    repos.AutoTriggerRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	return &testEnv{
		db:             db,
		log:            log,
		clk:            clock.NewFixed(testNow),
		userRepo:       repos.NewUserRepo(db, log),
		companionRepo:  repos.NewCompanionRepo(db, log),
		activityRepo:   repos.NewActivityRepo(db, log),
		completionRepo: repos.NewCompletionRepo(db, log),
		dailyScoreRepo: repos.NewDailyScoreRepo(db, log),
		weightRepo:     repos.NewWeightConfigRepo(db, log),
		triggerRepo:    repos.NewAutoTriggerRepo(db, log),
	}
}

func (e *testEnv) completionService() CompletionService {
	return NewCompletionService(e.db, e.log, e.clk, e.activityRepo, e.completionRepo, e.companionRepo, nil)
}

func (e *testEnv) weightService() WeightConfigService {
	return NewWeightConfigService(e.db, e.log, e.weightRepo)
}

func (e *testEnv) scoringService(includeJournaling bool) ScoringService {
	return NewScoringService(e.db, e.log, e.clk, e.activityRepo, e.completionRepo, e.dailyScoreRepo, e.weightService(), nil, includeJournaling)
}

func (e *testEnv) streakService() StreakService {
	return NewStreakService(e.db, e.log, e.clk, e.completionRepo, e.activityRepo)
}

func (e *testEnv) triggerService() TriggerService {
	return NewTriggerService(e.db, e.log, e.triggerRepo, e.activityRepo, e.completionService())
}

func (e *testEnv) seedUser(t *testing.T) *types.User {
	t.Helper()
	user := &types.User{
		Email:     fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
	}
	if _, err := e.userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	for _, category := range types.AllSubCategories() {
		row := &types.Companion{
			UserID:          user.ID,
			Category:        category,
			XP:              0,
			Level:           1,
			EvolutionStage:  1,
			Health:          companion.MaxHealth,
			LastInteraction: testNow,
		}
		if _, err := e.companionRepo.Create(context.Background(), nil, []*types.Companion{row}); err != nil {
			t.Fatalf("seed companion: %v", err)
		}
	}
	return user
}

func (e *testEnv) seedActivity(t *testing.T, userID uuid.UUID, name string, category types.SubCategory) *types.Activity {
	t.Helper()
	pillar, ok := category.Pillar()
	if !ok {
		t.Fatalf("unknown category %q", category)
	}
	row := &types.Activity{
		UserID:      userID,
		Name:        name,
		Pillar:      pillar,
		SubCategory: category,
		Points:      10,
		IsHabit:     true,
	}
	if _, err := e.activityRepo.Create(context.Background(), nil, []*types.Activity{row}); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	return row
}

func (e *testEnv) seedCompletionAt(t *testing.T, activityID uuid.UUID, at time.Time) *types.Completion {
	t.Helper()
	day := clock.DayStart(at)
	row := &types.Completion{
		ActivityID:   activityID,
		CompletedAt:  at,
		CompletedOn:  &day,
		PointsEarned: 10,
		XPEarned:     companion.BaseCompletionXP,
		Source:       types.CompletionSourceManual,
	}
	if _, err := e.completionRepo.Create(context.Background(), nil, []*types.Completion{row}); err != nil {
		t.Fatalf("seed completion: %v", err)
	}
	return row
}

func (e *testEnv) companionFor(t *testing.T, userID uuid.UUID, category types.SubCategory) *types.Companion {
	t.Helper()
	pet, err := e.companionRepo.GetByUserAndCategory(context.Background(), nil, userID, category)
	if err != nil {
		t.Fatalf("load companion: %v", err)
	}
	if pet == nil {
		t.Fatalf("companion for %s missing", category)
	}
	return pet
}
