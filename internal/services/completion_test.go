package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/companion"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

func TestCompleteAwardsXPAndHealth(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Morning run", types.SubCategoryTraining)

	// Start the companion worn down so recovery is visible.
	pet := env.companionFor(t, user.ID, types.SubCategoryTraining)
	pet.Health = 40
	if err := env.companionRepo.Update(context.Background(), nil, pet); err != nil {
		t.Fatalf("update companion: %v", err)
	}

	result, err := svc.Complete(context.Background(), user.ID, activity.ID, "5k in the rain")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	wantXP := companion.BaseCompletionXP + companion.DetailsBonusXP
	if result.XPEarned != wantXP {
		t.Fatalf("xp earned: want=%d got=%d", wantXP, result.XPEarned)
	}
	if result.Delta.PreviousHealth != 40 || result.Delta.NewHealth != 40+companion.RecoveryPerCompletion {
		t.Fatalf("health delta: got %d -> %d", result.Delta.PreviousHealth, result.Delta.NewHealth)
	}
	if result.Delta.LeveledUp || result.Delta.Evolved {
		t.Fatalf("unexpected level-up/evolution on first completion")
	}
	if result.Completion.Source != types.CompletionSourceManual {
		t.Fatalf("source: want MANUAL got %s", result.Completion.Source)
	}
	if result.Completion.CompletedOn == nil {
		t.Fatal("habit completion should carry a completed_on day")
	}

	stored := env.companionFor(t, user.ID, types.SubCategoryTraining)
	if stored.XP != wantXP {
		t.Fatalf("stored xp: want=%d got=%d", wantXP, stored.XP)
	}
	if !stored.LastInteraction.Equal(testNow) {
		t.Fatalf("last interaction not advanced: %s", stored.LastInteraction)
	}
}

func TestCompleteAppliesPendingDecayFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Meditate", types.SubCategoryMeditation)

	// Three days idle: decay 10 + 30 = 40 lands before recovery.
	pet := env.companionFor(t, user.ID, types.SubCategoryMeditation)
	pet.Health = 80
	pet.LastInteraction = testNow.AddDate(0, 0, -3)
	if err := env.companionRepo.Update(context.Background(), nil, pet); err != nil {
		t.Fatalf("update companion: %v", err)
	}

	result, err := svc.Complete(context.Background(), user.ID, activity.ID, "")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Delta.PreviousHealth != 40 {
		t.Fatalf("decayed health: want=40 got=%d", result.Delta.PreviousHealth)
	}
	if result.Delta.NewHealth != 55 {
		t.Fatalf("recovered health: want=55 got=%d", result.Delta.NewHealth)
	}
}

func TestCompleteTwiceSameDayConflicts(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Read", types.SubCategoryReading)

	if _, err := svc.Complete(context.Background(), user.ID, activity.ID, ""); err != nil {
		t.Fatalf("first Complete: %v", err)
	}
	before := env.companionFor(t, user.ID, types.SubCategoryReading)

	_, err := svc.Complete(context.Background(), user.ID, activity.ID, "")
	if !errors.Is(err, ErrAlreadyCompletedToday) {
		t.Fatalf("second Complete: want ErrAlreadyCompletedToday, got %v", err)
	}

	after := env.companionFor(t, user.ID, types.SubCategoryReading)
	if after.XP != before.XP || after.Health != before.Health || after.Level != before.Level {
		t.Fatalf("companion changed by rejected completion: %+v vs %+v", before, after)
	}
}

func TestUncompleteRestoresXPNotHealth(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Journal", types.SubCategoryJournaling)

	pet := env.companionFor(t, user.ID, types.SubCategoryJournaling)
	pet.Health = 50
	pet.XP = 95
	pet.Level = 1
	if err := env.companionRepo.Update(context.Background(), nil, pet); err != nil {
		t.Fatalf("update companion: %v", err)
	}

	completed, err := svc.Complete(context.Background(), user.ID, activity.ID, "long entry")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !completed.Delta.LeveledUp {
		t.Fatalf("expected level-up at %d xp", completed.Delta.NewXP)
	}

	reversed, err := svc.Uncomplete(context.Background(), user.ID, activity.ID)
	if err != nil {
		t.Fatalf("Uncomplete: %v", err)
	}
	if reversed.Delta.NewXP != 95 {
		t.Fatalf("xp after reversal: want=95 got=%d", reversed.Delta.NewXP)
	}
	if reversed.Delta.NewLevel != 1 {
		t.Fatalf("level after reversal: want=1 got=%d", reversed.Delta.NewLevel)
	}

	stored := env.companionFor(t, user.ID, types.SubCategoryJournaling)
	if stored.XP != 95 || stored.Level != 1 || stored.EvolutionStage != 1 {
		t.Fatalf("companion progression not restored: %+v", stored)
	}
	// Health recovery and interaction time survive the reversal.
	if stored.Health != 65 {
		t.Fatalf("health should keep recovery: want=65 got=%d", stored.Health)
	}
	if !stored.LastInteraction.Equal(testNow) {
		t.Fatalf("last interaction should be untouched by reversal")
	}
}

func TestUncompleteWithoutCompletionConflicts(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Stretch", types.SubCategoryTraining)

	_, err := svc.Uncomplete(context.Background(), user.ID, activity.ID)
	if !errors.Is(err, ErrNoCompletionToday) {
		t.Fatalf("want ErrNoCompletionToday, got %v", err)
	}
}

func TestCompleteRejectsForeignAndArchivedActivities(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	owner := env.seedUser(t)
	stranger := env.seedUser(t)
	activity := env.seedActivity(t, owner.ID, "Lift", types.SubCategoryTraining)

	if _, err := svc.Complete(context.Background(), stranger.ID, activity.ID, ""); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("foreign activity: want ErrActivityNotFound, got %v", err)
	}

	activity.Archived = true
	if err := env.activityRepo.Update(context.Background(), nil, activity); err != nil {
		t.Fatalf("archive activity: %v", err)
	}
	if _, err := svc.Complete(context.Background(), owner.ID, activity.ID, ""); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("archived activity: want ErrActivityNotFound, got %v", err)
	}
}

func TestCompleteFailsWithoutCompanion(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()

	user := &types.User{Email: "bare@example.com", Password: "x", FirstName: "Bare", LastName: "User"}
	if _, err := env.userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	activity := env.seedActivity(t, user.ID, "Swim", types.SubCategoryTraining)

	_, err := svc.Complete(context.Background(), user.ID, activity.ID, "")
	if !errors.Is(err, ErrCompanionMissing) {
		t.Fatalf("want ErrCompanionMissing, got %v", err)
	}

	var count int64
	if err := env.db.Model(&types.Completion{}).Count(&count).Error; err != nil {
		t.Fatalf("count completions: %v", err)
	}
	if count != 0 {
		t.Fatalf("transaction leaked a completion row: %d", count)
	}
}

func TestGetHistoryPagination(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Read", types.SubCategoryReading)

	for i := 1; i <= 5; i++ {
		env.seedCompletionAt(t, activity.ID, testNow.AddDate(0, 0, -i))
	}

	page, err := svc.GetHistory(context.Background(), user.ID, activity.ID, 2, 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(page.Completions) != 2 || page.Total != 5 || !page.HasMore {
		t.Fatalf("first page: len=%d total=%d hasMore=%v", len(page.Completions), page.Total, page.HasMore)
	}
	if !page.Completions[0].CompletedAt.After(page.Completions[1].CompletedAt) {
		t.Fatal("history not newest-first")
	}

	last, err := svc.GetHistory(context.Background(), user.ID, activity.ID, 2, 4)
	if err != nil {
		t.Fatalf("GetHistory last page: %v", err)
	}
	if len(last.Completions) != 1 || last.HasMore {
		t.Fatalf("last page: len=%d hasMore=%v", len(last.Completions), last.HasMore)
	}

	clamped, err := svc.GetHistory(context.Background(), user.ID, activity.ID, 1000, -3)
	if err != nil {
		t.Fatalf("GetHistory clamped: %v", err)
	}
	if len(clamped.Completions) != 5 {
		t.Fatalf("clamped page: len=%d", len(clamped.Completions))
	}

	stranger := env.seedUser(t)
	if _, err := svc.GetHistory(context.Background(), stranger.ID, activity.ID, 10, 0); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("foreign history: want ErrActivityNotFound, got %v", err)
	}
}

func TestCompletionDayUniquenessAtDatabase(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Sleep by 11", types.SubCategorySleep)

	env.seedCompletionAt(t, activity.ID, testNow)

	// A second row for the same habit and day must be refused by the
	// unique index even when the service-level check is bypassed.
	dup := &types.Completion{
		ActivityID:  activity.ID,
		CompletedAt: testNow.Add(time.Hour),
	}
	day := testNow.Truncate(24 * time.Hour)
	dup.CompletedOn = &day
	_, err := env.completionRepo.Create(context.Background(), nil, []*types.Completion{dup})
	if err == nil {
		t.Fatal("duplicate habit completion accepted by database")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert: want gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestCompleteRaceLoserSeesConflict(t *testing.T) {
	env := newTestEnv(t)
	svc := env.completionService()
	user := env.seedUser(t)
	activity := env.seedActivity(t, user.ID, "Meditate", types.SubCategoryMeditation)

	// A row holding today's day slot but timestamped yesterday is
	// invisible to the same-day read, the way a concurrent insert that
	// committed first would be. Complete must then lose at the unique
	// index and surface the conflict, not an internal error.
	day := clock.DayStart(testNow)
	shadow := &types.Completion{
		ActivityID:  activity.ID,
		CompletedAt: testNow.Add(-48 * time.Hour),
		CompletedOn: &day,
		XPEarned:    companion.BaseCompletionXP,
		Source:      types.CompletionSourceManual,
	}
	if _, err := env.completionRepo.Create(context.Background(), nil, []*types.Completion{shadow}); err != nil {
		t.Fatalf("seed shadow completion: %v", err)
	}

	if _, err := svc.Complete(context.Background(), user.ID, activity.ID, ""); !errors.Is(err, ErrAlreadyCompletedToday) {
		t.Fatalf("race loser: want ErrAlreadyCompletedToday, got %v", err)
	}

	pet := env.companionFor(t, user.ID, types.SubCategoryMeditation)
	if pet.XP != 0 {
		t.Fatalf("losing completion mutated companion: xp=%d", pet.XP)
	}
}
