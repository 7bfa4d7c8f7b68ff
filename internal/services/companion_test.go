package services

import (
	"context"
	"testing"

	"github.com/yungbote/habitanimal-backend/internal/companion"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

func TestListForUserDecaysWithoutPersisting(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCompanionService(env.db, env.log, env.clk, env.companionRepo)
	user := env.seedUser(t)

	// Four idle days: 10 + 2*30 = 70 off the stored 100.
	pet := env.companionFor(t, user.ID, types.SubCategoryReading)
	pet.LastInteraction = testNow.AddDate(0, 0, -4)
	if err := env.companionRepo.Update(context.Background(), nil, pet); err != nil {
		t.Fatalf("update companion: %v", err)
	}

	views, err := svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(views) != len(types.AllSubCategories()) {
		t.Fatalf("views: want=%d got=%d", len(types.AllSubCategories()), len(views))
	}

	var reading *CompanionView
	for _, v := range views {
		if v.Category == types.SubCategoryReading {
			reading = v
		}
	}
	if reading == nil {
		t.Fatal("reading companion missing from views")
	}
	if reading.CurrentHealth != 30 {
		t.Fatalf("decayed view health: want=30 got=%d", reading.CurrentHealth)
	}
	if reading.Mood != companion.MoodTired {
		t.Fatalf("mood: want=%s got=%s", companion.MoodTired, reading.Mood)
	}
	if !reading.NeedsAttention {
		t.Fatal("companion at 30 health should need attention")
	}

	// The read must not write the decay back.
	stored := env.companionFor(t, user.ID, types.SubCategoryReading)
	if stored.Health != companion.MaxHealth {
		t.Fatalf("read persisted decay: stored health %d", stored.Health)
	}
}

func TestCompanionViewXPToNextLevel(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCompanionService(env.db, env.log, env.clk, env.companionRepo)
	user := env.seedUser(t)

	pet := env.companionFor(t, user.ID, types.SubCategoryTraining)
	pet.XP = 150
	pet.Level = 2
	if err := env.companionRepo.Update(context.Background(), nil, pet); err != nil {
		t.Fatalf("update companion: %v", err)
	}

	views, err := svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	for _, v := range views {
		if v.Category != types.SubCategoryTraining {
			continue
		}
		// Level 3 starts at 300 total XP.
		if v.XPToNextLevel != 150 {
			t.Fatalf("xp to next level: want=150 got=%d", v.XPToNextLevel)
		}
		return
	}
	t.Fatal("training companion missing from views")
}
