package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/habitanimal-backend/internal/types"
)

func TestActivityCreateDerivesPillar(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.db, env.log, env.activityRepo)
	user := env.seedUser(t)

	activity, err := svc.Create(context.Background(), user.ID, "  Morning run ", types.SubCategoryTraining, 0, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if activity.Name != "Morning run" {
		t.Fatalf("name not trimmed: %q", activity.Name)
	}
	if activity.Pillar != types.PillarBody {
		t.Fatalf("pillar: want=%s got=%s", types.PillarBody, activity.Pillar)
	}
	if activity.Points != defaultActivityPoints {
		t.Fatalf("points default: want=%d got=%d", defaultActivityPoints, activity.Points)
	}

	if _, err := svc.Create(context.Background(), user.ID, "Mystery", types.SubCategory("ASTROLOGY"), 10, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown category: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), user.ID, "   ", types.SubCategoryReading, 10, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: want ErrInvalidInput, got %v", err)
	}
}

func TestActivityArchiveHidesFromDefaultList(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.db, env.log, env.activityRepo)
	user := env.seedUser(t)

	keep, err := svc.Create(context.Background(), user.ID, "Read", types.SubCategoryReading, 10, true)
	if err != nil {
		t.Fatalf("Create keep: %v", err)
	}
	drop, err := svc.Create(context.Background(), user.ID, "Run", types.SubCategoryTraining, 10, true)
	if err != nil {
		t.Fatalf("Create drop: %v", err)
	}

	if _, err := svc.Archive(context.Background(), user.ID, drop.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	active, err := svc.List(context.Background(), user.ID, false)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(active) != 1 || active[0].ID != keep.ID {
		t.Fatalf("active list: %+v", active)
	}

	all, err := svc.List(context.Background(), user.ID, true)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("full list: want=2 got=%d", len(all))
	}

	// Unarchive restores it.
	if _, err := svc.Unarchive(context.Background(), user.ID, drop.ID); err != nil {
		t.Fatalf("Unarchive: %v", err)
	}
	active, err = svc.List(context.Background(), user.ID, false)
	if err != nil {
		t.Fatalf("List after unarchive: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active after unarchive: want=2 got=%d", len(active))
	}

	stranger := env.seedUser(t)
	if _, err := svc.Archive(context.Background(), stranger.ID, keep.ID); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("foreign archive: want ErrActivityNotFound, got %v", err)
	}
}
