package companion

import (
	"testing"
	"time"
)

func TestDecayHealth(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		current int
		last    time.Time
		want    int
	}{
		{
			name:    "completed_today_no_decay",
			current: 70,
			last:    now.Add(-2 * time.Hour),
			want:    70,
		},
		{
			name:    "one_day_grace_no_decay",
			current: 70,
			last:    now.AddDate(0, 0, -1),
			want:    70,
		},
		{
			name:    "two_days_single_miss_penalty",
			current: 70,
			last:    now.AddDate(0, 0, -2),
			want:    60,
		},
		{
			name:    "three_days_adds_repeat_penalty",
			current: 70,
			last:    now.AddDate(0, 0, -3),
			want:    30,
		},
		{
			name:    "five_days_clamped_at_zero",
			current: 70,
			last:    now.AddDate(0, 0, -5),
			want:    0,
		},
		{
			name:    "future_last_interaction_treated_as_elapsed",
			current: 70,
			last:    now.Add(12 * time.Hour),
			want:    70,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecayHealth(tc.current, tc.last, now)
			if got != tc.want {
				t.Fatalf("DecayHealth(%d, %s)=%d, want %d", tc.current, tc.last, got, tc.want)
			}
		})
	}
}

func TestDecayHealthNoDecayWithinGrace(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for hours := 0; hours <= 47; hours++ {
		last := now.Add(-time.Duration(hours) * time.Hour)
		if got := DecayHealth(55, last, now); got != 55 {
			t.Fatalf("decay after %dh: got %d, want unchanged 55", hours, got)
		}
	}
}

func TestRecoverHealth(t *testing.T) {
	if got := RecoverHealth(50); got != 65 {
		t.Fatalf("RecoverHealth(50)=%d, want 65", got)
	}
	if got := RecoverHealth(95); got != 100 {
		t.Fatalf("RecoverHealth(95)=%d, want capped 100", got)
	}
	prev := -1
	for h := 0; h <= 100; h++ {
		got := RecoverHealth(h)
		if got > MaxHealth {
			t.Fatalf("RecoverHealth(%d)=%d exceeds max", h, got)
		}
		if got < prev {
			t.Fatalf("RecoverHealth not monotonic at %d: %d < %d", h, got, prev)
		}
		prev = got
	}
}

func TestMoodFor(t *testing.T) {
	cases := []struct {
		health int
		want   Mood
	}{
		{100, MoodHappy},
		{80, MoodHappy},
		{79, MoodNeutral},
		{50, MoodNeutral},
		{49, MoodTired},
		{30, MoodTired},
		{29, MoodSad},
		{0, MoodSad},
	}
	for _, tc := range cases {
		if got := MoodFor(tc.health); got != tc.want {
			t.Fatalf("MoodFor(%d)=%s, want %s", tc.health, got, tc.want)
		}
	}
}

func TestNeedsAttention(t *testing.T) {
	if NeedsAttention(50) {
		t.Fatal("health 50 should not need attention")
	}
	if !NeedsAttention(49) {
		t.Fatal("health 49 should need attention")
	}
}
