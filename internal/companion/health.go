package companion

import "time"

const (
	MinHealth = 0
	MaxHealth = 100

	// One missed day is forgiven outright ("Never Miss Twice").
	GraceDays = 1

	// Penalty for the first counted miss, then a steeper one for every
	// further consecutive missed day.
	SingleMissPenalty = 10
	RepeatMissPenalty = 30

	RecoveryPerCompletion = 15

	AttentionThreshold = 50
)

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodTired   Mood = "tired"
	MoodSad     Mood = "sad"
)

// DecayHealth returns the health a companion has fallen to after the time
// between lastInteraction and now. Up to GraceDays missed days cost
// nothing; the second day costs SingleMissPenalty; every day past that
// adds RepeatMissPenalty.
func DecayHealth(current int, lastInteraction, now time.Time) int {
	elapsed := now.Sub(lastInteraction)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	daysMissed := int(elapsed.Hours() / 24)
	if daysMissed <= GraceDays {
		return clampHealth(current)
	}
	penalty := SingleMissPenalty
	if daysMissed > 2 {
		penalty += (daysMissed - 2) * RepeatMissPenalty
	}
	return clampHealth(current - penalty)
}

// RecoverHealth applies the per-completion recovery. Recovery is never
// reversed when a completion is deleted.
func RecoverHealth(current int) int {
	return clampHealth(current + RecoveryPerCompletion)
}

func MoodFor(health int) Mood {
	switch {
	case health >= 80:
		return MoodHappy
	case health >= 50:
		return MoodNeutral
	case health >= 30:
		return MoodTired
	default:
		return MoodSad
	}
}

func NeedsAttention(health int) bool {
	return health < AttentionThreshold
}

func clampHealth(h int) int {
	if h < MinHealth {
		return MinHealth
	}
	if h > MaxHealth {
		return MaxHealth
	}
	return h
}
