package companion

const (
	// XP awarded per completion, plus a flat bonus when the completion
	// carries free-text details (richer logging is worth more).
	BaseCompletionXP = 10
	DetailsBonusXP   = 5

	// Cost of advancing from level L to L+1 is L * xpPerLevelStep.
	xpPerLevelStep = 100
)

// Levels at which the companion evolves to its next stage.
var evolutionLevels = [...]int{10, 25, 50}

func XPForCompletion(hasDetails bool) int {
	if hasDetails {
		return BaseCompletionXP + DetailsBonusXP
	}
	return BaseCompletionXP
}

// XPForNextLevel returns the XP needed to go from level to level+1.
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * xpPerLevelStep
}

// TotalXPForLevel returns the cumulative XP floor of a level; level 1
// starts at 0. Level(TotalXPForLevel(L)) == L for every valid L.
func TotalXPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	// sum of i*xpPerLevelStep for i in [1, level-1]
	return xpPerLevelStep * (level - 1) * level / 2
}

// Level maps total XP to a level by searching the floor table upward.
func Level(xp int) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for xp >= TotalXPForLevel(level+1) {
		level++
	}
	return level
}

// EvolutionStage maps a level to its coarse visual tier, starting at 1.
func EvolutionStage(level int) int {
	stage := 1
	for _, threshold := range evolutionLevels {
		if level >= threshold {
			stage++
		}
	}
	return stage
}
