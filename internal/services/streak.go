package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

// Streaks look back this many days; any completion on a day counts,
// regardless of pillar.
const streakLookbackDays = 365

type StreakResult struct {
	Current        int  `json:"current"`
	Longest        int  `json:"longest"`
	AtRisk         bool `json:"at_risk"`
	HoursRemaining int  `json:"hours_remaining"`
}

type StreakService interface {
	GetStreak(ctx context.Context, userID uuid.UUID) (*StreakResult, error)
}

type streakService struct {
	db             *gorm.DB
	log            *logger.Logger
	clk            clock.Clock
	completionRepo repos.CompletionRepo
	activityRepo   repos.ActivityRepo
}

func NewStreakService(
	db *gorm.DB,
	log *logger.Logger,
	clk clock.Clock,
	completionRepo repos.CompletionRepo,
	activityRepo repos.ActivityRepo,
) StreakService {
	serviceLog := log.With("service", "StreakService")
	return &streakService{
		db:             db,
		log:            serviceLog,
		clk:            clk,
		completionRepo: completionRepo,
		activityRepo:   activityRepo,
	}
}

func (ss *streakService) GetStreak(ctx context.Context, userID uuid.UUID) (*StreakResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}

	now := ss.clk.Now()
	today := clock.DayStart(now)
	from := today.AddDate(0, 0, -streakLookbackDays)
	to := clock.DayEnd(now)

	completions, err := ss.completionRepo.GetByUserAndRange(ctx, nil, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	days := distinctDays(completions, now.Location())
	current := currentStreak(days, today)
	longest := longestStreak(days)

	atRisk, hoursRemaining, err := ss.atRisk(ctx, userID, completions, current, now)
	if err != nil {
		return nil, err
	}

	return &StreakResult{
		Current:        current,
		Longest:        longest,
		AtRisk:         atRisk,
		HoursRemaining: hoursRemaining,
	}, nil
}

// atRisk reports whether inaction today would break the current streak:
// the streak is alive but both pillars have not yet been completed today.
func (ss *streakService) atRisk(ctx context.Context, userID uuid.UUID, completions []*types.Completion, current int, now time.Time) (bool, int, error) {
	if current == 0 {
		return false, 0, nil
	}

	today := clock.DayStart(now)
	var todayActivityIDs []uuid.UUID
	for _, c := range completions {
		if !clock.DayStart(c.CompletedAt.In(now.Location())).Equal(today) {
			continue
		}
		todayActivityIDs = append(todayActivityIDs, c.ActivityID)
	}

	pillarDone := map[types.Pillar]bool{}
	if len(todayActivityIDs) > 0 {
		activities, err := ss.activityRepo.GetByIDs(ctx, nil, todayActivityIDs)
		if err != nil {
			return false, 0, fmt.Errorf("load today's activities: %w", err)
		}
		for _, a := range activities {
			pillarDone[a.Pillar] = true
		}
	}

	if pillarDone[types.PillarBody] && pillarDone[types.PillarMind] {
		return false, 0, nil
	}
	hoursRemaining := int(clock.DayEnd(now).Sub(now).Hours())
	return true, hoursRemaining, nil
}

// distinctDays collapses completion timestamps to unique local midnights.
func distinctDays(completions []*types.Completion, loc *time.Location) []time.Time {
	seen := map[time.Time]struct{}{}
	for _, c := range completions {
		day := clock.DayStart(c.CompletedAt.In(loc))
		seen[day] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// currentStreak walks backward from today (or yesterday, which keeps the
// streak alive) counting consecutive days until the first gap.
func currentStreak(daysDesc []time.Time, today time.Time) int {
	if len(daysDesc) == 0 {
		return 0
	}
	anchor := daysDesc[0]
	if !anchor.Equal(today) && !anchor.Equal(today.AddDate(0, 0, -1)) {
		return 0
	}
	streak := 1
	expected := anchor.AddDate(0, 0, -1)
	for _, d := range daysDesc[1:] {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak scans the sorted days pairwise, resetting on any gap.
func longestStreak(daysDesc []time.Time) int {
	if len(daysDesc) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(daysDesc); i++ {
		if daysDesc[i].Equal(daysDesc[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
