package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/clock"
	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
	"github.com/yungbote/habitanimal-backend/internal/types"
)

const (
	detailsScoreBonus = 10
	balanceBonus      = 5
	balanceWindow     = 15

	// Whoop-derived score shaping.
	strainScoreDivisor    = 15.0
	sleepRecoveryBase     = 0.8
	sleepRecoveryDivisor  = 500.0
	sleepEfficiencyCutoff = 85.0
	sleepEfficiencyBonus  = 5

	scoreCacheTTL = 15 * time.Minute
)

// WhoopDaily is the shape of external biometrics for one day, as delivered
// by the upstream sync. Absent fields leave the manual score in place.
type WhoopDaily struct {
	Strain           *float64 `json:"strain,omitempty"`
	RecoveryScore    *float64 `json:"recovery_score,omitempty"`
	SleepPerformance *float64 `json:"sleep_performance,omitempty"`
	SleepEfficiency  *float64 `json:"sleep_efficiency,omitempty"`
	SleepHours       *float64 `json:"sleep_hours,omitempty"`
}

type ScoringService interface {
	ComputeDailyScore(ctx context.Context, userID uuid.UUID, date time.Time, whoop *WhoopDaily) (*types.DailyScore, error)
	GetDailyScore(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailyScore, error)
	InvalidateDay(ctx context.Context, userID uuid.UUID, day time.Time)
}

type scoringService struct {
	db                *gorm.DB
	log               *logger.Logger
	clk               clock.Clock
	activityRepo      repos.ActivityRepo
	completionRepo    repos.CompletionRepo
	dailyScoreRepo    repos.DailyScoreRepo
	weightSvc         WeightConfigService
	cache             *redis.Client
	includeJournaling bool
}

// NewScoringService builds the daily scoring engine. cache may be nil;
// includeJournaling folds the journaling weight into the mind blend (off
// reproduces the observed reference behavior).
func NewScoringService(
	db *gorm.DB,
	log *logger.Logger,
	clk clock.Clock,
	activityRepo repos.ActivityRepo,
	completionRepo repos.CompletionRepo,
	dailyScoreRepo repos.DailyScoreRepo,
	weightSvc WeightConfigService,
	cache *redis.Client,
	includeJournaling bool,
) ScoringService {
	serviceLog := log.With("service", "ScoringService")
	return &scoringService{
		db:                db,
		log:               serviceLog,
		clk:               clk,
		activityRepo:      activityRepo,
		completionRepo:    completionRepo,
		dailyScoreRepo:    dailyScoreRepo,
		weightSvc:         weightSvc,
		cache:             cache,
		includeJournaling: includeJournaling,
	}
}

// GetDailyScore serves from cache when possible, otherwise recomputes
// (without biometrics beyond what was already captured for the day).
func (ss *scoringService) GetDailyScore(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailyScore, error) {
	day := clock.DayStart(date)

	if cached := ss.cacheGet(ctx, userID, day); cached != nil {
		return cached, nil
	}

	existing, err := ss.dailyScoreRepo.GetByUserAndDate(ctx, nil, userID, day)
	if err != nil {
		return nil, fmt.Errorf("load daily score: %w", err)
	}

	var whoop *WhoopDaily
	if existing != nil && len(existing.WhoopInputs) > 0 {
		var captured WhoopDaily
		if err := json.Unmarshal(existing.WhoopInputs, &captured); err == nil {
			whoop = &captured
		}
	}
	return ss.ComputeDailyScore(ctx, userID, day, whoop)
}

// ComputeDailyScore recomputes and upserts the score for one day. The
// computation is pure over its inputs: rescoring the same day with the
// same completions and biometrics yields identical numbers.
func (ss *scoringService) ComputeDailyScore(ctx context.Context, userID uuid.UUID, date time.Time, whoop *WhoopDaily) (*types.DailyScore, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	day := clock.DayStart(date)
	dayEnd := clock.DayEnd(date)

	subScores := map[types.SubCategory]int{}
	for _, category := range types.AllSubCategories() {
		score, err := ss.manualScore(ctx, userID, category, day, dayEnd)
		if err != nil {
			return nil, err
		}
		subScores[category] = score
	}

	// External biometrics override the manual training and sleep scores.
	if whoop != nil {
		if whoop.Strain != nil {
			subScores[types.SubCategoryTraining] = strainScore(*whoop.Strain)
		}
		if whoop.SleepPerformance != nil {
			subScores[types.SubCategorySleep] = sleepScore(whoop)
		}
	}

	cfg, err := ss.weightSvc.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load weight config: %w", err)
	}

	bodyScore := weightedBlend(
		[]int{subScores[types.SubCategoryTraining], subScores[types.SubCategorySleep], subScores[types.SubCategoryNutrition]},
		[]int{cfg.TrainingWeight, cfg.SleepWeight, cfg.NutritionWeight},
	)

	mindScores := []int{subScores[types.SubCategoryMeditation], subScores[types.SubCategoryReading], subScores[types.SubCategoryLearning]}
	mindWeights := []int{cfg.MeditationWeight, cfg.ReadingWeight, cfg.LearningWeight}
	if ss.includeJournaling && cfg.JournalingWeight > 0 {
		mindScores = append(mindScores, subScores[types.SubCategoryJournaling])
		mindWeights = append(mindWeights, cfg.JournalingWeight)
	}
	mindScore := weightedBlend(mindScores, mindWeights)

	balance := balanceIndex(bodyScore, mindScore)

	row := &types.DailyScore{
		UserID:          userID,
		Date:            day,
		BodyScore:       bodyScore,
		MindScore:       mindScore,
		BalanceScore:    balance,
		TrainingScore:   subScores[types.SubCategoryTraining],
		SleepScore:      subScores[types.SubCategorySleep],
		NutritionScore:  subScores[types.SubCategoryNutrition],
		MeditationScore: subScores[types.SubCategoryMeditation],
		ReadingScore:    subScores[types.SubCategoryReading],
		LearningScore:   subScores[types.SubCategoryLearning],
	}
	if whoop != nil {
		raw, err := json.Marshal(whoop)
		if err != nil {
			return nil, fmt.Errorf("marshal whoop inputs: %w", err)
		}
		row.WhoopInputs = datatypes.JSON(raw)
	}

	if err := ss.dailyScoreRepo.Upsert(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("upsert daily score: %w", err)
	}

	ss.cacheSet(ctx, userID, day, row)
	return row, nil
}

func (ss *scoringService) InvalidateDay(ctx context.Context, userID uuid.UUID, day time.Time) {
	if ss.cache == nil {
		return
	}
	if err := ss.cache.Del(ctx, scoreCacheKey(userID, clock.DayStart(day))).Err(); err != nil {
		ss.log.Warn("Failed to invalidate score cache", "error", err)
	}
}

// manualScore is the completion-ratio score for one sub-category: the
// share of its habit activities completed that day, with a flat bonus when
// any completion carries details. No habits scores as zero contribution.
func (ss *scoringService) manualScore(ctx context.Context, userID uuid.UUID, category types.SubCategory, day, dayEnd time.Time) (int, error) {
	habits, err := ss.activityRepo.GetHabitsByUserAndCategory(ctx, nil, userID, category)
	if err != nil {
		return 0, fmt.Errorf("load %s habits: %w", category, err)
	}
	if len(habits) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	completions, err := ss.completionRepo.GetByActivitiesAndRange(ctx, nil, ids, day, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("load %s completions: %w", category, err)
	}

	completed := map[uuid.UUID]struct{}{}
	hasDetails := false
	for _, c := range completions {
		completed[c.ActivityID] = struct{}{}
		if c.Details != "" {
			hasDetails = true
		}
	}

	score := int(math.Round(100 * float64(len(completed)) / float64(len(habits))))
	if hasDetails {
		score += detailsScoreBonus
	}
	return clampScore(score), nil
}

func strainScore(strain float64) int {
	score := int(math.Round(strain / strainScoreDivisor * 100))
	return clampScore(score)
}

func sleepScore(whoop *WhoopDaily) int {
	performance := *whoop.SleepPerformance
	modifier := sleepRecoveryBase
	if whoop.RecoveryScore != nil {
		modifier = sleepRecoveryBase + *whoop.RecoveryScore/sleepRecoveryDivisor
	}
	score := int(math.Round(performance * modifier))
	if whoop.SleepEfficiency != nil && *whoop.SleepEfficiency > sleepEfficiencyCutoff {
		score += sleepEfficiencyBonus
	}
	return clampScore(score)
}

// weightedBlend applies percentage weights, renormalizing by their sum so
// an optional extra weight (journaling) folds in cleanly.
func weightedBlend(scores []int, weights []int) int {
	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	sum := 0.0
	for i, s := range scores {
		sum += float64(s) * float64(weights[i])
	}
	return clampScore(int(math.Round(sum / float64(totalWeight))))
}

// balanceIndex rewards pillar balance, not just high totals.
func balanceIndex(body, mind int) int {
	balance := int(math.Round(float64(body+mind) / 2))
	diff := body - mind
	if diff < 0 {
		diff = -diff
	}
	if diff <= balanceWindow && body > 0 && mind > 0 {
		balance += balanceBonus
	}
	return clampScore(balance)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func scoreCacheKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("dailyscore:%s:%s", userID, day.Format("2006-01-02"))
}

func (ss *scoringService) cacheGet(ctx context.Context, userID uuid.UUID, day time.Time) *types.DailyScore {
	if ss.cache == nil {
		return nil
	}
	raw, err := ss.cache.Get(ctx, scoreCacheKey(userID, day)).Bytes()
	if err != nil {
		if err != redis.Nil {
			ss.log.Warn("Score cache read failed", "error", err)
		}
		return nil
	}
	var score types.DailyScore
	if err := json.Unmarshal(raw, &score); err != nil {
		ss.log.Warn("Score cache entry corrupt", "error", err)
		return nil
	}
	return &score
}

func (ss *scoringService) cacheSet(ctx context.Context, userID uuid.UUID, day time.Time, score *types.DailyScore) {
	if ss.cache == nil {
		return
	}
	raw, err := json.Marshal(score)
	if err != nil {
		return
	}
	if err := ss.cache.Set(ctx, scoreCacheKey(userID, day), raw, scoreCacheTTL).Err(); err != nil {
		ss.log.Warn("Score cache write failed", "error", err)
	}
}
