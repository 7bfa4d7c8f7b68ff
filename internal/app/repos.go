package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	Companion    repos.CompanionRepo
	Activity     repos.ActivityRepo
	Completion   repos.CompletionRepo
	DailyScore   repos.DailyScoreRepo
	WeightConfig repos.WeightConfigRepo
	AutoTrigger  repos.AutoTriggerRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Companion:    repos.NewCompanionRepo(db, log),
		Activity:     repos.NewActivityRepo(db, log),
		Completion:   repos.NewCompletionRepo(db, log),
		DailyScore:   repos.NewDailyScoreRepo(db, log),
		WeightConfig: repos.NewWeightConfigRepo(db, log),
		AutoTrigger:  repos.NewAutoTriggerRepo(db, log),
	}
}
