package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/types"
	"github.com/yungbote/habitanimal-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the configured database. DB_DRIVER=sqlite uses a file (or
// in-memory) database for local development; the default is postgres.
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := utils.GetEnv("DB_DRIVER", "postgres", log)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "habitanimal.db", log)
		serviceLog.Info("Connecting to sqlite...", "path", path)
		gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			TranslateError: true,
		})
		if err != nil {
			serviceLog.Error("Failed to open sqlite", "error", err)
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Service{db: gdb, log: serviceLog}, nil
	case "postgres":
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "habitanimal", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

		serviceLog.Info("Connecting to Postgres...")
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			TranslateError:                           true,
		})
		if err != nil {
			serviceLog.Error("Failed to connect to Postgres", "error", err)
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return &Service{db: gdb, log: serviceLog}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Companion{},
		&types.Activity{},
		&types.Completion{},
		&types.DailyScore{},
		&types.WeightConfig{},
		&types.AutoTrigger{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return fmt.Errorf("automigrate: %w", err)
	}
	s.log.Info("Auto migration complete")
	return nil
}
