package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/habitanimal-backend/internal/logger"
)

type Clients struct {
	Redis *redis.Client
}

// wireClients connects optional external clients. Redis only backs the
// score cache, so a missing REDIS_ADDR disables caching rather than
// failing startup.
func wireClients(log *logger.Logger, cfg Config) Clients {
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		log.Info("Connecting to Redis...", "addr", cfg.RedisAddr)
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	} else {
		log.Info("REDIS_ADDR not set, score caching disabled")
	}
	return Clients{Redis: redisClient}
}
