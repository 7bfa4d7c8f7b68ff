package app

import (
	"strings"
	"time"

	"github.com/yungbote/habitanimal-backend/internal/logger"
	"github.com/yungbote/habitanimal-backend/internal/utils"
)

type Config struct {
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
	RedisAddr         string
	IncludeJournaling bool
	AllowOrigins      []string
	Port              string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	includeJournaling := utils.GetEnvAsBool("SCORE_INCLUDE_JOURNALING", false, log)
	origins := utils.GetEnv("ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
	port := utils.GetEnv("PORT", "8080", log)

	return Config{
		JWTSecretKey:      jwtSecretKey,
		AccessTokenTTL:    time.Duration(accessTokenTTLSeconds) * time.Second,
		RedisAddr:         redisAddr,
		IncludeJournaling: includeJournaling,
		AllowOrigins:      strings.Split(origins, ","),
		Port:              port,
	}
}
