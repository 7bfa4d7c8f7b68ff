package utils

import (
	"os"
	"strconv"

	"github.com/yungbote/habitanimal-backend/internal/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	raw, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable not an integer, using default", "value", raw, "default", defaultVal)
		}
		return defaultVal
	}
	return parsed
}

func GetEnvAsBool(key string, defaultVal bool, log *logger.Logger) bool {
	if log != nil {
		log = log.With("env_var", key)
	}
	raw, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable not a bool, using default", "value", raw, "default", defaultVal)
		}
		return defaultVal
	}
	return parsed
}
