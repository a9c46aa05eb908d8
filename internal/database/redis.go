package database

import (
	"context"

	"teasupply-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// InitRedis connects the client used for short-lived OTP codes.
func InitRedis(cfg *config.Config, log *logrus.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).WithField("address", cfg.RedisAddress).
			Warn("redis not reachable, driver OTP login unavailable")
	}
	return rdb
}
