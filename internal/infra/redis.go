package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the shared Redis client backing the email job queue, the
// monthly report cache, the public login-screen cache and the reminder dedup
// keys. Connectivity is checked with a ping so a bad REDIS_URL fails at boot
// rather than on the first reconocimiento.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
