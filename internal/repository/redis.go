package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects and pings so a bad address fails at startup rather than
// on the first cache access. Callers treat a nil client as "no cache".
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
