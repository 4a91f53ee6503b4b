package mock

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis whose key expiry follows the test clock
// rather than wall time.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

func NewRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return &Redis{
		Server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}
}

// FastForward expires keys as if d had elapsed.
func (r *Redis) FastForward(d time.Duration) {
	r.Server.FastForward(d)
}

// Keys lists the stored keys matching pattern.
func (r *Redis) Keys(pattern string) ([]string, error) {
	return r.Client.Keys(context.Background(), pattern).Result()
}

func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.Background()).Err()
}
