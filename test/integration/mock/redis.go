package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisConnOnce sync.Once
	redisConn     *redis.Client
)

// NewRedis returns a client against a suite-wide miniredis instance. The
// catalogue snapshot cache lives here during feature runs.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{
			Addr: server.Addr(),
		})
	})

	return redisConn
}

// ClearRedis flushes every key between scenarios.
func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}
