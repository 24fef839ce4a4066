package security

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit returns route middleware enforcing a fixed window of max requests.
// Authenticated requests are keyed by user id, anonymous ones by client IP.
func (r *RateLimiter) Limit(name string, max int, window time.Duration) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		identifier := e.RealIP()
		if e.Auth != nil {
			identifier = "user:" + e.Auth.Id
		}

		key := fmt.Sprintf("ratelimit:%s:%s", name, identifier)
		ctx := e.Request.Context()

		count, err := r.redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis failure must not take booking down with it
			return e.Next()
		}
		if count == 1 {
			r.redis.Expire(ctx, key, window)
		}

		if count > int64(max) {
			return e.JSON(429, map[string]string{
				"error": "Rate limit exceeded. Please try again later.",
			})
		}

		return e.Next()
	}
}
