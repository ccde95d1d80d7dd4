package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitMax    = 10
	rateLimitWindow = time.Minute
)

// RateLimit returns a middleware that throttles anonymous callers per
// IP using a fixed redis window. Used on the public form endpoints.
// A nil client disables limiting.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := time.Now().Unix() / int64(rateLimitWindow.Seconds())
		key := fmt.Sprintf("pulsefit:rate_limit:%s:%d", ip, windowKey)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			c.Header("Retry-After", "60")
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
