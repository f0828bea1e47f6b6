package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/pkg/clientip"
)

const (
	// RateLimitWindow is 120 seconds
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed per IP in the window
	RateLimitMaxRequests = 120
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RateLimit counts requests per client IP in Redis with a fixed window.
// When Redis is unavailable requests are let through.
func RateLimit(client *redis.Client, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := RateLimitKeyPrefix + clientip.RealClientIP(r)

			n, err := client.Incr(ctx, key).Result()
			if err == nil && n == 1 {
				// First request in this window
				err = client.Expire(ctx, key, RateLimitWindow).Err()
			}
			if err != nil {
				log.Warn("rate limit check failed, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			count := int(n)
			remaining := RateLimitMaxRequests - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(RateLimitWindow).Unix(), 10))

			if count > RateLimitMaxRequests {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(RateLimitWindow.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(fmt.Sprintf(`{"success":false,"error":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(RateLimitWindow.Seconds()))))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
