package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"hotel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPrefix = "hotel-booking:rl"

// tokenBucket refills one token per interval up to capacity and takes one
// per request. Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])
	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local intervals = math.floor(math.max(0, now_ms - last_refill) / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + intervals * interval_ms
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)
	return { allowed, tokens, retry_after_ms }
`)

// RateLimit throttles each caller (user when authenticated, otherwise
// client IP) per path. A nil client or a disabled config lets every request
// through, and Redis errors fail open.
func RateLimit(config utils.RateLimitConfig, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	if !config.Enabled || rdb == nil || config.Capacity < 1 {
		return func(next http.Handler) http.Handler { return next }
	}

	interval := config.RefillInterval
	if interval <= 0 {
		interval = time.Second
	}
	ttl := int64(math.Ceil(float64(config.Capacity)*interval.Seconds())) + 1

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(r)
			res, err := tokenBucket.Run(r.Context(), rdb, []string{key},
				time.Now().UnixMilli(), config.Capacity, interval.Milliseconds(), ttl,
			).Int64Slice()
			if err != nil || len(res) != 3 {
				logger.Warn("Rate limiter unavailable, allowing request", zap.String("key", key), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))

			if res[0] != 1 {
				secs := int64(math.Ceil(float64(res[2]) / 1000))
				w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
				utils.ResponseTooManyRequests(w, "Request was throttled, please retry later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateKey(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return fmt.Sprintf("%s:user:%s:%s %s", rateLimitPrefix, userID, r.Method, r.URL.Path)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return fmt.Sprintf("%s:ip:%s:%s %s", rateLimitPrefix, host, r.Method, r.URL.Path)
}
