package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/unclebandit/adreport-backend/internal/controller"
)

const rateLimitPrefix = "adreport:ratelimit"

var periods = map[byte]time.Duration{
	'S': time.Second,
	'M': time.Minute,
	'H': time.Hour,
	'D': 24 * time.Hour,
}

// ParseRate reads "<limit>-<n><unit>" such as "100-15M" (100 requests per 15
// minutes). The count before the unit is optional: "100-M" is per minute.
func ParseRate(formatted string) (limiter.Rate, error) {
	limitPart, periodPart, ok := strings.Cut(strings.TrimSpace(formatted), "-")
	if !ok || periodPart == "" {
		return limiter.Rate{}, fmt.Errorf("invalid rate %q", formatted)
	}
	limit, err := strconv.ParseInt(limitPart, 10, 64)
	if err != nil || limit <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid rate limit %q", formatted)
	}

	unit, ok := periods[strings.ToUpper(periodPart[len(periodPart)-1:])[0]]
	if !ok {
		return limiter.Rate{}, fmt.Errorf("invalid rate period %q", formatted)
	}
	count := int64(1)
	if n := periodPart[:len(periodPart)-1]; n != "" {
		count, err = strconv.ParseInt(n, 10, 64)
		if err != nil || count <= 0 {
			return limiter.Rate{}, fmt.Errorf("invalid rate period %q", formatted)
		}
	}
	return limiter.Rate{Formatted: formatted, Period: time.Duration(count) * unit, Limit: limit}, nil
}

// NewLimiterStore uses Redis when a client is given, otherwise process memory.
func NewLimiterStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: time.Minute,
		}), nil
	}
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
}

// RateLimit limits every client IP to rate. The root path is exempt.
func RateLimit(store limiter.Store, rate limiter.Rate) func(http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(limiter.New(store, rate),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			controller.WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"message": "Too many requests from this IP, please try again later.",
			})
		}),
	)
	return func(next http.Handler) http.Handler {
		limited := mw.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
