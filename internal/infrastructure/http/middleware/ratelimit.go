package middleware

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const LoginLimitMessage = "Too many login attempts from this IP, please try again after a 60 second pause"

// NewLimiterStore keeps counters in Redis when a client is given, so that
// several instances share one window; otherwise in process memory.
func NewLimiterStore(client *redis.Client, prefix string) (limiter.Store, error) {
	opts := limiter.StoreOptions{Prefix: prefix, CleanUpInterval: limiter.DefaultCleanUpInterval}
	if client == nil {
		return memory.NewStoreWithOptions(opts), nil
	}
	return redisstore.NewStoreWithOptions(client, opts)
}

// NewIPRateLimiter returns middleware that limits by client IP.
// rateFormatted: "100-M", "1000-H", "50-S". Empty disables.
func NewIPRateLimiter(rateFormatted string, store limiter.Store) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, rate)
	return stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusTooManyRequests, "Too many requests")
	})).Handler, nil
}

// NewLoginRateLimiter limits login attempts per client IP and logs every
// rejected attempt.
func NewLoginRateLimiter(rateFormatted string, store limiter.Store, log zerolog.Logger) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, rate)
	return stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("origin", r.Header.Get("Origin")).
			Str("ip", r.RemoteAddr).
			Msg(LoginLimitMessage)
		writeErr(w, http.StatusTooManyRequests, LoginLimitMessage)
	})).Handler, nil
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
