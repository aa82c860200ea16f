package router

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Fixed-window counter. The first hit sets the key with the window TTL,
// later hits increment it, so all hits in a window share one expiry.
const rateLimitScript = `
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return current
`

// parseRouteLimits reads per-route overrides, keyed either as
// "METHOD /path" or as a bare "/path".
func parseRouteLimits(cfg config.Config) map[string]int64 {
	routeLimits := make(map[string]int64)
	if cfg == nil {
		return routeLimits
	}

	for route, raw := range cfg.GetMap("server.ratelimit.routes") {
		limit, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || limit <= 0 {
			slog.Warn("server: invalid rate limit route entry", "route", route, "value", raw)
			continue
		}
		routeLimits[strings.TrimSpace(route)] = limit
	}

	return routeLimits
}

// routeLimit resolves the limit for a request, preferring a method-qualified
// override over a bare-path one before falling back to the default.
func routeLimit(limits map[string]int64, fallback int64, method, route string) int64 {
	if limit, ok := limits[method+" "+route]; ok {
		return limit
	}
	if limit, ok := limits[route]; ok {
		return limit
	}
	return fallback
}

func middlewareRateLimit(cfg config.Config, rdb redis.UniversalClient) Middleware {
	var defaultLimit int64
	if cfg != nil {
		defaultLimit = cfg.GetInt64("server.ratelimit.default_per_minute")
	}
	routeLimits := parseRouteLimits(cfg)

	limiter := redis.NewScript(rateLimitScript)
	window := time.Minute

	return func(next http.Handler) http.Handler {
		if rdb == nil || (defaultLimit <= 0 && len(routeLimits) == 0) {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			limit := routeLimit(routeLimits, defaultLimit, r.Method, route)
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			bucket := strconv.FormatInt(time.Now().Unix()/int64(window.Seconds()), 10)
			key := "ratelimit:" + r.Method + ":" + route + ":" + clientIP(r) + ":" + bucket

			count, err := limiter.Run(r.Context(), rdb, []string{key}, int(window.Seconds())).Int64()
			if err != nil {
				// fail open, the limiter must not take the API down with it
				slog.WarnContext(r.Context(), "server: rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(limit-count, 0)
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeJSON(w, errorResponse{Message: "Too many requests"}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	// middlewareIP may have already replaced RemoteAddr with a bare IP.
	if ip := net.ParseIP(r.RemoteAddr); ip != nil {
		return ip.String()
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
