package middleware

import (
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/infra/limiter"
	"github.com/RoyceAzure/lab/shop/internal/pkg/api"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/rs/zerolog"
)

// RateLimitMiddleware 以client ip為key，需放在RealIP之後
// limiter本身出錯時放行，只記錄warn
func RateLimitMiddleware(l limiter.ILimiter, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			allowed, err := l.Allow(r.Context(), key)
			if err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, request allowed")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				api.ErrorJSON(w, er.New(er.TooManyRequestsCode, ""))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
