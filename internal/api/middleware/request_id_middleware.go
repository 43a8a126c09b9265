package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/google/uuid"
)

// RequestIdMiddleware header沒有帶request id時產生新的uuid，並回寫到response header
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(constants.RequestIDHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set(constants.RequestIDHeader, requestId)

		ctx := context.WithValue(r.Context(), constants.RequestIDKey, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
