package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/RoyceAzure/lab/shop/internal/pkg/token"
	"github.com/RoyceAzure/lab/shop/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type staticRoles map[uint]model.Role

func (s staticRoles) GetRole(_ context.Context, userID uint) (model.Role, error) {
	if userID == 500 {
		return "", errors.New("db down")
	}
	role, ok := s[userID]
	if !ok {
		return "", er.New(er.UserNotFoundCode, "")
	}
	return role, nil
}

func TestRequestIdMiddleware(t *testing.T) {
	var got string
	h := RequestIdMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = util.GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEqual(t, "unknown", got)
	require.Equal(t, got, rec.Header().Get(constants.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "abc", got)
}

func TestAuthPayloadMiddleware(t *testing.T) {
	maker, err := token.NewJWTMaker(testKey)
	require.NoError(t, err)
	accessToken, _, err := maker.CreateToken(7, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		userID uint
	}{
		{name: "valid", header: "Bearer " + accessToken, userID: 7},
		{name: "lower case type", header: "bearer " + accessToken, userID: 7},
		{name: "missing"},
		{name: "wrong type", header: "Basic " + accessToken},
		{name: "no token", header: "Bearer"},
		{name: "bad token", header: "Bearer xyz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload *token.Payload
			h := AuthPayloadMiddleware(maker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				payload = util.GetTokenPayloadFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if tc.userID == 0 {
				require.Nil(t, payload)
				return
			}
			require.NotNil(t, payload)
			require.Equal(t, tc.userID, payload.UserID)
		})
	}
}

func TestAuthAndAdminMiddleware(t *testing.T) {
	roles := staticRoles{1: model.RoleAdmin, 2: model.RoleUser}
	cases := []struct {
		name      string
		userID    uint
		authOnly  int
		adminOnly int
	}{
		{name: "anonymous", userID: 0, authOnly: http.StatusUnauthorized, adminOnly: http.StatusUnauthorized},
		{name: "admin", userID: 1, authOnly: http.StatusOK, adminOnly: http.StatusOK},
		{name: "user", userID: 2, authOnly: http.StatusOK, adminOnly: http.StatusForbidden},
		{name: "deleted user", userID: 3, authOnly: http.StatusUnauthorized, adminOnly: http.StatusUnauthorized},
		{name: "store failure", userID: 500, authOnly: http.StatusInternalServerError, adminOnly: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			newReq := func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				if tc.userID != 0 {
					req = req.WithContext(util.WithTokenPayload(req.Context(), &token.Payload{UserID: tc.userID}))
				}
				return req
			}

			rec := httptest.NewRecorder()
			AuthMiddleware(roles)(okHandler).ServeHTTP(rec, newReq())
			require.Equal(t, tc.authOnly, rec.Code)

			rec = httptest.NewRecorder()
			AuthMiddleware(roles)(AdminMiddleware(okHandler)).ServeHTTP(rec, newReq())
			require.Equal(t, tc.adminOnly, rec.Code)
		})
	}
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

func (l *stubLimiter) Stop() {}

func TestRateLimitMiddleware(t *testing.T) {
	logger := zerolog.Nop()
	cases := []struct {
		name    string
		limiter *stubLimiter
		status  int
	}{
		{name: "allowed", limiter: &stubLimiter{allowed: true}, status: http.StatusOK},
		{name: "limited", limiter: &stubLimiter{allowed: false}, status: http.StatusTooManyRequests},
		{name: "limiter down fails open", limiter: &stubLimiter{err: errors.New("redis down")}, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:5555"
			rec := httptest.NewRecorder()
			RateLimitMiddleware(tc.limiter, &logger)(okHandler).ServeHTTP(rec, req)
			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, []string{"10.0.0.1"}, tc.limiter.keys)
		})
	}
}

func TestLoggerMiddleware_RecoversPanic(t *testing.T) {
	logger := zerolog.Nop()
	h := LoggerMiddleware(&logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "boom")
}

func TestStatusRecoder(t *testing.T) {
	rec := &StatusRecoder{ResponseWriter: httptest.NewRecorder()}
	require.Equal(t, http.StatusOK, rec.Status())
	rec.WriteHeader(http.StatusTeapot)
	require.Equal(t, http.StatusTeapot, rec.Status())
}
