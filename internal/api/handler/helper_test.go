package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/token"
	"github.com/RoyceAzure/lab/shop/internal/pkg/util"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	method string
	target string
	body   any
	userID uint
	role   model.Role
	params map[string]string
}

func (tr testRequest) build(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := tr.body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	r := httptest.NewRequest(tr.method, tr.target, &buf)
	ctx := r.Context()
	if tr.userID != 0 {
		ctx = util.WithTokenPayload(ctx, &token.Payload{UserID: tr.userID})
		role := tr.role
		if role == "" {
			role = model.RoleUser
		}
		ctx = util.WithRole(ctx, role)
	}
	if len(tr.params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range tr.params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

type responseBody struct {
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	ErrorCode int             `json:"error_code"`
	Errors    json.RawMessage `json:"errors"`
}

func serve(t *testing.T, h http.HandlerFunc, tr testRequest) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, tr.build(t))

	var body responseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestParsePaging(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		skip    int
		take    int
		wantErr bool
	}{
		{name: "defaults", target: "/", skip: 0, take: 5},
		{name: "explicit", target: "/?skip=10&take=20", skip: 10, take: 20},
		{name: "bad skip", target: "/?skip=x", wantErr: true},
		{name: "bad take", target: "/?take=1.5", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			skip, take, err := parsePaging(httptest.NewRequest(http.MethodGet, tc.target, nil))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.skip, skip)
			require.Equal(t, tc.take, take)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	for _, v := range []string{"", "0", "-1", "abc"} {
		r := testRequest{method: http.MethodGet, target: "/", params: map[string]string{"id": v}}.build(t)
		_, err := parseIDParam(r, "id")
		require.Error(t, err, v)
	}
	r := testRequest{method: http.MethodGet, target: "/", params: map[string]string{"id": "42"}}.build(t)
	id, err := parseIDParam(r, "id")
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
}
