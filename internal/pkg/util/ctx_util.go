package util

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/token"
)

func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	if v, ok := ctx.Value(constants.AuthorizationPayloadKey).(*token.Payload); ok {
		return v
	}
	return nil
}

func WithTokenPayload(ctx context.Context, payload *token.Payload) context.Context {
	return context.WithValue(ctx, constants.AuthorizationPayloadKey, payload)
}

func GetRequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}

func WithRole(ctx context.Context, role model.Role) context.Context {
	return context.WithValue(ctx, constants.AuthorizationRoleKey, role)
}

// GetRoleFromContext 未經過AuthMiddleware時回傳空字串
func GetRoleFromContext(ctx context.Context) model.Role {
	if v, ok := ctx.Value(constants.AuthorizationRoleKey).(model.Role); ok {
		return v
	}
	return ""
}
