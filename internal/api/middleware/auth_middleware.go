package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/api"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/RoyceAzure/lab/shop/internal/pkg/util"
)

// RoleResolver 由store讀取目前角色，角色變更不需要重新登入
type RoleResolver interface {
	GetRole(ctx context.Context, userID uint) (model.Role, error)
}

/*
AuthMiddleware 驗證ctx是否有token payload
payload有效但用戶已不存在時一樣回401，其他讀取錯誤回500
通過後把角色放進ctx給AdminMiddleware與handler使用
*/
func AuthMiddleware(roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload := util.GetTokenPayloadFromContext(r.Context())
			if payload == nil {
				api.ErrorJSON(w, er.New(er.UnauthenticatedCode, ""))
				return
			}

			role, err := roles.GetRole(r.Context(), payload.UserID)
			if err != nil {
				if er.Is(err, er.UserNotFoundCode) {
					api.ErrorJSON(w, er.New(er.UnauthenticatedCode, ""))
					return
				}
				api.ErrorJSON(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(util.WithRole(r.Context(), role)))
		})
	}
}

// AdminMiddleware 必須放在AuthMiddleware之後
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetRoleFromContext(r.Context()) != model.RoleAdmin {
			api.ErrorJSON(w, er.New(er.UnauthorizedCode, ""))
			return
		}
		next.ServeHTTP(w, r)
	})
}
