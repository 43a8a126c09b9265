package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/RoyceAzure/lab/shop/internal/pkg/util"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/go-chi/chi/v5"
)

// currentUserID 路由已經過AuthMiddleware，沒有payload視為未登入
func currentUserID(r *http.Request) (uint, error) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return 0, er.New(er.UnauthenticatedCode, "")
	}
	return payload.UserID, nil
}

func isAdmin(r *http.Request) bool {
	return util.GetRoleFromContext(r.Context()) == model.RoleAdmin
}

func parseIDParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, er.New(er.BadRequestCode, "invalid "+name)
	}
	return uint(id), nil
}

// parsePaging 未帶skip/take時使用預設值，範圍修正交給service
func parsePaging(r *http.Request) (skip, take int, err error) {
	skip, take = constants.DefaultPagingSkip, constants.DefaultPagingTake
	q := r.URL.Query()
	if v := q.Get("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil {
			return 0, 0, er.New(er.BadRequestCode, "invalid skip")
		}
	}
	if v := q.Get("take"); v != "" {
		if take, err = strconv.Atoi(v); err != nil {
			return 0, 0, er.New(er.BadRequestCode, "invalid take")
		}
	}
	return skip, take, nil
}

func toPageResponse[T, R any](page *service.PageResult[T], convert func([]T) []R) dto.PageResponse[R] {
	return dto.PageResponse[R]{Count: page.Count, Items: convert(page.Items)}
}

func identity[T any](items []T) []T { return items }
