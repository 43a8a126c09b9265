package handler

import (
	"net/http"
	"testing"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/RoyceAzure/lab/shop/internal/service"
	mock_service "github.com/RoyceAzure/lab/shop/internal/service/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_UpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mock_service.NewMockIUserService(ctrl)

	addressID := uint(4)
	m.EXPECT().UpdateUser(gomock.Any(), uint(3), service.UpdateUserParams{DefaultShippingAddressID: &addressID}).
		Return(nil, er.New(er.BadRequestCode, "address does not belong to user"))

	rec, body := serve(t, NewUserHandler(m).UpdateUser, testRequest{
		method: http.MethodPut, target: "/users", userID: 3,
		body: map[string]any{"default_shipping_address_id": 4},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "address does not belong to user", body.Message)
}

func TestUserHandler_AddAddressValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mock_service.NewMockIUserService(ctrl)

	rec, body := serve(t, NewUserHandler(m).AddAddress, testRequest{
		method: http.MethodPost, target: "/users/address", userID: 3,
		body: map[string]any{"line_one": "12 Tea Road", "city": "Kolkata", "country": "India", "pincode": "7001"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, string(body.Errors), `"pincode"`)
}

func TestUserHandler_AddAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mock_service.NewMockIUserService(ctrl)
	m.EXPECT().AddAddress(gomock.Any(), uint(3), gomock.Any()).
		DoAndReturn(func(_ any, _ uint, arg service.AddressParams) (*model.Address, error) {
			require.Equal(t, "700001", arg.Pincode)
			require.Nil(t, arg.LineTwo)
			return &model.Address{ID: 1, UserID: 3, LineOne: arg.LineOne, City: arg.City, Country: arg.Country, Pincode: arg.Pincode}, nil
		})

	rec, _ := serve(t, NewUserHandler(m).AddAddress, testRequest{
		method: http.MethodPost, target: "/users/address", userID: 3,
		body: map[string]any{"line_one": "12 Tea Road", "city": "Kolkata", "country": "India", "pincode": "700001"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestUserHandler_ChangeRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mock_service.NewMockIUserService(ctrl)
	m.EXPECT().ChangeRole(gomock.Any(), uint(5), model.RoleAdmin).Return(&model.User{ID: 5, Role: model.RoleAdmin}, nil)

	h := NewUserHandler(m)
	rec, _ := serve(t, h.ChangeRole, testRequest{
		method: http.MethodPut, target: "/users/5/role", userID: 1, role: model.RoleAdmin,
		params: map[string]string{"id": "5"}, body: map[string]string{"role": "ADMIN"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, h.ChangeRole, testRequest{
		method: http.MethodPut, target: "/users/5/role", userID: 1, role: model.RoleAdmin,
		params: map[string]string{"id": "5"}, body: map[string]string{"role": "ROOT"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
