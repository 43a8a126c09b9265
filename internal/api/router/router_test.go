package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/handler"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/limiter"
	"github.com/RoyceAzure/lab/shop/internal/pkg/token"
	"github.com/RoyceAzure/lab/shop/internal/service"
	mock_service "github.com/RoyceAzure/lab/shop/internal/service/mock"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	users   *mock_service.MockIUserService
	orders  *mock_service.MockIOrderService
	maker   token.Maker
	limiter *limiter.TokenBucket
	router  *chi.Mux
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mock_service.NewMockIUserService(s.ctrl)
	s.orders = mock_service.NewMockIOrderService(s.ctrl)

	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef")
	s.Require().NoError(err)
	s.maker = maker

	server := api.NewServer(
		handler.NewAuthHandler(mock_service.NewMockIAuthService(s.ctrl)),
		handler.NewProductHandler(mock_service.NewMockIProductService(s.ctrl)),
		handler.NewUserHandler(s.users),
		handler.NewCartHandler(mock_service.NewMockICartService(s.ctrl)),
		handler.NewOrderHandler(s.orders),
	)
	s.limiter = limiter.NewTokenBucket(&limiter.LimiterConfig{Capacity: 2, Rate: 0.001, IdleTTL: time.Minute})
	s.router = SetupRouter(server, Options{
		TokenMaker: maker,
		Roles:      s.users,
		Limiter:    s.limiter,
	})
}

func (s *RouterTestSuite) TearDownTest() {
	s.limiter.Stop()
	s.ctrl.Finish()
}

func (s *RouterTestSuite) do(method, target string, userID uint, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	if userID != 0 {
		accessToken, _, err := s.maker.CreateToken(userID, time.Minute)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestCreateOrderRequiresToken() {
	rec := s.do(http.MethodPost, "/api/v1/orders", 0, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Request-Id"))
}

func (s *RouterTestSuite) TestCreateOrderEmptyCart() {
	s.users.EXPECT().GetRole(gomock.Any(), uint(7)).Return(model.RoleUser, nil)
	s.orders.EXPECT().CreateOrder(gomock.Any(), uint(7)).Return(&service.CreateOrderResult{CartEmpty: true}, nil)

	rec := s.do(http.MethodPost, "/api/v1/orders", 7, "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"message":"cart is empty"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestAdminRoute() {
	s.users.EXPECT().GetRole(gomock.Any(), uint(7)).Return(model.RoleUser, nil)
	rec := s.do(http.MethodGet, "/api/v1/orders/index", 7, "10.0.0.2:1000")
	s.Equal(http.StatusForbidden, rec.Code)

	s.users.EXPECT().GetRole(gomock.Any(), uint(1)).Return(model.RoleAdmin, nil)
	s.orders.EXPECT().ListOrders(gomock.Any(), model.OrderStatus(""), 0, 5).
		Return(&service.PageResult[model.Order]{Items: []model.Order{}}, nil)
	rec = s.do(http.MethodGet, "/api/v1/orders/index", 1, "10.0.0.3:1000")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestRateLimit() {
	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodPost, "/api/v1/orders", 0, "10.0.0.9:1000")
		s.Equal(http.StatusUnauthorized, rec.Code)
	}
	rec := s.do(http.MethodPost, "/api/v1/orders", 0, "10.0.0.9:1000")
	s.Equal(http.StatusTooManyRequests, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/orders", 0, "10.0.0.10:1000")
	s.Equal(http.StatusUnauthorized, rec.Code)
}
