package router

import (
	"net/http"
	"time"

	_ "github.com/RoyceAzure/lab/shop/docs"
	"github.com/RoyceAzure/lab/shop/internal/api"
	m "github.com/RoyceAzure/lab/shop/internal/api/middleware"
	"github.com/RoyceAzure/lab/shop/internal/infra/limiter"
	"github.com/RoyceAzure/lab/shop/internal/pkg/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 30 * time.Second

type Options struct {
	TokenMaker  token.Maker
	Roles       m.RoleResolver
	Limiter     limiter.ILimiter
	CorsOrigins []string
	Logger      *zerolog.Logger
}

func SetupRouter(server *api.Server, opts Options) *chi.Mux {
	r := chi.NewRouter()

	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	origins := opts.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(m.LoggerMiddleware(opts.Logger))
	if opts.Limiter != nil {
		r.Use(m.RateLimitMiddleware(opts.Limiter, opts.Logger))
	}
	r.Use(m.AuthPayloadMiddleware(opts.TokenMaker))
	r.Use(middleware.Timeout(requestTimeout))

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	auth := m.AuthMiddleware(opts.Roles)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", server.AuthHandler.Signup)
			r.Post("/login", server.AuthHandler.Login)
			r.With(auth).Get("/me", server.AuthHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/search", server.ProductHandler.SearchProducts)
			r.Get("/{id}", server.ProductHandler.GetProduct)
			r.Group(func(r chi.Router) {
				r.Use(m.AdminMiddleware)
				r.Post("/", server.ProductHandler.CreateProduct)
				r.Put("/{id}", server.ProductHandler.UpdateProduct)
				r.Delete("/{id}", server.ProductHandler.DeleteProduct)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(auth)
			r.Post("/address", server.UserHandler.AddAddress)
			r.Get("/address", server.UserHandler.ListAddresses)
			r.Delete("/address/{id}", server.UserHandler.DeleteAddress)
			r.Put("/", server.UserHandler.UpdateUser)
			r.Group(func(r chi.Router) {
				r.Use(m.AdminMiddleware)
				r.Get("/", server.UserHandler.ListUsers)
				r.Get("/{id}", server.UserHandler.GetUser)
				r.Put("/{id}/role", server.UserHandler.ChangeRole)
			})
		})

		r.Route("/carts", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", server.CartHandler.AddItem)
			r.Get("/", server.CartHandler.ListItems)
			r.Put("/{id}", server.CartHandler.ChangeQuantity)
			r.Delete("/{id}", server.CartHandler.DeleteItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", server.OrderHandler.CreateOrder)
			r.Get("/", server.OrderHandler.ListOwnOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
			r.Put("/{id}/cancel", server.OrderHandler.CancelOrder)
			r.Group(func(r chi.Router) {
				r.Use(m.AdminMiddleware)
				r.Get("/index", server.OrderHandler.ListOrders)
				r.Get("/users/{id}", server.OrderHandler.ListUserOrders)
				r.Put("/{id}/status", server.OrderHandler.ChangeStatus)
			})
		})
	})

	// 在設置完所有路由後打印路由樹
	if err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		opts.Logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	}); err != nil {
		opts.Logger.Warn().Err(err).Msg("walk routes failed")
	}
	return r
}
