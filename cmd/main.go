package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/handler"
	"github.com/RoyceAzure/lab/shop/internal/api/router"
	"github.com/RoyceAzure/lab/shop/internal/appcontext"
	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/rs/zerolog/log"
)

// @title shop
// @version 1.0
// @description 電商後端 API: 用戶、商品、購物車、訂單

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token. Example: "Bearer {token}"

func main() {
	cf := config.GetConfig()

	app, err := appcontext.NewApplicationContext(context.Background(), cf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application context")
	}

	// 初始化 handler
	server := api.NewServer(
		handler.NewAuthHandler(app.AuthService),
		handler.NewProductHandler(app.ProductService),
		handler.NewUserHandler(app.UserService),
		handler.NewCartHandler(app.CartService),
		handler.NewOrderHandler(app.OrderService),
	)

	// 設置路由
	r := router.SetupRouter(server, router.Options{
		TokenMaker:  app.TokenMaker,
		Roles:       app.UserService,
		Limiter:     app.Limiter,
		CorsOrigins: cf.CorsOriginList(),
		Logger:      app.Logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{})
	go func() {
		defer close(shutdownCompleted)
		<-sigChan
		app.Logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownSecs*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("server shutdown error")
		}
		if err := app.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("application shutdown error")
		}
	}()

	// 啟動服務
	app.Logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		app.Logger.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
	<-shutdownCompleted
	app.Logger.Info().Msg("closed completed")
}
