package main

import (
	"log"
	"net/http"

	"aerosafe/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"aerosafe/internal/auth"
	"aerosafe/internal/cache"
	"aerosafe/internal/config"
	"aerosafe/internal/db"
	"aerosafe/internal/handler"
	"aerosafe/internal/model"
	"aerosafe/internal/repository"
	"aerosafe/internal/router"
	"aerosafe/internal/service"
)

// @title AeroSafe Auth API
// @version 1.0
// @description Role-based signup/login service for admins and pilots with JWT authentication.
// @host localhost:5121
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Account{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	accountRepo := repository.NewAccountRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	limiter := auth.NewAttemptLimiter(cacheClient)

	authService := service.NewAuthService(accountRepo, jwtService, limiter)
	authHandler := handler.NewAuthHandler(authService)

	router.Register(e, jwtService, authHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
