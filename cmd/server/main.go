package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/handler"
	"storefront/internal/mail"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
)

// @title Storefront API
// @version 1.0
// @description Storefront API with cookie-based session auth, password reset, and item listings.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	mailer, err := mail.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	// Initialize auth components
	issuer := auth.NewTokenIssuer(cfg.AppSecret)
	hasher := auth.NewPasswordHasher()

	// Initialize services
	sessionService := service.NewSessionService(userRepo, hasher, issuer)
	resetService := service.NewResetService(userRepo, hasher, issuer, mailer, cfg.MailFrom, cfg.FrontendURL)
	itemService := service.NewItemService(itemRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessionService, resetService)
	itemHandler := handler.NewItemHandler(itemService)

	// Register routes
	router.Register(e, sessionService, authHandler, itemHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
