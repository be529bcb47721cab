package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"

	"shopadmin/docs"
	"shopadmin/internal/auth"
	"shopadmin/internal/cache"
	"shopadmin/internal/config"
	"shopadmin/internal/db"
	"shopadmin/internal/handler"
	"shopadmin/internal/logging"
	"shopadmin/internal/model"
	"shopadmin/internal/mq"
	"shopadmin/internal/repository"
	"shopadmin/internal/router"
	"shopadmin/internal/service"
)

// @title Shop Admin API
// @version 1.0
// @description Administrative backend for product categories, discounts, inventory and user accounts.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logging.SetLevel(cfg.LogLevel)
	logger := logging.New("server")
	logger.Infoj(glog.JSON{"msg": "starting", "config": cfg.String()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		logger.Warnj(glog.JSON{"msg": "RESET_DB=true, dropping all tables"})
		if err := db.Reset(gormDB); err != nil {
			log.Fatalf("reset database: %v", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := db.SeedRoles(ctx, gormDB); err != nil {
		log.Fatalf("seed roles: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warnj(glog.JSON{"msg": "redis unavailable, running without cache; bearer tokens are rejected until it returns", "addr": cfg.RedisAddr, "error": err.Error()})
	}

	backend, err := mq.NewBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("events backend: %v", err)
	}
	broker := mq.New(backend)
	defer broker.Close()
	events := mq.NewPublisher(broker)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	transactor := repository.NewTransactor(gormDB)

	// Auth components
	tokens := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(service.AuthDeps{
		Users:       userRepo,
		Tx:          transactor,
		Hasher:      auth.NewBcryptHasher(cfg.BcryptCost),
		Tokens:      tokens,
		Revoked:     tokenStore,
		Events:      events,
		PhoneRegion: cfg.PhoneRegion,
	})
	userService := service.NewUserService(userRepo, transactor, db.NewExecutionStrategy(cfg.TxMaxRetries), events)
	categoryService := service.NewCatalogService[model.ProductCategory, *model.ProductCategory](
		"product-category", repository.NewCatalogRepository[model.ProductCategory](gormDB), cacheClient)
	discountService := service.NewCatalogService[model.ProductDiscount, *model.ProductDiscount](
		"product-discount", repository.NewCatalogRepository[model.ProductDiscount](gormDB), cacheClient)
	inventoryService := service.NewCatalogService[model.ProductInventory, *model.ProductInventory](
		"product-inventory", repository.NewCatalogRepository[model.ProductInventory](gormDB), cacheClient)

	e := echo.New()
	e.HideBanner = true
	e.Logger = logging.New("http")

	router.Register(e, cfg, tokens, tokenStore, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserHandler(userService),
		Categories:  handler.NewCategoryHandler(categoryService),
		Discounts:   handler.NewDiscountHandler(discountService),
		Inventories: handler.NewInventoryHandler(inventoryService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	logger.Infoj(glog.JSON{"msg": "swagger documentation", "url": "http://" + docs.SwaggerInfo.Host + "/swagger/index.html"})

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorj(glog.JSON{"msg": "shutdown", "error": err.Error()})
	}
}
