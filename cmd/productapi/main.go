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

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-marketplace-api/internal/core/auth"
	"go-marketplace-api/internal/core/cache"
	"go-marketplace-api/internal/core/config"
	"go-marketplace-api/internal/core/database"
	"go-marketplace-api/internal/core/logger"
	"go-marketplace-api/internal/core/server"
	"go-marketplace-api/internal/domain"
	"go-marketplace-api/internal/repo"
	"go-marketplace-api/internal/service"
	"go-marketplace-api/internal/transport/http/handler"
	"go-marketplace-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.Product{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      time.Duration(cfg.JWT.TokenTTLHours) * time.Hour,
	}

	productRepo := repo.NewProductRepo(db)
	productSvc := service.NewProductService(productRepo, log)
	productH := handler.NewProductHandler(productSvc, log)

	// Optional redis read cache for the public detail route.
	if cfg.Redis.Addr != "" {
		ttl := time.Duration(cfg.Redis.ProductTTLSec) * time.Second
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		productH = productH.WithCache(cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), ttl)
		log.Info("product read cache enabled", zap.String("redis", cfg.Redis.Addr))
	}

	r := router.NewProductEngine(log, jwter, productH)

	addr := server.Addr(cfg.App.Product.Host, cfg.App.Product.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.Product.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.Product.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.Product.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.Product.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Product.Port)
	log.Info("product api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("product api start FAILED", zap.Error(err))
		}
	}()
	log.Info("product api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("product api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
