package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/marketloop/backend/internal/application/catalog"
	engagementapp "github.com/marketloop/backend/internal/application/engagement"
	rankingapp "github.com/marketloop/backend/internal/application/ranking"
	tradeapp "github.com/marketloop/backend/internal/application/trade"
	"github.com/marketloop/backend/internal/infrastructure/auth"
	"github.com/marketloop/backend/internal/infrastructure/config"
	"github.com/marketloop/backend/internal/infrastructure/logger"
	"github.com/marketloop/backend/internal/infrastructure/persistence"
	"github.com/marketloop/backend/internal/interfaces/http/handler"
	"github.com/marketloop/backend/internal/interfaces/http/middleware"
	"github.com/marketloop/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting marketloop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	engagementRepo := persistence.NewGormEngagementRepository(db.DB)
	scoreEntryRepo := persistence.NewGormScoreEntryRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services. The ranking service doubles as the score adjuster
	// used by engagement and trade side effects.
	rankingService := rankingapp.NewRankingService(scoreEntryRepo, log)
	productService := catalogapp.NewProductService(productRepo)
	engagementService := engagementapp.NewEngagementService(engagementRepo, rankingService, log)
	orderService := tradeapp.NewOrderService(txScope, orderRepo, rankingService, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	authRequired := middleware.JWTAuthMiddleware(jwtService)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db, version, log))
	r.Register(handler.NewProductHandler(productService, authRequired, log))
	r.Register(handler.NewOrderHandler(orderService, authRequired, log))
	r.Register(handler.NewEngagementHandler(engagementService, authRequired, log))
	r.Register(handler.NewRankingHandler(rankingService, authRequired, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
