package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"riverdeals.backend/internal/config"
	"riverdeals.backend/internal/infrastructure/jobs"
	"riverdeals.backend/internal/infrastructure/models"
	"riverdeals.backend/internal/infrastructure/ratelimit"
	"riverdeals.backend/internal/infrastructure/repositories"
	"riverdeals.backend/internal/interfaces/http/handlers"
	"riverdeals.backend/internal/interfaces/http/middleware"
	"riverdeals.backend/internal/usecases"
	"riverdeals.backend/pkg/jwt"
	"riverdeals.backend/pkg/logger"
	"riverdeals.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs the cross-process click throttle. When it is down we
	// fall back to the in-memory throttle rather than refusing to start.
	var throttle ratelimit.Throttle
	var memThrottle *ratelimit.MemoryThrottle
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, using in-memory click throttle", zap.Error(err))
		memThrottle = ratelimit.NewMemoryThrottle(cfg.Affiliate.ClickThrottleWindow)
		throttle = memThrottle
	} else {
		logger.Info(context.Background(), "Redis initialized")
		throttle = ratelimit.NewRedisThrottle(cfg.Affiliate.ClickThrottleWindow)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "connected to PostgreSQL")
		if err := db.AutoMigrate(
			&models.Category{},
			&models.Store{},
			&models.Deal{},
			&models.User{},
			&models.AffiliateClick{},
		); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	dealRepo := repositories.NewDealRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	storeRepo := repositories.NewStoreRepository(db)
	userRepo := repositories.NewUserRepository(db)
	clickRepo := repositories.NewAffiliateClickRepository(db)

	// Usecases
	dealUsecase := usecases.NewDealUsecase(dealRepo)
	catalogUsecase := usecases.NewCatalogUsecase(categoryRepo, storeRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	affiliateUsecase := usecases.NewAffiliateUsecase(
		clickRepo, dealRepo, storeRepo, throttle, cfg.Affiliate.DefaultCommissionRate)

	// Handlers
	dealHandler := handlers.NewDealHandler(dealUsecase)
	catalogHandler := handlers.NewCatalogHandler(catalogUsecase)
	authHandler := handlers.NewAuthHandler(authUsecase)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateUsecase)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewDealExpiryJob(dealRepo, cfg.Jobs.DealExpiryInterval)
	go expiryJob.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		dealHandler:      dealHandler,
		catalogHandler:   catalogHandler,
		authHandler:      authHandler,
		affiliateHandler: affiliateHandler,
		authMiddleware:   middleware.AuthMiddleware(jwtService),
		optionalAuth:     middleware.OptionalAuthMiddleware(jwtService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "shutting down server")
		expiryJob.Stop()
		if memThrottle != nil {
			memThrottle.Stop()
		}
		cancel()
	}()

	logger.Info(context.Background(), "server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api"),
		zap.String("health", "/health"))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
