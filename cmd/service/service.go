package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"dinehub/internal/cache"
	"dinehub/internal/config"
	"dinehub/internal/database"
	"dinehub/internal/logger"
	"dinehub/internal/router"
	"dinehub/internal/service"
	"dinehub/internal/store"
	"dinehub/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "dinehub/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepTimeout    = 30 * time.Second
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newWorkerPool   = worker.NewPool
	startServer     = serve
	exitFunc        = os.Exit
)

// serve 啟動 HTTP 服務，ctx 結束時優雅關閉
func serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

func newEcho(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Error("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	gw := store.NewPostgres(db)
	identity := service.NewIdentityService(gw, service.AuthConfig{
		Secret:     cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		TokenTTL:   cfg.TokenTTL,
	}, log)
	restaurants := service.NewRestaurantService(gw, cfg.InactiveWindow, log)
	limiter := cache.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginLockWindow, log)

	// 背景清除過期 session
	wp := newWorkerPool(cfg.WorkerCount)
	janitorCtx, cancelJanitor := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Every(janitorCtx, wp, cfg.SessionSweepInterval, func() {
			sweepCtx, cancel := context.WithTimeout(janitorCtx, sweepTimeout)
			defer cancel()
			_, _ = identity.PurgeExpiredSessions(sweepCtx)
		})
	}()
	defer func() {
		cancelJanitor()
		wg.Wait()
		wp.Stop()
	}()

	e := newEcho(log)
	router.Setup(e, router.Deps{
		DB:          db,
		Cache:       rdb,
		Identity:    identity,
		Restaurants: restaurants,
		Limiter:     limiter,
		JWTSecret:   cfg.JWTSecret,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	return startServer(ctx, e, cfg.HTTPAddr)
}

// rollback 退回所有 migration，僅供維運手動執行
func rollback() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("RollbackAll 失敗: %v", err)
	}
	return nil
}
