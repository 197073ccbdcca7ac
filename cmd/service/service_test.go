package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"dinehub/internal/cache"
	"dinehub/internal/config"
	"dinehub/internal/database"
	"dinehub/internal/logger"
	"dinehub/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func restoreGlobals() {
	loadConfig = config.Load
	newLogger = logger.New
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn = database.RollbackAll
	newWorkerPool = worker.NewPool
	startServer = serve
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:             ":0",
		DatabaseURL:          "db",
		RedisAddr:            "127",
		RedisDB:              1,
		RedisPassword:        "pw",
		JWTSecret:            "secret",
		SessionTTL:           time.Hour,
		TokenTTL:             time.Hour,
		InactiveWindow:       time.Hour,
		WorkerCount:          1,
		SessionSweepInterval: time.Millisecond,
		LoginMaxAttempts:     5,
		LoginLockWindow:      time.Minute,
		LogLevel:             "info",
		LogEncoding:          "json",
	}
}

func stubDeps(t *testing.T) {
	t.Helper()
	t.Cleanup(restoreGlobals)
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }
	newLogger = func(string, string) (*zap.Logger, error) { return zap.NewNop(), nil }
	newPgxPool = func(context.Context, string) (database.DB, error) {
		return &database.FakeDB{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}}, nil
	}
	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	startServer = func(context.Context, *echo.Echo, string) error { return nil }
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRunSuccess(t *testing.T) {
	stubDeps(t)
	called := make(map[string]bool)
	swept := make(chan struct{}, 1)

	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				select {
				case swept <- struct{}{}:
				default:
				}
				return pgconn.NewCommandTag("UPDATE 2"), nil
			},
			CloseFn: func() { called["dbClose"] = true },
		}, nil
	}
	newRedisClient = func(_ context.Context, addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	startServer = func(_ context.Context, e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":0", addr)

		routes := map[string]bool{}
		for _, r := range e.Routes() {
			routes[r.Method+" "+r.Path] = true
		}
		require.True(t, routes["GET /swagger/*"])
		require.True(t, routes["GET /api/restaurants"])

		select {
		case <-swept:
		case <-time.After(2 * time.Second):
			t.Error("session janitor never ran")
		}
		return nil
	}

	require.NoError(t, run())
	require.True(t, called["pgx"])
	require.True(t, called["redis"])
	require.True(t, called["migrate"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.True(t, called["redisClose"])
}

func TestRunErrors(t *testing.T) {
	stubDeps(t)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.EqualError(t, run(), "config")
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }

	newLogger = func(string, string) (*zap.Logger, error) { return nil, errors.New("logger") }
	require.EqualError(t, run(), "logger")
	newLogger = func(string, string) (*zap.Logger, error) { return zap.NewNop(), nil }

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.EqualError(t, run(), "DB 連線失敗: db")
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }

	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.EqualError(t, run(), "Redis 連線失敗: redis")
	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }

	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.EqualError(t, run(), "Migration 執行失敗: migrate")
	runMigrationsFn = func(string) error { return nil }

	cfg := testConfig()
	cfg.SessionSweepInterval = time.Hour
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	startServer = func(context.Context, *echo.Echo, string) error { return errors.New("start") }
	require.EqualError(t, run(), "start")
}

func TestRollback(t *testing.T) {
	stubDeps(t)
	var got string
	rollbackAllFn = func(url string) error { got = url; return nil }
	require.NoError(t, rollback())
	require.Equal(t, "db", got)

	rollbackAllFn = func(string) error { return errors.New("down") }
	require.EqualError(t, rollback(), "RollbackAll 失敗: down")

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.EqualError(t, rollback(), "config")
}

func TestServeShutdown(t *testing.T) {
	e := newEcho(zap.NewNop())
	e.HidePort = true
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, e, "127.0.0.1:0") }()

	require.Eventually(t, func() bool { return e.Listener != nil }, 2*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not shut down")
	}
}

func TestEchoRecoversAndLogs(t *testing.T) {
	e := newEcho(zap.NewNop())
	e.GET("/boom", func(echo.Context) error { panic("boom") })
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMainFunction(t *testing.T) {
	stubDeps(t)
	exitCode := -1
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Equal(t, -1, exitCode)
}

func TestMainExit(t *testing.T) {
	stubDeps(t)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}

func TestMainRollbackCommand(t *testing.T) {
	stubDeps(t)
	args := os.Args
	t.Cleanup(func() { os.Args = args })
	os.Args = []string{"service", "rollback"}

	rolled := false
	rollbackAllFn = func(string) error { rolled = true; return nil }
	main()
	require.True(t, rolled)
}
