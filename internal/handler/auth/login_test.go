package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"dinehub/internal/cache"
	"dinehub/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// helper to build echo context
func newLoginCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

type fakeAuth struct {
	LoginFn func(ctx context.Context, email, password string) (*service.LoginResult, error)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if f.LoginFn != nil {
		return f.LoginFn(ctx, email, password)
	}
	panic("unexpected Login")
}

// limiterCache 以記憶體模擬失敗計數
type limiterCache struct {
	cache.FakeCache
	counts map[string]int64
}

func newLimiter(max int) (*cache.LoginLimiter, *limiterCache) {
	lc := &limiterCache{counts: map[string]int64{}}
	lc.GetFn = func(_ context.Context, key string) *redis.StringCmd {
		n, ok := lc.counts[key]
		if !ok {
			return redis.NewStringResult("", redis.Nil)
		}
		return redis.NewStringResult(strconv.FormatInt(n, 10), nil)
	}
	lc.IncrFn = func(_ context.Context, key string) *redis.IntCmd {
		lc.counts[key]++
		return redis.NewIntResult(lc.counts[key], nil)
	}
	lc.ExpireFn = func(context.Context, string, time.Duration) *redis.BoolCmd {
		return redis.NewBoolResult(true, nil)
	}
	lc.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
		for _, k := range keys {
			delete(lc.counts, k)
		}
		return redis.NewIntResult(int64(len(keys)), nil)
	}
	return cache.NewLoginLimiter(lc, max, time.Minute, zap.NewNop()), lc
}

func TestLoginHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		e.Validator = okValidator{}
		limiter, _ := newLimiter(3)
		ctx, rec := newLoginCtx(e, "%")
		require.NoError(t, LoginHandler(&fakeAuth{}, limiter)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid form data")
	})

	t.Run("validate error", func(t *testing.T) {
		e.Validator = errValidator{}
		limiter, _ := newLimiter(3)
		ctx, rec := newLoginCtx(e, "email=a@b.co")
		require.NoError(t, LoginHandler(&fakeAuth{}, limiter)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid password counts failure", func(t *testing.T) {
		e.Validator = okValidator{}
		limiter, lc := newLimiter(3)
		svc := &fakeAuth{LoginFn: func(_ context.Context, email, pw string) (*service.LoginResult, error) {
			require.Equal(t, "a@b.co", email)
			return nil, &service.Error{Kind: service.KindInvalidCredentials, Message: "Invalid password"}
		}}
		ctx, rec := newLoginCtx(e, "email=a@b.co&password=nope")
		require.NoError(t, LoginHandler(svc, limiter)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid password")
		require.EqualValues(t, 1, lc.counts["login:fail:a@b.co"])
	})

	t.Run("locked out", func(t *testing.T) {
		e.Validator = okValidator{}
		limiter, lc := newLimiter(3)
		lc.counts["login:fail:a@b.co"] = 3
		ctx, rec := newLoginCtx(e, "email=a@b.co&password=secret1")
		require.NoError(t, LoginHandler(&fakeAuth{}, limiter)(ctx))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("persistence error does not count", func(t *testing.T) {
		e.Validator = okValidator{}
		limiter, lc := newLimiter(3)
		svc := &fakeAuth{LoginFn: func(context.Context, string, string) (*service.LoginResult, error) {
			return nil, &service.Error{Kind: service.KindPersistence, Message: "Failed to log in", Err: errors.New("db")}
		}}
		ctx, rec := newLoginCtx(e, "email=a@b.co&password=secret1")
		require.NoError(t, LoginHandler(svc, limiter)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "db")
		require.Empty(t, lc.counts)
	})

	t.Run("success resets counter", func(t *testing.T) {
		e.Validator = okValidator{}
		limiter, lc := newLimiter(3)
		lc.counts["login:fail:a@b.co"] = 2
		expiry := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		svc := &fakeAuth{LoginFn: func(context.Context, string, string) (*service.LoginResult, error) {
			return &service.LoginResult{
				Token:     "jwt-token",
				ExpiresAt: expiry,
				Profile:   service.Profile{ID: uuid.New(), Name: "A", Email: "a@b.co"},
			}, nil
		}}
		ctx, rec := newLoginCtx(e, "email=a@b.co&password=secret1")
		require.NoError(t, LoginHandler(svc, limiter)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"token":"jwt-token"`)
		require.Contains(t, rec.Body.String(), `"expiresAt":"2025-03-01T10:00:00Z"`)
		require.Contains(t, rec.Body.String(), "Login successful")
		require.Empty(t, lc.counts)
	})
}
