// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"time"

	"dinehub/internal/model"
	"dinehub/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTokenBytes = 32

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims

	ErrMissingSecret = errors.New("JWT secret not set")
)

// AuthConfig 登入相關設定
type AuthConfig struct {
	Secret     string
	SessionTTL time.Duration
	TokenTTL   time.Duration
}

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	Session       string           `json:"session"`
	SessionExpiry *jwt.NumericDate `json:"session_expiry"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	UserType      model.UserType   `json:"user_type"`
	jwt.RegisteredClaims
}

// UserID 由 subject 解析使用者 ID
func (c *CustomClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

func (c *CustomClaims) IsAdmin() bool {
	return c.UserType == model.UserTypeAdmin
}

// IssueSession 產生新的 session token 與到期時間
func IssueSession(ttl time.Duration) (string, time.Time, error) {
	token, err := utils.RandomToken(sessionTokenBytes)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, utils.ExpiryFrom(timeNow(), ttl), nil
}

// IssueAccessToken 依據使用者目前的 session 產生 JWT
func IssueAccessToken(user model.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := timeNow()
	claims := CustomClaims{
		Name:     user.Name,
		Email:    user.Email,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if user.Session != nil {
		claims.Session = *user.Session
	}
	if user.SessionExpiry != nil {
		claims.SessionExpiry = jwt.NewNumericDate(*user.SessionExpiry)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func VerifyAccessToken(tokenString, secret string) (*CustomClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
