package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 內建每筆隨機 salt，同一密碼兩次雜湊結果不同
var (
	passwordCost                 = bcrypt.DefaultCost
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 回傳加鹽後的密碼雜湊
func HashPassword(plain string) (string, error) {
	b, err := bcryptGenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// PasswordMatches 密碼不符回傳 false, nil；雜湊本身損毀才回傳 error
func PasswordMatches(hash, plain string) (bool, error) {
	err := bcryptCompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
