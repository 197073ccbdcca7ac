package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

var randRead = rand.Read

// RandomToken 產生 nBytes 位元組的隨機值並以 base64url (無 padding) 編碼
func RandomToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		return "", fmt.Errorf("RandomToken: invalid size %d", nBytes)
	}
	b := make([]byte, nBytes)
	if _, err := randRead(b); err != nil {
		return "", fmt.Errorf("RandomToken: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
