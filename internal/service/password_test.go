package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordSalted(t *testing.T) {
	t.Cleanup(restoreGlobals)
	fastBcrypt()

	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)

	require.NotEqual(t, "secret1", h1)
	require.NotEqual(t, h1, h2)

	for _, h := range []string{h1, h2} {
		ok, err := PasswordMatches(h, "secret1")
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := PasswordMatches(h1, "secret2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordMatchesCorruptHash(t *testing.T) {
	ok, err := PasswordMatches("not-a-bcrypt-hash", "secret1")
	require.Error(t, err)
	require.False(t, ok)
}

func TestHashPasswordError(t *testing.T) {
	t.Cleanup(restoreGlobals)
	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err := HashPassword("secret1")
	require.EqualError(t, err, "hash password: gen")
}
