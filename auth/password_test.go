package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed775c6/Stock/auth"
)

func TestHashPassword_PHCFormat(t *testing.T) {
	hash, err := auth.HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"), "PHC prefix: %s", hash)
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := auth.HashPassword("secret-password")
	require.NoError(t, err)
	b, err := auth.HashPassword("secret-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "each hash carries a fresh salt")
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := auth.HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword_Roundtrip(t *testing.T) {
	hash, err := auth.HashPassword("secret-password")
	require.NoError(t, err)

	ok, err := auth.VerifyPassword("secret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
	} {
		_, err := auth.VerifyPassword("whatever", encoded)
		assert.ErrorIs(t, err, auth.ErrInvalidHash, "encoded=%q", encoded)
	}
}

func TestGeneratePassword(t *testing.T) {
	pw, err := auth.GeneratePassword(16)
	require.NoError(t, err)
	assert.Len(t, pw, 16)

	for _, r := range pw {
		assert.True(t, (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			"unexpected character %q", r)
	}

	other, err := auth.GeneratePassword(16)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)

	_, err = auth.GeneratePassword(0)
	assert.Error(t, err)
}
