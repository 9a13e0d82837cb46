package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// ValidatePassword
// ============================================

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"exactly the minimum", "12345678", nil},
		{"one below the minimum", "1234567", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"multibyte counted as characters", "пароль1", ErrPasswordTooShort},
		{"eight multibyte characters", "пароль12", nil},
		{"at the bcrypt limit", strings.Repeat("a", MaxPasswordBytes), nil},
		{"over the bcrypt limit", strings.Repeat("a", MaxPasswordBytes+1), ErrPasswordTooLong},
		{"multibyte over the bcrypt limit", strings.Repeat("ж", MaxPasswordBytes/2+1), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ============================================
// HashPassword / CheckPassword
// ============================================

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "bcrypt hash at cost 12, got %q", hash)
	assert.True(t, CheckPassword("correct-horse", hash))
	assert.False(t, CheckPassword("Correct-horse", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_RejectsInvalid(t *testing.T) {
	hash, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Empty(t, hash)

	hash, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Empty(t, hash)
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("correct-horse")
	require.NoError(t, err)
	second, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{"", "plain-text", "$2a$12$truncated"} {
		assert.False(t, CheckPassword("correct-horse", hash), "hash %q", hash)
	}
}
