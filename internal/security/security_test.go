package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash := HashPassword("s3cret-pass", salt)
	assert.True(t, CheckPassword(hash, salt, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, salt, "wrong-pass"))
}

func TestPasswordWrongSaltFails(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	hash := HashPassword("s3cret-pass", s1)
	assert.False(t, CheckPassword(hash, s2, "s3cret-pass"))
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("secret", PurposeAccess, "doc-1", "a@b.c", "Ada", "Lovelace", time.Minute)
	require.NoError(t, err)

	c, err := ParseToken("secret", PurposeAccess, tok)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", c.DoctorID)
	assert.Equal(t, "a@b.c", c.Email)
	assert.Equal(t, "Ada", c.FirstName)
	assert.Equal(t, "doc-1", c.Subject)
}

func TestTokenPurposeEnforced(t *testing.T) {
	tok, err := MakeToken("secret", PurposeReset, "doc-1", "a@b.c", "", "", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", PurposeAccess, tok)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	tok, err := MakeToken("secret", PurposeVerify, "doc-1", "a@b.c", "", "", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", PurposeVerify, tok)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := MakeToken("secret", PurposeAccess, "doc-1", "a@b.c", "", "", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("other", PurposeAccess, tok)
	assert.Error(t, err)
}
