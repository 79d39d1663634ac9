package tokens

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("test-access-secret")
	refreshSecret = []byte("test-refresh-secret")
)

func TestIssueAccess_RoundTrip(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute).UTC()
	tok, err := IssueAccess(accessSecret, "42", "a@b.io", exp)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "a@b.io", claims.Email)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestIssueRefresh_ReturnsJTI(t *testing.T) {
	t.Parallel()

	tok, jti, err := IssueRefresh(refreshSecret, "7", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(tok, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "7", claims.Subject)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := IssueAccess(accessSecret, "1", "", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, accessSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueAccess(accessSecret, "1", "", time.Now().Add(time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, refreshSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestCookies(t *testing.T) {
	t.Parallel()

	c := CreateCookie(AccessCookie, "v", "/", time.Now().Add(time.Hour))
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	d := DeleteCookie(RefreshCookie, "/")
	assert.Equal(t, -1, d.MaxAge)
	assert.Empty(t, d.Value)

	assert.Len(t, Sha256Hex("x"), 64)
	assert.NotEqual(t, NewJTI(), NewJTI())
}
