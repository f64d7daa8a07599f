package token_test

import (
	"testing"
	"time"

	"jobkit-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := token.NewIssuer("secret", "jobkit", 15*time.Minute, 24*time.Hour)

	pair, err := issuer.Issue(42, "employee")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	t.Run("Should carry account id and role in the access token", func(t *testing.T) {
		claims, err := issuer.Parse(pair.AccessToken, token.TypeAccess)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "employee", claims.Role)
		assert.Equal(t, "42", claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Should reject a refresh token where an access token is expected", func(t *testing.T) {
		_, err := issuer.Parse(pair.RefreshToken, token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrWrongType)
	})

	t.Run("Should reject tokens signed with another secret", func(t *testing.T) {
		other := token.NewIssuer("other", "jobkit", time.Minute, time.Hour)
		_, err := other.Parse(pair.AccessToken, token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("Should reject tokens from another issuer", func(t *testing.T) {
		other := token.NewIssuer("secret", "someone-else", time.Minute, time.Hour)
		_, err := other.Parse(pair.AccessToken, token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.jwt", token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})
}

func TestExpiredToken(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	issuer := token.NewIssuer("secret", "jobkit", 15*time.Minute, 30*time.Minute).
		WithClock(func() time.Time { return issued })

	pair, err := issuer.Issue(1, "company")
	require.NoError(t, err)

	verifier := token.NewIssuer("secret", "jobkit", 15*time.Minute, 30*time.Minute)
	_, err = verifier.Parse(pair.AccessToken, token.TypeAccess)
	assert.ErrorIs(t, err, token.ErrInvalid)
	_, err = verifier.Parse(pair.RefreshToken, token.TypeRefresh)
	assert.ErrorIs(t, err, token.ErrInvalid)
}
