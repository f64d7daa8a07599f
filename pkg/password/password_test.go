package password_test

import (
	"testing"

	"jobkit-backend/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.Hash("p1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)
	assert.NotEmpty(t, hash)

	ok, err := password.Compare(hash, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = password.Compare(hash, "p2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = password.Compare("not-a-bcrypt-hash", "p1")
	assert.Error(t, err)
}
