package session

import (
	"testing"
	"time"

	"github.com/onebus/fleet-console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryFromToken(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	got, ok := ExpiryFromToken(testutil.Token(t, "a@b.c", exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = ExpiryFromToken(testutil.Token(t, "a@b.c", time.Time{}))
	assert.False(t, ok, "token without exp")

	_, ok = ExpiryFromToken("opaque-token")
	assert.False(t, ok)
}

func TestClaims(t *testing.T) {
	claims, err := Claims(testutil.Token(t, "ana@example.com", time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims["email"])

	_, err = Claims("x.y")
	assert.Error(t, err)
}
