package security

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	ctx := context.Background()
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)

	first, err := hasher.Hash(ctx, "hunter22")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "соль должна отличаться")

	ok, err := hasher.Verify(ctx, "hunter22", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify(ctx, "hunter23", first)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	ok, err := NewPasswordHasher(bcrypt.MinCost, 1).Verify(context.Background(), "hunter22", "not-a-bcrypt-hash")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_TooLong(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost, 1).Hash(context.Background(), strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestPasswordHasher_DefaultCost(t *testing.T) {
	hasher := NewPasswordHasher(0, 0)
	assert.Equal(t, DefaultPasswordCost, hasher.cost)
}

func TestPasswordHasher_RespectsContextWhenSaturated(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 1)
	require.True(t, hasher.sem.TryAcquire(1))
	defer hasher.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := hasher.Hash(ctx, "hunter22")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = hasher.Verify(ctx, "hunter22", "$2a$04$abc")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("token"), HashToken("token"))
	assert.NotEqual(t, HashToken("token"), HashToken("token2"))
	assert.Len(t, HashToken("token"), 64)
	assert.True(t, TokenHashEqual(HashToken("a"), HashToken("a")))
	assert.False(t, TokenHashEqual(HashToken("a"), HashToken("b")))
}
