package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, h.Compare(hash, "correct horse battery"))
	assert.ErrorIs(t, h.Compare(hash, "wrong password"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost int
		want int
	}{
		{"zero uses default", 0, bcrypt.DefaultCost},
		{"too low uses default", 3, bcrypt.DefaultCost},
		{"too high uses default", 32, bcrypt.DefaultCost},
		{"valid cost kept", 12, 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewBcryptHasher(tc.cost).cost)
		})
	}
}
