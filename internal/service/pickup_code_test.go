package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePickupCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := generatePickupCode()
		require.NoError(t, err)
		require.Regexp(t, pickupCodePattern, code)
		seen[code] = true
	}

	// 100 draws from 36^6 should not all collide.
	require.Greater(t, len(seen), 90)
}
