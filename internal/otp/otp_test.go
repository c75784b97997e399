package otp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, Length)
		for _, ch := range code {
			require.True(t, ch >= '0' && ch <= '9')
		}
		seen[code] = true
	}
	// 50 draws from a million values should not all collide
	require.Greater(t, len(seen), 1)
}
