package utils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_Length(t *testing.T) {
	for _, n := range []int{1, 8, 16, 32} {
		code, err := GenerateCode(n)
		require.NoError(t, err)
		assert.Len(t, code, n*2, "hex encoding doubles the byte count")
	}
}

func TestGenerateCode_UppercaseHex(t *testing.T) {
	code, err := GenerateCode(16)
	require.NoError(t, err)

	assert.Equal(t, strings.ToUpper(code), code)
	_, err = hex.DecodeString(code)
	assert.NoError(t, err)
}

func TestGenerateCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode(16)
		require.NoError(t, err)
		assert.False(t, seen[code], "codes must not repeat")
		seen[code] = true
	}
}

func TestGenerateCode_ZeroBytes(t *testing.T) {
	code, err := GenerateCode(0)
	require.NoError(t, err)
	assert.Empty(t, code)
}
