package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64) // hex doubles the byte length

	other, err := GenerateToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateToken_DefaultLength(t *testing.T) {
	token, err := GenerateToken(0)
	require.NoError(t, err)
	assert.Len(t, token, 64)
}

func TestGenerateToken_ShortLength(t *testing.T) {
	token, err := GenerateToken(16)
	require.NoError(t, err)
	assert.Len(t, token, 32)
}
