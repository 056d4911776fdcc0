package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordIsSaltedAndVerifiable(t *testing.T) {
	first, err := HashPassword("correct horse")
	require.NoError(t, err)
	second, err := HashPassword("correct horse")
	require.NoError(t, err)

	// Distinct salt per call: same plaintext, different hash strings
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "correct horse", first)

	// Both verify against the original plaintext only
	assert.True(t, CheckPassword("correct horse", first))
	assert.True(t, CheckPassword("correct horse", second))
	assert.False(t, CheckPassword("battery staple", first))
	assert.False(t, CheckPassword("", first))
}
