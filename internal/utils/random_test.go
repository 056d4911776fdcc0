package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestRandomStringLengthAndAlphabet(t *testing.T) {
	for _, n := range []int{1, 4, 6, 17, 64} {
		s, err := RandomString(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
		assert.Regexp(t, urlSafe, s)
	}
}

func TestRandomStringZeroLength(t *testing.T) {
	s, err := RandomString(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestRandomStringVaries(t *testing.T) {
	a, err := RandomString(16)
	require.NoError(t, err)
	b, err := RandomString(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
