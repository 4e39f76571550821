package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInputPassesCleanText(t *testing.T) {
	for _, input := range []string{
		"Acme Logistics LLC",
		"line one\nline two",
		"tab\tseparated",
		"café, naïve, 保険",
	} {
		clean, err := SanitizeInput(input)
		require.NoError(t, err)
		assert.Equal(t, input, clean)
	}
}

func TestSanitizeInputStripsControlCharacters(t *testing.T) {
	clean, err := SanitizeInput("Acme\x1b[31m LLC\x00")
	require.NoError(t, err)
	assert.Equal(t, "Acme[31m LLC", clean)
}

func TestSanitizeInputRejectsOversized(t *testing.T) {
	_, err := SanitizeInput(strings.Repeat("a", DefaultMaxInputSize+1))
	assert.ErrorIs(t, err, ErrInputTooLarge)

	// Exactly at the limit is fine.
	_, err = SanitizeInput(strings.Repeat("a", DefaultMaxInputSize))
	assert.NoError(t, err)
}

func TestSanitizeInputSizeOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := SanitizeInput("12345678901")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	_, err = SanitizeInput("1234567890")
	assert.NoError(t, err)
}

func TestSanitizeInputIgnoresBadOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "not-a-number")

	_, err := SanitizeInput(strings.Repeat("a", DefaultMaxInputSize))
	assert.NoError(t, err)
}

func TestSanitizeInputRejectsInvalidUTF8(t *testing.T) {
	_, err := SanitizeInput(string([]byte{0xff, 0xfe}))
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
