package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNameLower(t *testing.T) {
	assert.Equal(t, "riverside athletics club", NormalizeNameLower("  Riverside   Athletics Club "))
	assert.Equal(t, "", NormalizeNameLower("   "))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "riverside-athletics-club", Slugify("Riverside Athletics Club"))
	assert.Equal(t, "sao-paulo-fc", Slugify("São Paulo FC"))
	assert.Equal(t, "club-2026", Slugify("Club (2026)!"))
	assert.Equal(t, "", Slugify("  "))
}

func TestTrimMax(t *testing.T) {
	assert.Equal(t, "abc", TrimMax("  abc  ", 10))
	assert.Equal(t, "abcde", TrimMax("abcdefgh", 5))
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2026-06-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), got.UTC())

	got, err = ParseTime("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())

	_, err = ParseTime("not a time")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
