package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBracket_EvenCount(t *testing.T) {
	pairings := GenerateBracket([]string{"a", "b", "c", "d"}, 7)
	require.Len(t, pairings, 2)

	seen := map[string]bool{}
	for _, p := range pairings {
		assert.False(t, p.Bye)
		assert.NotEmpty(t, p.Home)
		assert.NotEmpty(t, p.Away)
		seen[p.Home] = true
		seen[p.Away] = true
	}
	assert.Len(t, seen, 4, "every participant appears exactly once")
}

func TestGenerateBracket_OddCountGetsBye(t *testing.T) {
	pairings := GenerateBracket([]string{"a", "b", "c", "d", "e"}, 7)
	require.Len(t, pairings, 3)

	byes := 0
	for _, p := range pairings {
		if p.Bye {
			byes++
			assert.Empty(t, p.Away)
		}
	}
	assert.Equal(t, 1, byes)
}

func TestGenerateBracket_SeedIsReproducible(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g"}

	first := GenerateBracket(names, 42)
	second := GenerateBracket(names, 42)
	assert.Equal(t, first, second)
}

func TestGenerateBracket_DoesNotMutateInput(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	GenerateBracket(names, 99)
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestGenerateBracket_Degenerate(t *testing.T) {
	assert.Empty(t, GenerateBracket(nil, 1))

	solo := GenerateBracket([]string{"a"}, 1)
	require.Len(t, solo, 1)
	assert.True(t, solo[0].Bye)
	assert.Equal(t, "a", solo[0].Home)
}
