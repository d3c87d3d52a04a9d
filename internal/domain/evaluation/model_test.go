package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallRating_EqualWeights(t *testing.T) {
	skills := map[string]int{"passing": 8, "shooting": 6, "stamina": 7}
	assert.Equal(t, 7.0, OverallRating(skills, nil))
}

func TestOverallRating_Weighted(t *testing.T) {
	skills := map[string]int{"passing": 10, "shooting": 5}
	weights := map[string]float64{"passing": 3, "shooting": 1}
	// (10*3 + 5*1) / 4 = 8.75 -> 8.8
	assert.Equal(t, 8.8, OverallRating(skills, weights))
}

func TestOverallRating_MissingWeightDefaultsToOne(t *testing.T) {
	skills := map[string]int{"passing": 9, "shooting": 3}
	weights := map[string]float64{"passing": 1}
	assert.Equal(t, 6.0, OverallRating(skills, weights))
}

func TestOverallRating_Empty(t *testing.T) {
	assert.Equal(t, 0.0, OverallRating(nil, nil))
	assert.Equal(t, 0.0, OverallRating(map[string]int{}, nil))
}

func TestOverallRating_RoundsToOneDecimal(t *testing.T) {
	skills := map[string]int{"a": 7, "b": 8, "c": 8}
	// 23/3 = 7.666... -> 7.7
	assert.Equal(t, 7.7, OverallRating(skills, nil))
}
