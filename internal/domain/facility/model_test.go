package facility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 5, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	// [10:00, 11:00) vs others
	assert.True(t, Overlaps(ts(10, 0), ts(11, 0), ts(10, 30), ts(11, 30)))
	assert.True(t, Overlaps(ts(10, 0), ts(11, 0), ts(9, 30), ts(10, 30)))
	assert.True(t, Overlaps(ts(10, 0), ts(11, 0), ts(9, 0), ts(12, 0)))
	assert.True(t, Overlaps(ts(10, 0), ts(11, 0), ts(10, 15), ts(10, 45)))

	// touching boundaries do not overlap (half-open intervals)
	assert.False(t, Overlaps(ts(10, 0), ts(11, 0), ts(11, 0), ts(12, 0)))
	assert.False(t, Overlaps(ts(10, 0), ts(11, 0), ts(9, 0), ts(10, 0)))
	assert.False(t, Overlaps(ts(10, 0), ts(11, 0), ts(12, 0), ts(13, 0)))
}

func TestWithinOperatingHours(t *testing.T) {
	f := Facility{OpensAt: "08:00", ClosesAt: "22:00"}

	assert.True(t, WithinOperatingHours(f, ts(8, 0), ts(9, 0)))
	assert.True(t, WithinOperatingHours(f, ts(21, 0), ts(22, 0)))
	assert.False(t, WithinOperatingHours(f, ts(7, 30), ts(8, 30)))
	assert.False(t, WithinOperatingHours(f, ts(21, 30), ts(22, 30)))

	// blank hours mean always open
	assert.True(t, WithinOperatingHours(Facility{}, ts(3, 0), ts(4, 0)))

	// closing at midnight
	late := Facility{OpensAt: "18:00", ClosesAt: "00:00"}
	assert.True(t, WithinOperatingHours(late, ts(23, 0), time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, WithinOperatingHours(late, ts(17, 0), ts(19, 0)))
}

func TestPriceFor(t *testing.T) {
	assert.Equal(t, int64(1000), priceFor(1000, ts(10, 0), ts(11, 0)))
	assert.Equal(t, int64(500), priceFor(1000, ts(10, 0), ts(10, 30)))
	assert.Equal(t, int64(2500), priceFor(1000, ts(10, 0), ts(12, 30)))
	assert.Equal(t, int64(0), priceFor(0, ts(10, 0), ts(12, 0)))
}
