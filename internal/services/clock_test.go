package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(13.33, 77.095, 13.33, 77.095))
	assert.InDelta(t, 111.19492664455873, HaversineDistance(0, 0, 0, 1), 1e-9)

	ab := HaversineDistance(13.33, 77.095, 13.40, 77.15)
	ba := HaversineDistance(13.40, 77.15, 13.33, 77.095)
	assert.InDelta(t, ab, ba, 1e-12)
}

func TestTimeConversions(t *testing.T) {
	tests := []struct {
		clock string
		mins  int
	}{
		{"00:00", 0},
		{"00:05", 5},
		{"09:00", 540},
		{"09:30", 570},
		{"19:00", 1140},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.mins, TimeToMins(tt.clock), "TimeToMins(%q)", tt.clock)
		assert.Equal(t, tt.clock, MinsToTime(tt.mins), "MinsToTime(%d)", tt.mins)
	}

	// No wraparound past midnight.
	assert.Equal(t, "24:00", MinsToTime(1440))
	assert.Equal(t, "25:00", MinsToTime(1500))

	assert.Equal(t, 0, TimeToMins("garbage"))
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("07:45")
	require.NoError(t, err)
	assert.Equal(t, 465, got)

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd", "12:5"} {
		_, err := ParseClock(bad)
		assert.True(t, errors.Is(err, ErrInvalidClock), "ParseClock(%q) err = %v", bad, err)
	}
}

func TestRoundToNextHalfHour(t *testing.T) {
	tests := map[int]int{0: 0, 1: 30, 29: 30, 30: 30, 540: 540, 541: 570, 569: 570, 571: 600}
	for in, want := range tests {
		assert.Equal(t, want, RoundToNextHalfHour(in), "RoundToNextHalfHour(%d)", in)
	}
}

func TestCalculateDuration(t *testing.T) {
	assert.Equal(t, 20, CalculateDuration(0))
	assert.Equal(t, 50, CalculateDuration(10))
	assert.Equal(t, 3020, CalculateDuration(1000))
	assert.Equal(t, 20, CalculateDuration(-4))
	assert.Equal(t, 27, CalculateDurationWith(5, 5, 2, 12))
}
