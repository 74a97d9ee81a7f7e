package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeOfDayPreference(t *testing.T) {
	tests := []struct {
		slot string
		want float64
	}{
		{"07:00", 0},
		{"06:00", 0},
		{"08:30", 0.5},
		{"09:00", 1 - 60.0/180},
		{"10:00", 1},
		{"11:30", 0.5},
		{"12:00", 0.3},
		{"14:30", 0.3},
		{"15:00", 0.6},
		{"16:00", 0.6},
		{"17:00", 0.4},
		{"19:00", 0},
		{"21:30", 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, TimeOfDayPreference(tt.slot), 1e-9, "TimeOfDayPreference(%q)", tt.slot)
	}
}

func TestScoreSlotBestCase(t *testing.T) {
	b := ScoreSlot("10:00", 1, 1, 0, false)

	assert.Equal(t, 0.85, b.Total)
	assert.Equal(t, 0.4, b.AttendanceWeighted)
	assert.Equal(t, 0.3, b.CollectionWeighted)
	assert.Equal(t, 0.0, b.TravelWeighted)
	assert.Equal(t, 0.15, b.TimeOfDayWeighted)
}

func TestScoreSlotTravelPenaltyIsCapped(t *testing.T) {
	oneHour := ScoreSlot("10:00", 0.8, 0.8, 1, false)
	threeHours := ScoreSlot("10:00", 0.8, 0.8, 3, false)

	assert.Equal(t, -0.15, oneHour.TravelWeighted)
	assert.Equal(t, oneHour.Total, threeHours.Total)
	assert.Equal(t, 3.0, threeHours.TravelHours)
	assert.Equal(t, 1.0, threeHours.TravelPenalty)
}

func TestScoreSlotRoundsEachTerm(t *testing.T) {
	b := ScoreSlot("12:00", 1.0/3, 0, 0, false)

	assert.Equal(t, 0.1333, b.AttendanceWeighted)
	assert.Equal(t, 0.045, b.TimeOfDayWeighted)
	assert.Equal(t, 0.1783, b.Total)
}

func TestScoreSlotSanitizesInputs(t *testing.T) {
	b := ScoreSlot("10:00", math.NaN(), math.Inf(1), -2, true)

	assert.Equal(t, 0.0, b.AttendanceRate)
	assert.Equal(t, 0.0, b.CollectionRate)
	assert.Equal(t, 0.0, b.TravelHours)
	assert.Equal(t, 0.15, b.Total)
	assert.True(t, b.IsNewCenter)
}

func TestScoreSlotBounds(t *testing.T) {
	for _, slot := range GenerateSlots("06:00", "22:00") {
		for _, rate := range []float64{0, 0.25, 0.5, 0.75, 1} {
			for _, travel := range []float64{0, 0.5, 1, 4} {
				total := ScoreSlot(slot, rate, rate, travel, false).Total
				assert.GreaterOrEqual(t, total, -0.15, "slot %s", slot)
				assert.LessOrEqual(t, total, 0.85, "slot %s", slot)
			}
		}
	}
}

func TestScoreSlotNewCentreDoesNotChangeScore(t *testing.T) {
	existing := ScoreSlot("11:00", 0.7, 0.6, 0.25, false)
	fresh := ScoreSlot("11:00", 0.7, 0.6, 0.25, true)

	assert.Equal(t, existing.Total, fresh.Total)
}
