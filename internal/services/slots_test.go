package services

import (
	"centre-scheduler-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlots(t *testing.T) {
	slots := GenerateSlots(DefaultSlotsStart, DefaultSlotsEnd)

	assert.Len(t, slots, 21)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "19:00", slots[len(slots)-1])

	assert.Empty(t, GenerateSlots("10:00", "10:00"))
	assert.Empty(t, GenerateSlots("11:00", "10:00"))
	assert.Equal(t, GenerateSlots("09:00", "19:30"), slots)
}

func TestSlotsNeeded(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 30: 1, 31: 2, 50: 2, 60: 2, 61: 3, 190: 7}
	for in, want := range tests {
		assert.Equal(t, want, SlotsNeeded(in), "SlotsNeeded(%d)", in)
	}
}

func TestInsideWindow(t *testing.T) {
	windows := []domain.AvailabilityWindow{
		{Start: "09:00", End: "10:00"},
		{Start: "14:00", End: "17:00"},
	}

	assert.True(t, InsideWindow("09:00", 2, windows), "meeting ending at window end is valid")
	assert.False(t, InsideWindow("09:30", 2, windows), "meeting crossing window end")
	assert.False(t, InsideWindow("08:30", 1, windows), "meeting starting before window")
	assert.True(t, InsideWindow("14:00", 6, windows))
	assert.False(t, InsideWindow("09:00", 10, windows), "cannot span two windows")
	assert.False(t, InsideWindow("09:00", 1, nil))
}

func TestInsideWindowMonotonic(t *testing.T) {
	windows := []domain.AvailabilityWindow{
		{Start: "08:00", End: "13:00"},
		{Start: "15:30", End: "18:00"},
	}

	for _, slot := range GenerateSlots(DefaultSlotsStart, DefaultSlotsEnd) {
		for n := 1; n <= 12; n++ {
			if !InsideWindow(slot, n, windows) {
				continue
			}
			for smaller := 0; smaller < n; smaller++ {
				assert.True(t, InsideWindow(slot, smaller, windows), "slot %s fits %d but not %d", slot, n, smaller)
			}
		}
	}
}

func TestIsSlotOccupied(t *testing.T) {
	booked := []domain.MeetingStop{{Centre: "Kolar", Start: "09:15", End: "09:45"}}

	got := IsSlotOccupied("09:00", 30, booked, "")
	assert.Equal(t, domain.Occupancy{Occupied: true, CentreName: "Kolar"}, got)

	got = IsSlotOccupied("09:00", 15, booked, "")
	assert.False(t, got.Occupied, "touching intervals do not overlap")

	got = IsSlotOccupied("09:45", 30, booked, "")
	assert.False(t, got.Occupied, "starting at booking end does not overlap")

	got = IsSlotOccupied("09:00", 30, booked, "Kolar")
	assert.False(t, got.Occupied, "ignored centre is skipped")
}

func TestIsSlotOccupiedReportsFirstConflict(t *testing.T) {
	schedule := []domain.MeetingStop{
		{Centre: "X", Start: "09:00", End: "10:20"},
		{Centre: "Y", Start: "09:40", End: "10:40"},
	}

	got := IsSlotOccupied("09:30", 30, schedule, "")
	assert.Equal(t, domain.Occupancy{Occupied: true, CentreName: "X"}, got)

	got = IsSlotOccupied("09:30", 30, schedule, "X")
	assert.Equal(t, domain.Occupancy{Occupied: true, CentreName: "Y"}, got)

	got = IsSlotOccupied("11:00", 30, schedule, "")
	assert.False(t, got.Occupied)
	assert.Empty(t, got.CentreName)
}

func TestFilterUnoccupiedKeepsRankOrder(t *testing.T) {
	ranked := []domain.FeasibleSlot{
		{Slot: "10:00", Score: 0.8},
		{Slot: "09:30", Score: 0.7},
		{Slot: "11:00", Score: 0.6},
		{Slot: "09:00", Score: 0.5},
	}
	schedule := []domain.MeetingStop{{Centre: "Malur", Start: "09:45", End: "10:30"}}

	got := FilterUnoccupied(ranked, 30, schedule, "")
	assert.Equal(t, []domain.FeasibleSlot{{Slot: "11:00", Score: 0.6}, {Slot: "09:00", Score: 0.5}}, got)

	got = FilterUnoccupied(ranked, 30, schedule, "Malur")
	assert.Equal(t, ranked, got)
}
