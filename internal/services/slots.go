package services

import (
	"centre-scheduler-service/internal/domain"
)

// Default bounds for candidate slot generation.
const (
	DefaultSlotsStart = "09:00"
	DefaultSlotsEnd   = "19:30"
)

// GenerateSlots returns every SlotSize-aligned start time from start up to,
// but not including, end.
func GenerateSlots(start, end string) []string {
	from := TimeToMins(start)
	to := TimeToMins(end)
	if to <= from {
		return []string{}
	}

	slots := make([]string, 0, (to-from)/SlotSize+1)
	for t := from; t < to; t += SlotSize {
		slots = append(slots, MinsToTime(t))
	}
	return slots
}

// SlotsNeeded returns how many buckets a meeting of durationMinutes occupies.
func SlotsNeeded(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + SlotSize - 1) / SlotSize
}

// InsideWindow reports whether [slotStart, slotStart+nSlots*SlotSize] lies
// entirely within at least one window. Both window ends are inclusive.
func InsideWindow(slotStart string, nSlots int, windows []domain.AvailabilityWindow) bool {
	s := TimeToMins(slotStart)
	e := s + nSlots*SlotSize

	for _, w := range windows {
		if s >= TimeToMins(w.Start) && e <= TimeToMins(w.End) {
			return true
		}
	}
	return false
}

// IsSlotOccupied checks [start, start+duration) against every booking using a
// strict overlap test, so meetings that only touch do not conflict. The first
// conflicting centre is reported. Bookings for ignoreCentre are skipped, which
// lets a centre re-score its own existing slot.
func IsSlotOccupied(
	start string,
	durationMinutes int,
	schedule []domain.MeetingStop,
	ignoreCentre string,
) domain.Occupancy {
	s := TimeToMins(start)
	e := s + durationMinutes

	for _, b := range schedule {
		if ignoreCentre != "" && b.Centre == ignoreCentre {
			continue
		}

		bs := TimeToMins(b.Start)
		be := TimeToMins(b.End)
		if max(s, bs) < min(e, be) {
			return domain.Occupancy{Occupied: true, CentreName: b.Centre}
		}
	}

	return domain.Occupancy{}
}

// FilterUnoccupied keeps, in rank order, the slots that do not conflict with
// the current schedule. It is the caller-side second pass over a
// Recommendation and never re-runs the search.
func FilterUnoccupied(
	ranked []domain.FeasibleSlot,
	durationMinutes int,
	schedule []domain.MeetingStop,
	ignoreCentre string,
) []domain.FeasibleSlot {
	out := make([]domain.FeasibleSlot, 0, len(ranked))
	for _, fs := range ranked {
		if IsSlotOccupied(fs.Slot, durationMinutes, schedule, ignoreCentre).Occupied {
			continue
		}
		out = append(out, fs)
	}
	return out
}
