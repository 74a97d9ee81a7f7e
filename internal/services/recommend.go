package services

import (
	"centre-scheduler-service/internal/domain"
	"cmp"
	"slices"
)

// RecommendSlot ranks every candidate slot that fits an availability window
// and returns the best one.
//
// The ranking is a stable descending sort by total score, so equal scores
// keep generation order. The recommender does not look at booked meetings;
// callers narrow the ranked list with FilterUnoccupied. When no slot fits,
// BestSlot is empty and AllFeasible is an empty list.
func RecommendSlot(
	totalMembers int,
	windows []domain.AvailabilityWindow,
	attendance float64,
	collection float64,
	travelTimeMinutes float64,
	isNewCenter bool,
) domain.Recommendation {
	duration := CalculateDuration(totalMembers)
	needed := SlotsNeeded(duration)
	travelHours := finiteOr(travelTimeMinutes, 0) / 60

	type scored struct {
		slot      string
		breakdown domain.ScoreBreakdown
	}

	candidates := make([]scored, 0)
	for _, slot := range GenerateSlots(DefaultSlotsStart, DefaultSlotsEnd) {
		if !InsideWindow(slot, needed, windows) {
			continue
		}
		candidates = append(candidates, scored{
			slot:      slot,
			breakdown: ScoreSlot(slot, attendance, collection, travelHours, isNewCenter),
		})
	}

	rec := domain.Recommendation{
		Duration:    duration,
		AllFeasible: make([]domain.FeasibleSlot, 0, len(candidates)),
	}
	if len(candidates) == 0 {
		return rec
	}

	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.breakdown.Total, a.breakdown.Total)
	})

	for _, c := range candidates {
		rec.AllFeasible = append(rec.AllFeasible, domain.FeasibleSlot{Slot: c.slot, Score: c.breakdown.Total})
	}

	top := candidates[0].breakdown
	rec.BestSlot = candidates[0].slot
	rec.TopBreakdown = &top

	return rec
}
