package services

import (
	"centre-scheduler-service/internal/domain"
	"math"

	"github.com/shopspring/decimal"
)

// Score weights. Travel is subtracted; the others add.
const (
	WeightAttendance = 0.40
	WeightCollection = 0.30
	WeightTravel     = 0.15
	WeightTimeOfDay  = 0.15

	// Travel beyond this many hours is not penalized further.
	MaxTravelPenaltyHours = 1.0

	scorePlaces = 4
)

// Time-of-day breakpoints in minutes since midnight.
const (
	morningPeak  = 600 // 10:00
	morningEnd   = 690 // 11:30, score 0.5
	lunchEnd     = 870 // 14:30
	afternoonEnd = 960 // 16:00

	morningFalloff = 180.0 // ±3h linear band around the peak
	lunchScore     = 0.3
	afternoonScore = 0.6
	eveningDecay   = 300.0 // afternoonScore reaches 0 at 21:00
)

// TimeOfDayPreference scores how well a start time suits member attendance.
// Attendance peaks mid-morning, dips over lunch, partly recovers in the
// early afternoon and decays into the evening, never going below 0.
func TimeOfDayPreference(slotStart string) float64 {
	t := float64(TimeToMins(slotStart))

	var v float64
	switch {
	case t <= morningEnd:
		v = 1 - math.Abs(t-morningPeak)/morningFalloff
	case t <= lunchEnd:
		v = lunchScore
	case t <= afternoonEnd:
		v = afternoonScore
	default:
		v = afternoonScore - (t-afternoonEnd)/eveningDecay
	}

	return math.Max(0, v)
}

// ScoreSlot combines attendance, collection, travel and time-of-day into a
// single score. Non-finite inputs fall back to 0 and negative travel is
// treated as none. isNewCenter is carried into the breakdown for rationale
// rendering; new centres are scored with the rates the caller supplies.
func ScoreSlot(
	slotStart string,
	attendance float64,
	collection float64,
	travelHours float64,
	isNewCenter bool,
) domain.ScoreBreakdown {
	attendance = finiteOr(attendance, 0)
	collection = finiteOr(collection, 0)
	travelHours = math.Max(0, finiteOr(travelHours, 0))

	penalty := math.Min(travelHours, MaxTravelPenaltyHours)
	tod := TimeOfDayPreference(slotStart)

	att := weighted(attendance, WeightAttendance)
	col := weighted(collection, WeightCollection)
	trv := weighted(penalty, WeightTravel).Neg()
	tdy := weighted(tod, WeightTimeOfDay)

	return domain.ScoreBreakdown{
		AttendanceRate:     attendance,
		CollectionRate:     collection,
		TravelHours:        travelHours,
		TravelPenalty:      penalty,
		TimeOfDayScore:     tod,
		AttendanceWeighted: att.InexactFloat64(),
		CollectionWeighted: col.InexactFloat64(),
		TravelWeighted:     trv.InexactFloat64(),
		TimeOfDayWeighted:  tdy.InexactFloat64(),
		Total:              att.Add(col).Add(trv).Add(tdy).InexactFloat64(),
		IsNewCenter:        isNewCenter,
	}
}

// weighted rounds value*weight to scorePlaces decimals.
func weighted(value, weight float64) decimal.Decimal {
	return decimal.NewFromFloat(value * weight).Round(scorePlaces)
}
