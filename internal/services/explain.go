package services

import (
	"centre-scheduler-service/internal/domain"
	"fmt"
	"math"
	"regexp"
)

// ReasonCode identifies one rationale template.
type ReasonCode string

const (
	ReasonPeakTime         ReasonCode = "time_peak"
	ReasonGoodTime         ReasonCode = "time_good"
	ReasonOffPeakTime      ReasonCode = "time_off_peak"
	ReasonHighAttendance   ReasonCode = "attendance_high"
	ReasonSteadyAttendance ReasonCode = "attendance_steady"
	ReasonLowAttendance    ReasonCode = "attendance_low"
	ReasonStrongCollection ReasonCode = "collection_strong"
	ReasonNewCentre        ReasonCode = "collection_new_centre"
	ReasonShortTravel      ReasonCode = "travel_short"
	ReasonModerateTravel   ReasonCode = "travel_moderate"
	ReasonLongTravel       ReasonCode = "travel_long"
	ReasonDuration         ReasonCode = "duration"
)

// Reason is one rationale line before rendering.
type Reason struct {
	Code ReasonCode `json:"code"`
	Args []any      `json:"args,omitempty"`
}

// Inline emphasis used in rendered rationale strings.
const (
	EmphasisOpen  = "<b>"
	EmphasisClose = "</b>"
)

// Rationale thresholds.
const (
	peakTimeScore        = 0.8
	goodTimeScore        = 0.5
	highAttendanceRate   = 0.85
	steadyAttendanceRate = 0.70
	strongCollectionRate = 0.90
	shortTravelMins      = 15
	moderateTravelMins   = 45
)

var reasonTemplates = map[ReasonCode]string{
	ReasonPeakTime:         "**%s** falls in the peak attendance window (mid-morning)",
	ReasonGoodTime:         "**%s** is a good time for member turnout",
	ReasonOffPeakTime:      "**%s** is off-peak; turnout is usually lower at this hour",
	ReasonHighAttendance:   "High historical attendance (**%d%%**)",
	ReasonSteadyAttendance: "Steady attendance (**%d%%**)",
	ReasonLowAttendance:    "Attendance is weak (**%d%%**); a better-attended hour helps",
	ReasonStrongCollection: "Strong collection record (**%d%%**)",
	ReasonNewCentre:        "**New centre**: no collection history yet, the first meeting sets the baseline",
	ReasonShortTravel:      "Short hop from the previous stop (**%d min**)",
	ReasonModerateTravel:   "Moderate travel from the previous stop (**%d min**)",
	ReasonLongTravel:       "Long travel from the previous stop (**%d min**); the penalty is capped at 1 hour",
	ReasonDuration:         "Blocks **%d min** (%d x 30-min slots) for the meeting",
}

var emphasisRe = regexp.MustCompile(`\*\*(.+?)\*\*`)

// ExplainReasons selects rationale codes for a scored slot. Order is fixed:
// time of day, attendance, collection (high rate, or always for new
// centres), travel, duration.
func ExplainReasons(
	slotStart string,
	b domain.ScoreBreakdown,
	durationMinutes int,
	isNewCenter bool,
) []Reason {
	reasons := make([]Reason, 0, 5)

	switch {
	case b.TimeOfDayScore >= peakTimeScore:
		reasons = append(reasons, Reason{Code: ReasonPeakTime, Args: []any{slotStart}})
	case b.TimeOfDayScore >= goodTimeScore:
		reasons = append(reasons, Reason{Code: ReasonGoodTime, Args: []any{slotStart}})
	default:
		reasons = append(reasons, Reason{Code: ReasonOffPeakTime, Args: []any{slotStart}})
	}

	att := percent(b.AttendanceRate)
	switch {
	case b.AttendanceRate >= highAttendanceRate:
		reasons = append(reasons, Reason{Code: ReasonHighAttendance, Args: []any{att}})
	case b.AttendanceRate >= steadyAttendanceRate:
		reasons = append(reasons, Reason{Code: ReasonSteadyAttendance, Args: []any{att}})
	default:
		reasons = append(reasons, Reason{Code: ReasonLowAttendance, Args: []any{att}})
	}

	if isNewCenter {
		reasons = append(reasons, Reason{Code: ReasonNewCentre})
	} else if b.CollectionRate >= strongCollectionRate {
		reasons = append(reasons, Reason{Code: ReasonStrongCollection, Args: []any{percent(b.CollectionRate)}})
	}

	travelMins := int(math.Round(b.TravelHours * 60))
	switch {
	case travelMins <= shortTravelMins:
		reasons = append(reasons, Reason{Code: ReasonShortTravel, Args: []any{travelMins}})
	case travelMins <= moderateTravelMins:
		reasons = append(reasons, Reason{Code: ReasonModerateTravel, Args: []any{travelMins}})
	default:
		reasons = append(reasons, Reason{Code: ReasonLongTravel, Args: []any{travelMins}})
	}

	reasons = append(reasons, Reason{Code: ReasonDuration, Args: []any{durationMinutes, SlotsNeeded(durationMinutes)}})

	return reasons
}

// RenderReasons formats reasons and converts **bold** markers to the
// inline emphasis tags.
func RenderReasons(reasons []Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		tmpl, ok := reasonTemplates[r.Code]
		if !ok {
			continue
		}
		text := fmt.Sprintf(tmpl, r.Args...)
		out = append(out, emphasisRe.ReplaceAllString(text, EmphasisOpen+"$1"+EmphasisClose))
	}
	return out
}

// ExplainSlot returns the rendered rationale for a scored slot.
func ExplainSlot(slotStart string, b domain.ScoreBreakdown, durationMinutes int, isNewCenter bool) []string {
	return RenderReasons(ExplainReasons(slotStart, b, durationMinutes, isNewCenter))
}

func percent(rate float64) int { return int(math.Round(rate * 100)) }
