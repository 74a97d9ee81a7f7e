package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainSlotRendersEmphasis(t *testing.T) {
	b := ScoreSlot("10:00", 0.9, 0.95, 0.1, false)

	got := ExplainSlot("10:00", b, 50, false)

	assert.Equal(t, []string{
		"<b>10:00</b> falls in the peak attendance window (mid-morning)",
		"High historical attendance (<b>90%</b>)",
		"Strong collection record (<b>95%</b>)",
		"Short hop from the previous stop (<b>6 min</b>)",
		"Blocks <b>50 min</b> (2 x 30-min slots) for the meeting",
	}, got)
	for _, line := range got {
		assert.NotContains(t, line, "**")
	}
}

func TestExplainReasonsOrderAndBands(t *testing.T) {
	b := ScoreSlot("17:30", 0.72, 0.5, 0.75, false)

	reasons := ExplainReasons("17:30", b, 20, false)
	codes := make([]ReasonCode, 0, len(reasons))
	for _, r := range reasons {
		codes = append(codes, r.Code)
	}

	assert.Equal(t, []ReasonCode{
		ReasonOffPeakTime,
		ReasonSteadyAttendance,
		ReasonModerateTravel,
		ReasonDuration,
	}, codes)
}

func TestExplainReasonsNewCentre(t *testing.T) {
	b := ScoreSlot("12:00", 0.5, 0.99, 2, true)

	got := ExplainSlot("12:00", b, 80, true)
	require.Len(t, got, 5)

	assert.Equal(t, "Attendance is weak (<b>50%</b>); a better-attended hour helps", got[1])
	assert.Equal(t, "<b>New centre</b>: no collection history yet, the first meeting sets the baseline", got[2])
	assert.Contains(t, got[3], "<b>120 min</b>")
	assert.Equal(t, "Blocks <b>80 min</b> (3 x 30-min slots) for the meeting", got[4])
}

func TestRenderReasonsSkipsUnknownCodes(t *testing.T) {
	got := RenderReasons([]Reason{{Code: "nope"}, {Code: ReasonDuration, Args: []any{30, 1}}})

	assert.Equal(t, []string{"Blocks <b>30 min</b> (1 x 30-min slots) for the meeting"}, got)
}
