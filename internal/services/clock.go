package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SlotSize is the width of a scheduling bucket in minutes.
const SlotSize = 30

// ErrInvalidClock is returned when a string is not a 24h "HH:MM" time.
var ErrInvalidClock = errors.New("invalid HH:MM time")

// TimeToMins converts "HH:MM" to minutes since midnight.
// Unparseable parts count as zero.
func TimeToMins(hhmm string) int {
	h, m, _ := strings.Cut(strings.TrimSpace(hhmm), ":")
	hours, _ := strconv.Atoi(h)
	mins, _ := strconv.Atoi(m)
	return hours*60 + mins
}

// ParseClock is the strict form of TimeToMins used to validate caller input.
func ParseClock(hhmm string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("parse clock %q: %w", hhmm, ErrInvalidClock)
	}

	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("parse clock %q: %w", hhmm, ErrInvalidClock)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("parse clock %q: %w", hhmm, ErrInvalidClock)
	}

	return hours*60 + mins, nil
}

// MinsToTime formats minutes since midnight as zero-padded "HH:MM".
// Values past 23:59 are not wrapped: 1500 formats as "25:00".
func MinsToTime(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// RoundToNextHalfHour snaps mins up to the next multiple of SlotSize.
func RoundToNextHalfHour(mins int) int {
	if rem := mins % SlotSize; rem != 0 {
		return mins + SlotSize - rem
	}
	return mins
}

// Meeting duration defaults, in minutes.
const (
	DefaultBaseMinutes      = 10
	DefaultMinutesPerMember = 3
	DefaultBufferMinutes    = 10
)

// CalculateDuration returns the minutes a centre meeting needs with the
// default base, per-member and buffer allowances.
func CalculateDuration(totalMembers int) int {
	return CalculateDurationWith(totalMembers, DefaultBaseMinutes, DefaultMinutesPerMember, DefaultBufferMinutes)
}

// CalculateDurationWith is CalculateDuration with explicit allowances.
// Negative member counts are treated as zero; there is no upper cap.
func CalculateDurationWith(totalMembers, baseMin, minPerMember, bufferMin int) int {
	if totalMembers < 0 {
		totalMembers = 0
	}
	return baseMin + totalMembers*minPerMember + bufferMin
}
