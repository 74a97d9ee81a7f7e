package services

import (
	"centre-scheduler-service/internal/domain"
	"fmt"
	"strings"
	"time"
)

var weekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// FrequencyCheck matches a free-text cadence such as "Weekly - Tuesday"
// against the weekday of meetingDate. The first weekday name found
// (case-insensitive, Sunday first) is the centre's meeting day. A cadence
// without a weekday name is flexible and always valid.
func FrequencyCheck(frequency string, meetingDate time.Time) domain.FrequencyResult {
	text := strings.ToLower(frequency)

	for _, day := range weekdays {
		if !strings.Contains(text, strings.ToLower(day.String())) {
			continue
		}

		actual := meetingDate.Weekday()
		if actual == day {
			return domain.FrequencyResult{
				IsValid: true,
				Message: fmt.Sprintf("Matches the centre's %s meeting day", day),
			}
		}
		return domain.FrequencyResult{
			IsValid: false,
			Message: fmt.Sprintf(
				"Centre meets on %ss but %s is a %s",
				day, meetingDate.Format("2006-01-02"), actual,
			),
		}
	}

	return domain.FrequencyResult{
		IsValid: true,
		Message: "No fixed meeting day; any date is acceptable",
	}
}
