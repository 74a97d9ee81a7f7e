package domain

// Represents a booked centre meeting in the officer's day.
// Start and End are zero-padded 24h "HH:MM" strings. The engine only reads these.
type MeetingStop struct {
	Centre    string  `json:"centre"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Members   int     `json:"members,omitempty"`
	Frequency string  `json:"frequency,omitempty"`
}

func (m MeetingStop) Coords() Coordinates { return Coordinates{Lat: m.Lat, Lng: m.Lng} }

// A period in which meetings may legally be scheduled.
// A meeting must fit entirely inside one window; touching either boundary is allowed.
type AvailabilityWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Result of checking a proposed meeting against the booked schedule.
type Occupancy struct {
	Occupied   bool   `json:"occupied"`
	CentreName string `json:"centre_name,omitempty"`
}

// Outcome of matching a centre's cadence text against a meeting date.
type FrequencyResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}
