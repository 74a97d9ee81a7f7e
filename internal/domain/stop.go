package domain

// StopType is the role a stop plays inside a field officer's day.
type StopType string

const (
	// The officer's branch office; always first in any ordering.
	StopBase StopType = "base"
	// A pre-existing commitment visited at its fixed time.
	StopBusy StopType = "busy"
	// The candidate meeting being placed.
	StopTarget StopType = "target"
)

// Represents a geographic point on the officer's route.
// Time is minutes since midnight. Stops are rebuilt from the caller's schedule
// snapshot on every request and never mutated during a computation.
type Stop struct {
	Name string   `json:"name"`
	Lat  float64  `json:"lat"`
	Lng  float64  `json:"lng"`
	Time int      `json:"time"`
	Type StopType `json:"type"`
}

func (s Stop) Coords() Coordinates { return Coordinates{Lat: s.Lat, Lng: s.Lng} }
