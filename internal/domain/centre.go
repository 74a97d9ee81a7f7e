package domain

// Represents a recurring borrower group meeting location.
// Rates are historical fractions in [0, 1]. New centres carry no history and
// use neutral defaults supplied by the caller.
type Centre struct {
	ID             int64   `json:"id" db:"centre_id"`
	Name           string  `json:"name" db:"name"`
	Lat            float64 `json:"lat" db:"lat"`
	Lng            float64 `json:"lng" db:"lng"`
	Members        int     `json:"members" db:"members"`
	AttendanceRate float64 `json:"attendance_rate" db:"attendance_rate"`
	CollectionRate float64 `json:"collection_rate" db:"collection_rate"`
	Frequency      string  `json:"frequency" db:"frequency"`
	IsNew          bool    `json:"is_new" db:"is_new"`
}

func (c Centre) Coords() Coordinates { return Coordinates{Lat: c.Lat, Lng: c.Lng} }
