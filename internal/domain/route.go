package domain

// Coordinate is a latitude/longitude pair in degrees.
// Immutable once created; always passed by value.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Equal reports whether two coordinates are the same point.
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Latitude == other.Latitude && c.Longitude == other.Longitude
}

// Location is a named point on the map. Two locations are
// interchangeable for trip purposes when their coordinates match,
// regardless of name.
type Location struct {
	Name       string
	Coordinate Coordinate
}

// SamePlace reports whether two locations share the same coordinates.
func (l *Location) SamePlace(other *Location) bool {
	if l == nil || other == nil {
		return false
	}
	return l.Coordinate.Equal(other.Coordinate)
}

// Route is a trip between two locations. DistanceMiles is the
// authoritative booked distance: it is normally populated by the route
// planner at creation time, but callers may override it. The booking
// workflow flags (never rejects) large deviations from the recomputed
// value.
type Route struct {
	From          *Location
	To            *Location
	DistanceMiles float64
}
