package domain

import "math"

// Spot represents one physical parking space
// Belongs to exactly one sector for its lifetime; only Occupied mutates
type Spot struct {
	ID         string
	SectorName string
	Lat        float64
	Lng        float64
	Occupied   bool
}

// Matches returns true if the given coordinates fall within GPS tolerance of the spot
func (s *Spot) Matches(lat, lng float64) bool {
	return math.Abs(s.Lat-lat) < GPSTolerance && math.Abs(s.Lng-lng) < GPSTolerance
}
