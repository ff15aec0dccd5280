package domain

// Sector represents a named zone of the garage with its own base price and capacity
// Loaded once at startup and immutable afterwards
type Sector struct {
	Name        string
	BasePrice   float64
	MaxCapacity int
}

// IsFull returns true if the sector has no free capacity left
func (s *Sector) IsFull(occupiedCount int) bool {
	return occupiedCount >= s.MaxCapacity
}

// OccupancyRate returns occupied spots / capacity as a 0..1 ratio
// A sector with zero capacity is treated as empty to avoid a division fault
func (s *Sector) OccupancyRate(occupiedCount int) float64 {
	if s.MaxCapacity == 0 {
		return 0
	}
	return float64(occupiedCount) / float64(s.MaxCapacity)
}
