package domain

import "time"

// Session represents one vehicle's stay in the garage, from ENTRY to EXIT
// Sessions are append-only history: they are closed on exit, never deleted
type Session struct {
	ID           int64
	LicensePlate string
	EntryTime    time.Time
	ExitTime     *time.Time

	// Заполняются на событии PARKED
	SectorName *string
	SpotID     *string
	Lat        *float64
	Lng        *float64

	// Почасовая ставка, зафиксированная в момент назначения места.
	// 0 до PARKED, далее не пересчитывается.
	AppliedBasePrice float64

	// Итоговая стоимость, выставляется один раз на EXIT
	FinalPrice *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the vehicle has not exited yet
func (s *Session) IsActive() bool {
	return s.ExitTime == nil
}

// IsParked returns true if a spot has been assigned to the session
func (s *Session) IsParked() bool {
	return s.SpotID != nil
}

// Duration returns the elapsed time between entry and the given moment
func (s *Session) Duration(at time.Time) time.Duration {
	return at.Sub(s.EntryTime)
}
