package domain

// GPSTolerance допуск сопоставления координат события с местом (градусы)
// Порог строгий: |Δlat| < GPSTolerance И |Δlng| < GPSTolerance
const GPSTolerance = 0.0001

// GraceMinutes первые минуты стоянки, которые не тарифицируются
const GraceMinutes = 30

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
