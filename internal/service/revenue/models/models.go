package models

import "time"

// GetRevenueRequest параметры запроса выручки
type GetRevenueRequest struct {
	Sector string    // Имя сектора (точное совпадение, с учетом регистра)
	Date   time.Time // Календарный день UTC
}

// RevenueResponse выручка сектора за день
type RevenueResponse struct {
	Sector string
	Date   time.Time
	Amount float64
}
