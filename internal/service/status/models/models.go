package models

import "time"

// PlateStatusResponse статус активной сессии автомобиля
type PlateStatusResponse struct {
	LicensePlate  string
	EntryTime     time.Time
	TimeParked    time.Duration
	PriceUntilNow float64 // Стоимость стоянки, если бы автомобиль выехал сейчас

	// Координаты назначенного места; nil до события PARKED
	Lat *float64
	Lng *float64
}

// SpotStatusResponse статус парковочного места
type SpotStatusResponse struct {
	SpotID   string
	Occupied bool

	// Данные занимающей сессии; nil для свободного места
	LicensePlate  *string
	EntryTime     *time.Time
	TimeParked    *time.Duration
	PriceUntilNow *float64
}
