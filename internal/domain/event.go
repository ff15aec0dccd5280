package domain

import "time"

// Event типизированное событие жизненного цикла автомобиля
// Каждый вариант несет только те поля, которые нужны его переходу,
// поэтому состояние "не то опциональное поле" невозможно по построению
type Event interface {
	// Plate возвращает госномер автомобиля, к которому относится событие
	Plate() string
	// Type возвращает тег события для логов
	Type() EventType

	isEvent()
}

// EventType тег типа события на проводе
type EventType string

const (
	EventEntry  EventType = "ENTRY"
	EventParked EventType = "PARKED"
	EventExit   EventType = "EXIT"
)

// EntryEvent автомобиль въехал в гараж
type EntryEvent struct {
	LicensePlate string
	EntryTime    time.Time
}

func (e EntryEvent) Plate() string   { return e.LicensePlate }
func (e EntryEvent) Type() EventType { return EventEntry }
func (e EntryEvent) isEvent()        {}

// ParkedEvent автомобиль припарковался на координатах
type ParkedEvent struct {
	LicensePlate string
	Lat          float64
	Lng          float64
}

func (e ParkedEvent) Plate() string   { return e.LicensePlate }
func (e ParkedEvent) Type() EventType { return EventParked }
func (e ParkedEvent) isEvent()        {}

// ExitEvent автомобиль покинул гараж
type ExitEvent struct {
	LicensePlate string
	ExitTime     time.Time
}

func (e ExitEvent) Plate() string   { return e.LicensePlate }
func (e ExitEvent) Type() EventType { return EventExit }
func (e ExitEvent) isEvent()        {}
