package garageservice

// GarageLayout ответ провайдера топологии гаража
type GarageLayout struct {
	Garage []SectorConfig `json:"garage"`
	Spots  []SpotConfig   `json:"spots"`
}

// SectorConfig конфигурация сектора
type SectorConfig struct {
	Sector      string  `json:"sector"`
	BasePrice   float64 `json:"base_price"`
	MaxCapacity int     `json:"max_capacity"`
}

// SpotConfig конфигурация парковочного места
type SpotConfig struct {
	ID     string  `json:"id"`
	Sector string  `json:"sector"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}
