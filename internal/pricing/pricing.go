package pricing

import (
	"math"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// Пороги загруженности сектора и соответствующие множители к базовой цене.
// Первый подходящий верхний порог выигрывает; загруженность >= 0.75 - максимальный тариф.
const (
	lowOccupancy    = 0.25
	mediumOccupancy = 0.50
	highOccupancy   = 0.75

	lowMultiplier     = 0.90
	normalMultiplier  = 1.00
	highMultiplier    = 1.10
	premiumMultiplier = 1.25
)

// DynamicPrice вычисляет почасовую ставку по базовой цене сектора
// и его загруженности на момент назначения места
//
// Ступени:
//   - < 25% занято  → скидка 10%
//   - < 50% занято  → базовая цена
//   - < 75% занято  → надбавка 10%
//   - >= 75% занято → надбавка 25%
func DynamicPrice(basePrice, occupancyRate float64) float64 {
	var multiplier float64

	switch {
	case occupancyRate < lowOccupancy:
		multiplier = lowMultiplier
	case occupancyRate < mediumOccupancy:
		multiplier = normalMultiplier
	case occupancyRate < highOccupancy:
		multiplier = highMultiplier
	default:
		multiplier = premiumMultiplier
	}

	return roundPrice(basePrice * multiplier)
}

// Fee вычисляет итоговую стоимость стоянки
// Первые domain.GraceMinutes минут бесплатны; дальше тарифицируются полные часы
// с округлением вверх: 31 минута - 1 час, 90 минут - 1 час, 91 минута - 2 часа
func Fee(duration time.Duration, appliedBasePrice float64) float64 {
	minutes := duration.Minutes()
	if minutes <= domain.GraceMinutes {
		return 0
	}

	chargeableMinutes := minutes - domain.GraceMinutes
	hours := math.Ceil(chargeableMinutes / 60)

	return roundPrice(hours * appliedBasePrice)
}

// roundPrice округляет сумму до 2 знаков (точность хранения валюты)
func roundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}
