package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDynamicPrice(t *testing.T) {
	tests := []struct {
		name          string
		basePrice     float64
		occupancyRate float64
		want          float64
	}{
		{"empty sector gets discount", 10.00, 0.0, 9.00},
		{"just below low threshold", 10.00, 0.24, 9.00},
		{"low threshold switches to base price", 10.00, 0.25, 10.00},
		{"just below medium threshold", 10.00, 0.49, 10.00},
		{"medium threshold adds 10 percent", 10.00, 0.50, 11.00},
		{"60 percent occupancy adds 10 percent", 10.00, 0.60, 11.00},
		{"just below high threshold", 10.00, 0.74, 11.00},
		{"high threshold adds 25 percent", 10.00, 0.75, 12.50},
		{"full sector adds 25 percent", 10.00, 1.0, 12.50},
		{"rounds to 2 decimals", 3.33, 0.60, 3.66},
		{"zero base price", 0.00, 0.80, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DynamicPrice(tt.basePrice, tt.occupancyRate)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

// Множитель должен расти ступенчато: на каждой границе цена строго увеличивается
func TestDynamicPrice_StrictlyIncreasingAcrossTiers(t *testing.T) {
	rates := []float64{0.0, 0.25, 0.50, 0.75}

	prev := -1.0
	for _, rate := range rates {
		price := DynamicPrice(10.00, rate)
		assert.Greater(t, price, prev, "price at rate %.2f must exceed previous tier", rate)
		prev = price
	}
}

func TestFee(t *testing.T) {
	tests := []struct {
		name      string
		duration  time.Duration
		basePrice float64
		want      float64
	}{
		{"zero duration is free", 0, 10.00, 0.00},
		{"25 minutes within grace period", 25 * time.Minute, 10.00, 0.00},
		{"exactly 30 minutes is free", 30 * time.Minute, 10.00, 0.00},
		{"31 minutes bills one hour", 31 * time.Minute, 10.00, 10.00},
		{"60 minutes bills one hour", 60 * time.Minute, 10.00, 10.00},
		{"90 minutes bills one hour", 90 * time.Minute, 10.00, 10.00},
		{"91 minutes bills two hours", 91 * time.Minute, 10.00, 20.00},
		{"150 minutes bills two hours", 150 * time.Minute, 9.00, 18.00},
		{"151 minutes bills three hours", 151 * time.Minute, 9.00, 27.00},
		{"zero applied price", 3 * time.Hour, 0.00, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fee(tt.duration, tt.basePrice)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

// Стоимость не убывает с ростом длительности и растет только на часовых границах
func TestFee_MonotonicInDuration(t *testing.T) {
	prev := 0.0
	for minutes := 0; minutes <= 240; minutes += 10 {
		fee := Fee(time.Duration(minutes)*time.Minute, 10.00)
		assert.GreaterOrEqual(t, fee, prev, "fee at %d minutes dropped below fee at previous step", minutes)
		prev = fee
	}
}
