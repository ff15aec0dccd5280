package load_garage

import (
	"fmt"

	"github.com/m04kA/SMC-GarageService/internal/integrations/garageservice"
)

// validateLayout проверяет топологию перед записью:
// уникальность имен секторов и id мест, ссылочную целостность место → сектор
func validateLayout(sectors []garageservice.SectorConfig, spots []garageservice.SpotConfig) error {
	sectorNames := make(map[string]struct{}, len(sectors))
	for _, sc := range sectors {
		if sc.Sector == "" {
			return fmt.Errorf("%w: sector with empty name", ErrInvalidLayout)
		}
		if sc.MaxCapacity < 0 {
			return fmt.Errorf("%w: sector %s has negative capacity", ErrInvalidLayout, sc.Sector)
		}
		if _, ok := sectorNames[sc.Sector]; ok {
			return fmt.Errorf("%w: duplicate sector name %s", ErrInvalidLayout, sc.Sector)
		}
		sectorNames[sc.Sector] = struct{}{}
	}

	spotIDs := make(map[string]struct{}, len(spots))
	for _, sp := range spots {
		if sp.ID == "" {
			return fmt.Errorf("%w: spot with empty id", ErrInvalidLayout)
		}
		if _, ok := spotIDs[sp.ID]; ok {
			return fmt.Errorf("%w: duplicate spot id %s", ErrInvalidLayout, sp.ID)
		}
		spotIDs[sp.ID] = struct{}{}

		if _, ok := sectorNames[sp.Sector]; !ok {
			return fmt.Errorf("%w: spot %s references unknown sector %s", ErrInvalidLayout, sp.ID, sp.Sector)
		}
	}

	return nil
}
