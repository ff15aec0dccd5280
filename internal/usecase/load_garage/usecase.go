package load_garage

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// UseCase use case разовой загрузки топологии гаража при старте сервиса
// Сервис не принимает события, пока топология не загружена
type UseCase struct {
	garageClient GarageServiceClient
	sectorRepo   SectorRepository
	spotRepo     SpotRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	garageClient GarageServiceClient,
	sectorRepo SectorRepository,
	spotRepo SpotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		garageClient: garageClient,
		sectorRepo:   sectorRepo,
		spotRepo:     spotRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute загружает топологию у провайдера и сохраняет её одной транзакцией
// Повторный запуск против уже загруженной базы - no-op: upsert не трогает
// существующие секторы и занятость мест
func (uc *UseCase) Execute(ctx context.Context) error {
	uc.logger.Info("LoadGarage: fetching garage layout")

	layout, err := uc.garageClient.GetGarage(ctx)
	if err != nil {
		uc.logger.Error("LoadGarage: failed to fetch layout: %v", err)
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// Проверяем ссылочную целостность до записи
	if err := validateLayout(layout.Garage, layout.Spots); err != nil {
		uc.logger.Error("LoadGarage: layout validation failed: %v", err)
		return err
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, sc := range layout.Garage {
			sector := &domain.Sector{
				Name:        sc.Sector,
				BasePrice:   sc.BasePrice,
				MaxCapacity: sc.MaxCapacity,
			}
			if err := uc.sectorRepo.Upsert(txCtx, sector); err != nil {
				return fmt.Errorf("%w: failed to upsert sector %s: %v", ErrInternal, sc.Sector, err)
			}
		}

		for _, sp := range layout.Spots {
			spot := &domain.Spot{
				ID:         sp.ID,
				SectorName: sp.Sector,
				Lat:        sp.Lat,
				Lng:        sp.Lng,
				Occupied:   false,
			}
			if err := uc.spotRepo.Upsert(txCtx, spot); err != nil {
				return fmt.Errorf("%w: failed to upsert spot %s: %v", ErrInternal, sp.ID, err)
			}
		}

		return nil
	})

	if err != nil {
		uc.logger.Error("LoadGarage: failed to persist layout: %v", err)
		return err
	}

	uc.logger.Info("LoadGarage: loaded %d sectors and %d spots", len(layout.Garage), len(layout.Spots))
	return nil
}
