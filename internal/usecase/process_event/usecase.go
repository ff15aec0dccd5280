package process_event

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/session"
	spotRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-GarageService/internal/pricing"
)

// UseCase use case обработки событий жизненного цикла автомобиля
// Каждое событие обрабатывается в сериализуемой транзакции: проверки инвариантов
// (одна активная сессия на номер, одно место на сессию) и запись идут атомарно
type UseCase struct {
	sessionRepo SessionRepository
	spotRepo    SpotRepository
	sectorRepo  SectorRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	spotRepo SpotRepository,
	sectorRepo SectorRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		spotRepo:    spotRepo,
		sectorRepo:  sectorRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute обрабатывает одно событие
// Все отказы возвращаются типизированными ошибками; наружу ничего не паникует -
// транспортный слой обязан подтвердить прием любого события
func (uc *UseCase) Execute(ctx context.Context, event domain.Event) error {
	switch e := event.(type) {
	case domain.EntryEvent:
		return uc.handleEntry(ctx, e)
	case domain.ParkedEvent:
		return uc.handleParked(ctx, e)
	case domain.ExitEvent:
		return uc.handleExit(ctx, e)
	default:
		uc.logger.Warn("ProcessEvent: unknown event type %T", event)
		return ErrUnknownEvent
	}
}

// handleEntry создает новую активную сессию для госномера
func (uc *UseCase) handleEntry(ctx context.Context, event domain.EntryEvent) error {
	uc.logger.Info("ProcessEvent: ENTRY plate=%s, entry_time=%s", event.LicensePlate, event.EntryTime)

	if err := validateEntry(event); err != nil {
		uc.logger.Warn("ProcessEvent: ENTRY validation failed for plate=%s: %v", event.LicensePlate, err)
		return err
	}

	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Проверяем, что активной сессии для номера еще нет
		_, err := uc.sessionRepo.GetActiveByPlate(txCtx, event.LicensePlate)
		if err == nil {
			uc.logger.Warn("ProcessEvent: ENTRY rejected, active session exists for plate=%s", event.LicensePlate)
			return ErrDuplicateEntry
		}
		if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Error("ProcessEvent: ENTRY failed to check active session for plate=%s: %v", event.LicensePlate, err)
			return fmt.Errorf("%w: failed to check active session: %v", ErrInternal, err)
		}

		// 2. Создаем сессию; ставка нулевая до назначения места
		session := &domain.Session{
			LicensePlate:     event.LicensePlate,
			EntryTime:        event.EntryTime,
			AppliedBasePrice: 0,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			// Конкурентный ENTRY мог успеть раньше - уникальный индекс страхует проверку выше
			if errors.Is(err, sessionRepo.ErrDuplicateActiveSession) {
				uc.logger.Warn("ProcessEvent: ENTRY rejected by unique index for plate=%s", event.LicensePlate)
				return ErrDuplicateEntry
			}
			uc.logger.Error("ProcessEvent: ENTRY failed to create session for plate=%s: %v", event.LicensePlate, err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		uc.logger.Info("ProcessEvent: ENTRY created session id=%d for plate=%s", created.ID, event.LicensePlate)
		return nil
	})
}

// handleParked назначает сессии место и фиксирует ставку по текущей загруженности сектора
func (uc *UseCase) handleParked(ctx context.Context, event domain.ParkedEvent) error {
	uc.logger.Info("ProcessEvent: PARKED plate=%s, lat=%f, lng=%f", event.LicensePlate, event.Lat, event.Lng)

	if err := validateParked(event); err != nil {
		uc.logger.Warn("ProcessEvent: PARKED validation failed for plate=%s: %v", event.LicensePlate, err)
		return err
	}

	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Ищем активную сессию номера
		session, err := uc.sessionRepo.GetActiveByPlate(txCtx, event.LicensePlate)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("ProcessEvent: PARKED rejected, no active session for plate=%s", event.LicensePlate)
				return ErrNoActiveSession
			}
			uc.logger.Error("ProcessEvent: PARKED failed to get active session for plate=%s: %v", event.LicensePlate, err)
			return fmt.Errorf("%w: failed to get active session: %v", ErrInternal, err)
		}

		// Ставка фиксируется один раз - повторную парковку отклоняем
		if session.IsParked() {
			uc.logger.Warn("ProcessEvent: PARKED rejected, session id=%d already parked at spot=%s", session.ID, *session.SpotID)
			return ErrAlreadyParked
		}

		// 2. Ищем свободное место в пределах GPS допуска (с блокировкой строки)
		spot, err := uc.spotRepo.FindAvailableNear(txCtx, event.Lat, event.Lng)
		if err != nil {
			if errors.Is(err, spotRepo.ErrSpotNotFound) {
				uc.logger.Warn("ProcessEvent: PARKED rejected, no spot near lat=%f, lng=%f for plate=%s",
					event.Lat, event.Lng, event.LicensePlate)
				return ErrNoSpotAvailable
			}
			uc.logger.Error("ProcessEvent: PARKED failed to find spot for plate=%s: %v", event.LicensePlate, err)
			return fmt.Errorf("%w: failed to find spot: %v", ErrInternal, err)
		}

		// 3. Находим сектор места и считаем загруженность ДО этого назначения
		sector, err := uc.sectorRepo.GetByName(txCtx, spot.SectorName)
		if err != nil {
			uc.logger.Error("ProcessEvent: PARKED failed to get sector=%s for plate=%s: %v",
				spot.SectorName, event.LicensePlate, err)
			return fmt.Errorf("%w: failed to get sector: %v", ErrInternal, err)
		}

		occupiedCount, err := uc.spotRepo.CountOccupiedBySector(txCtx, sector.Name)
		if err != nil {
			uc.logger.Error("ProcessEvent: PARKED failed to count occupancy in sector=%s: %v", sector.Name, err)
			return fmt.Errorf("%w: failed to count occupied spots: %v", ErrInternal, err)
		}

		if sector.IsFull(occupiedCount) {
			uc.logger.Warn("ProcessEvent: PARKED rejected, sector=%s full (%d/%d)",
				sector.Name, occupiedCount, sector.MaxCapacity)
			return ErrSectorFull
		}

		// 4. Фиксируем ставку по загруженности на момент назначения
		appliedBasePrice := pricing.DynamicPrice(sector.BasePrice, sector.OccupancyRate(occupiedCount))

		// 5. Записываем место на сессию и помечаем его занятым - атомарно, в одной транзакции
		if err := uc.sessionRepo.AssignSpot(txCtx, session.ID, sector.Name, spot.ID, spot.Lat, spot.Lng, appliedBasePrice); err != nil {
			uc.logger.Error("ProcessEvent: PARKED failed to assign spot=%s to session id=%d: %v", spot.ID, session.ID, err)
			return fmt.Errorf("%w: failed to assign spot: %v", ErrInternal, err)
		}

		if err := uc.spotRepo.SetOccupied(txCtx, spot.ID, true); err != nil {
			uc.logger.Error("ProcessEvent: PARKED failed to mark spot=%s occupied: %v", spot.ID, err)
			return fmt.Errorf("%w: failed to mark spot occupied: %v", ErrInternal, err)
		}

		uc.logger.Info("ProcessEvent: PARKED assigned spot=%s (sector=%s) to plate=%s, applied_price=%.2f (occupancy %d/%d)",
			spot.ID, sector.Name, event.LicensePlate, appliedBasePrice, occupiedCount, sector.MaxCapacity)
		return nil
	})
}

// handleExit закрывает сессию, выставляет итоговую стоимость и освобождает место
func (uc *UseCase) handleExit(ctx context.Context, event domain.ExitEvent) error {
	uc.logger.Info("ProcessEvent: EXIT plate=%s, exit_time=%s", event.LicensePlate, event.ExitTime)

	if err := validateExit(event); err != nil {
		uc.logger.Warn("ProcessEvent: EXIT validation failed for plate=%s: %v", event.LicensePlate, err)
		return err
	}

	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Ищем активную сессию номера
		session, err := uc.sessionRepo.GetActiveByPlate(txCtx, event.LicensePlate)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("ProcessEvent: EXIT rejected, no active session for plate=%s", event.LicensePlate)
				return ErrNoActiveSession
			}
			uc.logger.Error("ProcessEvent: EXIT failed to get active session for plate=%s: %v", event.LicensePlate, err)
			return fmt.Errorf("%w: failed to get active session: %v", ErrInternal, err)
		}

		// 2. Считаем стоимость по зафиксированной ставке
		// Для сессии без назначенного места ставка нулевая - стоянка бесплатна
		finalPrice := pricing.Fee(session.Duration(event.ExitTime), session.AppliedBasePrice)

		// 3. Закрываем сессию и освобождаем место - атомарно, в одной транзакции
		if err := uc.sessionRepo.Close(txCtx, session.ID, event.ExitTime, finalPrice); err != nil {
			uc.logger.Error("ProcessEvent: EXIT failed to close session id=%d: %v", session.ID, err)
			return fmt.Errorf("%w: failed to close session: %v", ErrInternal, err)
		}

		if session.IsParked() {
			if err := uc.spotRepo.SetOccupied(txCtx, *session.SpotID, false); err != nil {
				uc.logger.Error("ProcessEvent: EXIT failed to free spot=%s: %v", *session.SpotID, err)
				return fmt.Errorf("%w: failed to free spot: %v", ErrInternal, err)
			}
		}

		uc.logger.Info("ProcessEvent: EXIT closed session id=%d for plate=%s, final_price=%.2f",
			session.ID, event.LicensePlate, finalPrice)
		return nil
	})
}
