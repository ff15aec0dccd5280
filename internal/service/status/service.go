package status

import (
	"context"
	"errors"
	"fmt"

	sessionRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/session"
	spotRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-GarageService/internal/pricing"
	"github.com/m04kA/SMC-GarageService/internal/service/status/models"
)

// Service сервис статусных запросов по номеру и по месту
// Только чтение; текущая стоимость считается тем же тарифным движком, что и на EXIT
type Service struct {
	sessionRepo  SessionRepository
	spotRepo     SpotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр статусного сервиса
func NewService(sessionRepo SessionRepository, spotRepo SpotRepository, logger Logger) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		spotRepo:     spotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetPlateStatus возвращает статус активной сессии по госномеру
func (s *Service) GetPlateStatus(ctx context.Context, licensePlate string) (*models.PlateStatusResponse, error) {
	if licensePlate == "" {
		s.logger.Warn("GetPlateStatus: empty license plate")
		return nil, fmt.Errorf("%w: license plate is required", ErrInvalidInput)
	}

	session, err := s.sessionRepo.GetActiveByPlate(ctx, licensePlate)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetPlateStatus: no active session for plate=%s", licensePlate)
			return nil, ErrNoActiveSession
		}
		s.logger.Error("GetPlateStatus: repository error for plate=%s: %v", licensePlate, err)
		return nil, fmt.Errorf("%w: GetPlateStatus - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	timeParked := session.Duration(now)

	s.logger.Info("GetPlateStatus: plate=%s, parked for %s", licensePlate, timeParked)

	return &models.PlateStatusResponse{
		LicensePlate:  session.LicensePlate,
		EntryTime:     session.EntryTime,
		TimeParked:    timeParked,
		PriceUntilNow: pricing.Fee(timeParked, session.AppliedBasePrice),
		Lat:           session.Lat,
		Lng:           session.Lng,
	}, nil
}

// GetSpotStatus возвращает статус места по координатам
// Для занятого места дополнительно возвращаются данные занимающей сессии
func (s *Service) GetSpotStatus(ctx context.Context, lat, lng float64) (*models.SpotStatusResponse, error) {
	spot, err := s.spotRepo.FindNear(ctx, lat, lng)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			s.logger.Warn("GetSpotStatus: no spot near lat=%f, lng=%f", lat, lng)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("GetSpotStatus: repository error for lat=%f, lng=%f: %v", lat, lng, err)
		return nil, fmt.Errorf("%w: GetSpotStatus - repository error: %v", ErrInternal, err)
	}

	resp := &models.SpotStatusResponse{
		SpotID:   spot.ID,
		Occupied: spot.Occupied,
	}

	if !spot.Occupied {
		s.logger.Info("GetSpotStatus: spot=%s is free", spot.ID)
		return resp, nil
	}

	session, err := s.sessionRepo.GetActiveBySpot(ctx, spot.ID)
	if err != nil {
		// Занятое место без активной сессии - рассинхронизация данных
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Error("GetSpotStatus: spot=%s marked occupied but has no active session", spot.ID)
			return resp, nil
		}
		s.logger.Error("GetSpotStatus: repository error for spot=%s: %v", spot.ID, err)
		return nil, fmt.Errorf("%w: GetSpotStatus - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	timeParked := session.Duration(now)
	priceUntilNow := pricing.Fee(timeParked, session.AppliedBasePrice)

	resp.LicensePlate = &session.LicensePlate
	resp.EntryTime = &session.EntryTime
	resp.TimeParked = &timeParked
	resp.PriceUntilNow = &priceUntilNow

	s.logger.Info("GetSpotStatus: spot=%s occupied by plate=%s", spot.ID, session.LicensePlate)
	return resp, nil
}
