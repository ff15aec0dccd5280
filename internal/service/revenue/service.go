package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/service/revenue/models"
)

// Service сервис подсчета выручки по закрытым сессиям
// Только чтение, состояние не мутирует
type Service struct {
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса выручки
func NewService(sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// GetRevenue возвращает сумму final_price закрытых сессий сектора
// за календарный день UTC [00:00, 24:00). Открытые сессии не учитываются.
// Отсутствие подходящих сессий - это выручка 0, а не ошибка
func (s *Service) GetRevenue(ctx context.Context, req *models.GetRevenueRequest) (*models.RevenueResponse, error) {
	if req.Sector == "" {
		s.logger.Warn("GetRevenue: empty sector name")
		return nil, fmt.Errorf("%w: sector is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		s.logger.Warn("GetRevenue: empty date for sector=%s", req.Sector)
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Границы дня считаем в UTC независимо от зоны входной даты
	year, month, day := req.Date.UTC().Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	amount, err := s.sessionRepo.SumFinalPriceBySectorAndPeriod(ctx, req.Sector, from, to)
	if err != nil {
		s.logger.Error("GetRevenue: repository error for sector=%s, date=%s: %v",
			req.Sector, from.Format("2006-01-02"), err)
		return nil, fmt.Errorf("%w: GetRevenue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRevenue: sector=%s, date=%s, amount=%.2f", req.Sector, from.Format("2006-01-02"), amount)

	return &models.RevenueResponse{
		Sector: req.Sector,
		Date:   from,
		Amount: amount,
	}, nil
}
