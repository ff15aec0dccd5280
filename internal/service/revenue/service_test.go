package revenue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GarageService/internal/service/revenue/models"
)

type fakeSessionRepo struct {
	amount float64
	err    error

	gotSector string
	gotFrom   time.Time
	gotTo     time.Time
}

func (f *fakeSessionRepo) SumFinalPriceBySectorAndPeriod(_ context.Context, sectorName string, from, to time.Time) (float64, error) {
	f.gotSector = sectorName
	f.gotFrom = from
	f.gotTo = to
	return f.amount, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetRevenue_Success(t *testing.T) {
	repo := &fakeSessionRepo{amount: 54.30}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetRevenue(context.Background(), &models.GetRevenueRequest{
		Sector: "A",
		Date:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "A", resp.Sector)
	assert.InDelta(t, 54.30, resp.Amount, 0.001)
	assert.Equal(t, "A", repo.gotSector)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), repo.gotFrom)
	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), repo.gotTo)
}

// Границы дня считаются в UTC даже для даты в другой зоне
func TestGetRevenue_DayBoundsInUTC(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := NewService(repo, nopLogger{})

	msk := time.FixedZone("MSK", 3*60*60)
	_, err := svc.GetRevenue(context.Background(), &models.GetRevenueRequest{
		Sector: "A",
		Date:   time.Date(2025, 1, 15, 1, 30, 0, 0, msk), // 2025-01-14 22:30 UTC
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), repo.gotFrom)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), repo.gotTo)
}

func TestGetRevenue_NoSessionsIsZeroNotError(t *testing.T) {
	repo := &fakeSessionRepo{amount: 0}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetRevenue(context.Background(), &models.GetRevenueRequest{
		Sector: "B",
		Date:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Amount)
}

func TestGetRevenue_EmptySectorRejected(t *testing.T) {
	svc := NewService(&fakeSessionRepo{}, nopLogger{})

	_, err := svc.GetRevenue(context.Background(), &models.GetRevenueRequest{
		Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRevenue_MissingDateRejected(t *testing.T) {
	svc := NewService(&fakeSessionRepo{}, nopLogger{})

	_, err := svc.GetRevenue(context.Background(), &models.GetRevenueRequest{Sector: "A"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Ошибка хранилища не маскируется нулевой выручкой
func TestGetRevenue_RepositoryErrorPropagated(t *testing.T) {
	repo := &fakeSessionRepo{err: assert.AnError}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetRevenue(context.Background(), &models.GetRevenueRequest{
		Sector: "A",
		Date:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
}
