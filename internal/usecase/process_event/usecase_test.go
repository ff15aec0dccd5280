package process_event

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/session"
	spotRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/spot"
)

// memStore in-memory реализация всех трех репозиториев для тестов use case
// Повторяет семантику postgres репозиториев: ошибки "не найдено",
// уникальность активной сессии, детерминированный порядок мест по id
type memStore struct {
	sessions []*domain.Session
	spots    map[string]*domain.Spot
	sectors  map[string]*domain.Sector

	nextID    int64
	createErr error
	assignErr error
}

func newMemStore() *memStore {
	return &memStore{
		spots:   make(map[string]*domain.Spot),
		sectors: make(map[string]*domain.Sector),
	}
}

func (m *memStore) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.sessions {
		if existing.LicensePlate == s.LicensePlate && existing.IsActive() {
			return nil, sessionRepo.ErrDuplicateActiveSession
		}
	}
	m.nextID++
	s.ID = m.nextID
	m.sessions = append(m.sessions, s)
	return s, nil
}

func (m *memStore) GetActiveByPlate(_ context.Context, plate string) (*domain.Session, error) {
	for _, s := range m.sessions {
		if s.LicensePlate == plate && s.IsActive() {
			return s, nil
		}
	}
	return nil, sessionRepo.ErrSessionNotFound
}

func (m *memStore) AssignSpot(_ context.Context, id int64, sectorName, spotID string, lat, lng, appliedBasePrice float64) error {
	if m.assignErr != nil {
		return m.assignErr
	}
	for _, s := range m.sessions {
		if s.ID == id && s.IsActive() {
			s.SectorName = &sectorName
			s.SpotID = &spotID
			s.Lat = &lat
			s.Lng = &lng
			s.AppliedBasePrice = appliedBasePrice
			return nil
		}
	}
	return sessionRepo.ErrSessionNotFound
}

func (m *memStore) Close(_ context.Context, id int64, exitTime time.Time, finalPrice float64) error {
	for _, s := range m.sessions {
		if s.ID == id && s.IsActive() {
			s.ExitTime = &exitTime
			s.FinalPrice = &finalPrice
			return nil
		}
	}
	return sessionRepo.ErrSessionNotFound
}

func (m *memStore) FindAvailableNear(_ context.Context, lat, lng float64) (*domain.Spot, error) {
	ids := make([]string, 0, len(m.spots))
	for id := range m.spots {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		sp := m.spots[id]
		if !sp.Occupied && sp.Matches(lat, lng) {
			return sp, nil
		}
	}
	return nil, spotRepo.ErrSpotNotFound
}

func (m *memStore) CountOccupiedBySector(_ context.Context, sectorName string) (int, error) {
	count := 0
	for _, sp := range m.spots {
		if sp.SectorName == sectorName && sp.Occupied {
			count++
		}
	}
	return count, nil
}

func (m *memStore) SetOccupied(_ context.Context, id string, occupied bool) error {
	sp, ok := m.spots[id]
	if !ok {
		return spotRepo.ErrSpotNotFound
	}
	sp.Occupied = occupied
	return nil
}

func (m *memStore) GetByName(_ context.Context, name string) (*domain.Sector, error) {
	sector, ok := m.sectors[name]
	if !ok {
		return nil, fmt.Errorf("sector %s not found", name)
	}
	return sector, nil
}

func (m *memStore) addSector(name string, basePrice float64, maxCapacity int) {
	m.sectors[name] = &domain.Sector{Name: name, BasePrice: basePrice, MaxCapacity: maxCapacity}
}

func (m *memStore) addSpot(id, sector string, lat, lng float64, occupied bool) {
	m.spots[id] = &domain.Spot{ID: id, SectorName: sector, Lat: lat, Lng: lng, Occupied: occupied}
}

// passthroughTxManager выполняет fn без транзакции - целостность проверяется на memStore
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(store *memStore) *UseCase {
	return NewUseCase(store, store, store, passthroughTxManager{}, nopLogger{})
}

func entryAt(plate string, t time.Time) domain.EntryEvent {
	return domain.EntryEvent{LicensePlate: plate, EntryTime: t}
}

var baseTime = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func TestEntry_CreatesActiveSession(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	err := uc.Execute(context.Background(), entryAt("ZUL0001", baseTime))
	require.NoError(t, err)

	session, err := store.GetActiveByPlate(context.Background(), "ZUL0001")
	require.NoError(t, err)
	assert.Equal(t, baseTime, session.EntryTime)
	assert.Zero(t, session.AppliedBasePrice, "price must stay 0 until a spot is assigned")
	assert.False(t, session.IsParked())
}

func TestEntry_DuplicateRejected(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))

	err := uc.Execute(context.Background(), entryAt("ZUL0001", baseTime.Add(5*time.Minute)))
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Len(t, store.sessions, 1, "duplicate entry must not create a second session")
}

func TestEntry_MissingTimestampRejected(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	err := uc.Execute(context.Background(), domain.EntryEvent{LicensePlate: "ZUL0001"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.sessions)
}

func TestEntry_StoreFailureReportedAsInternal(t *testing.T) {
	store := newMemStore()
	store.createErr = assert.AnError
	uc := newTestUseCase(store)

	err := uc.Execute(context.Background(), entryAt("ZUL0001", baseTime))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestParked_AssignsSpotAndLocksPrice(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", -23.561684, -46.655981, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))

	err := uc.Execute(context.Background(), domain.ParkedEvent{
		LicensePlate: "ZUL0001",
		Lat:          -23.561684,
		Lng:          -46.655981,
	})
	require.NoError(t, err)

	session, err := store.GetActiveByPlate(context.Background(), "ZUL0001")
	require.NoError(t, err)
	require.True(t, session.IsParked())

	// 0% загруженности - скидка 10% от базовой цены 10.00
	assert.InDelta(t, 9.00, session.AppliedBasePrice, 0.001)
	assert.Equal(t, "A-1", *session.SpotID)
	assert.Equal(t, "A", *session.SectorName)

	// Место и сессия обновляются вместе
	assert.True(t, store.spots["A-1"].Occupied)
}

func TestParked_SixtyPercentOccupancyAddsMarkup(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	for i := 0; i < 6; i++ {
		store.addSpot(string(rune('a'+i)), "A", 10.0+float64(i), 10.0, true)
	}
	store.addSpot("A-7", "A", -23.561684, -46.655981, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))
	require.NoError(t, uc.Execute(context.Background(), domain.ParkedEvent{
		LicensePlate: "ZUL0001",
		Lat:          -23.561684,
		Lng:          -46.655981,
	}))

	session, err := store.GetActiveByPlate(context.Background(), "ZUL0001")
	require.NoError(t, err)

	// 6/10 занято - надбавка 10%
	assert.InDelta(t, 11.00, session.AppliedBasePrice, 0.001)
}

func TestParked_WithoutEntryRejected(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", 1.0, 1.0, false)
	uc := newTestUseCase(store)

	err := uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 1.0, Lng: 1.0})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.False(t, store.spots["A-1"].Occupied)
}

func TestParked_NoSpotWithinToleranceRejected(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", 10.0, 10.0, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))

	// Смещение ровно на допуск - строгое неравенство не пропускает
	err := uc.Execute(context.Background(), domain.ParkedEvent{
		LicensePlate: "ZUL0001",
		Lat:          10.0 + domain.GPSTolerance,
		Lng:          10.0,
	})
	assert.ErrorIs(t, err, ErrNoSpotAvailable)

	session, getErr := store.GetActiveByPlate(context.Background(), "ZUL0001")
	require.NoError(t, getErr)
	assert.False(t, session.IsParked(), "failed assignment must not mutate the session")
}

func TestParked_OccupiedSpotNotMatched(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", 10.0, 10.0, true)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))

	err := uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 10.0, Lng: 10.0})
	assert.ErrorIs(t, err, ErrNoSpotAvailable)
}

func TestParked_SectorAtCapacityRejected(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 1)
	store.addSpot("A-1", "A", 10.0, 10.0, true)
	store.addSpot("A-2", "A", 20.0, 20.0, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))

	err := uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 20.0, Lng: 20.0})
	assert.ErrorIs(t, err, ErrSectorFull)

	// Ни место, ни сессия не изменились
	assert.False(t, store.spots["A-2"].Occupied)
	session, getErr := store.GetActiveByPlate(context.Background(), "ZUL0001")
	require.NoError(t, getErr)
	assert.False(t, session.IsParked())
}

func TestParked_SecondParkedRejected(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", 10.0, 10.0, false)
	store.addSpot("A-2", "A", 20.0, 20.0, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))
	require.NoError(t, uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 10.0, Lng: 10.0}))

	err := uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 20.0, Lng: 20.0})
	assert.ErrorIs(t, err, ErrAlreadyParked)
	assert.False(t, store.spots["A-2"].Occupied)
}

func TestExit_ClosesSessionAndFreesSpot(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", 10.0, 10.0, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))
	require.NoError(t, uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 10.0, Lng: 10.0}))

	// 150 минут стоянки: 120 тарифицируемых - 2 часа по зафиксированной ставке 9.00
	exitTime := baseTime.Add(150 * time.Minute)
	require.NoError(t, uc.Execute(context.Background(), domain.ExitEvent{LicensePlate: "ZUL0001", ExitTime: exitTime}))

	require.Len(t, store.sessions, 1)
	session := store.sessions[0]
	require.NotNil(t, session.ExitTime)
	require.NotNil(t, session.FinalPrice)
	assert.Equal(t, exitTime, *session.ExitTime)
	assert.InDelta(t, 18.00, *session.FinalPrice, 0.001)

	// Место освобождено вместе с закрытием сессии
	assert.False(t, store.spots["A-1"].Occupied)
}

func TestExit_WithinGracePeriodIsFree(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", 10.0, 10.0, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))
	require.NoError(t, uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 10.0, Lng: 10.0}))
	require.NoError(t, uc.Execute(context.Background(), domain.ExitEvent{
		LicensePlate: "ZUL0001",
		ExitTime:     baseTime.Add(25 * time.Minute),
	}))

	session := store.sessions[0]
	require.NotNil(t, session.FinalPrice)
	assert.Zero(t, *session.FinalPrice)
}

func TestExit_WithoutSpotAssignedIsFree(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))
	require.NoError(t, uc.Execute(context.Background(), domain.ExitEvent{
		LicensePlate: "ZUL0001",
		ExitTime:     baseTime.Add(3 * time.Hour),
	}))

	// Ставка так и осталась нулевой - платить не за что
	session := store.sessions[0]
	require.NotNil(t, session.FinalPrice)
	assert.Zero(t, *session.FinalPrice)
}

func TestExit_WithoutEntryRejected(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	err := uc.Execute(context.Background(), domain.ExitEvent{LicensePlate: "ZUL0001", ExitTime: baseTime})
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestExit_MissingTimestampRejected(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))

	err := uc.Execute(context.Background(), domain.ExitEvent{LicensePlate: "ZUL0001"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, store.sessions[0].IsActive(), "failed exit must not close the session")
}

// Полный жизненный цикл: после выезда номер может въехать снова
func TestLifecycle_ReentryAfterExit(t *testing.T) {
	store := newMemStore()
	store.addSector("A", 10.00, 10)
	store.addSpot("A-1", "A", 10.0, 10.0, false)
	uc := newTestUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime)))
	require.NoError(t, uc.Execute(context.Background(), domain.ParkedEvent{LicensePlate: "ZUL0001", Lat: 10.0, Lng: 10.0}))
	require.NoError(t, uc.Execute(context.Background(), domain.ExitEvent{
		LicensePlate: "ZUL0001",
		ExitTime:     baseTime.Add(time.Hour),
	}))

	// Сессии append-only: закрытая остается, новая создается
	require.NoError(t, uc.Execute(context.Background(), entryAt("ZUL0001", baseTime.Add(2*time.Hour))))
	assert.Len(t, store.sessions, 2)
	assert.False(t, store.sessions[0].IsActive())
	assert.True(t, store.sessions[1].IsActive())
}
