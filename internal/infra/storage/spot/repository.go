package spot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-GarageService/internal/domain"
	"github.com/m04kA/SMC-GarageService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GarageService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с парковочными местами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет место, если оно еще не загружено
// Флаг occupied при конфликте не трогаем: рестарт сервиса не сбрасывает занятость
func (r *Repository) Upsert(ctx context.Context, spot *domain.Spot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("spots").
		Columns("id", "sector_name", "lat", "lng", "occupied").
		Values(spot.ID, spot.SectorName, spot.Lat, spot.Lng, spot.Occupied).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// FindAvailableNear ищет свободное место в пределах GPS допуска от координат
// Кандидаты упорядочены по id, берется первый - детерминированный tie-break
// В транзакции строка блокируется (FOR UPDATE), чтобы два события PARKED
// не заняли одно место одновременно
func (r *Repository) FindAvailableNear(ctx context.Context, lat, lng float64) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "sector_name", "lat", "lng", "occupied").
		From("spots").
		Where(squirrel.Eq{"occupied": false}).
		Where(squirrel.Gt{"lat": lat - domain.GPSTolerance}).
		Where(squirrel.Lt{"lat": lat + domain.GPSTolerance}).
		Where(squirrel.Gt{"lng": lng - domain.GPSTolerance}).
		Where(squirrel.Lt{"lng": lng + domain.GPSTolerance}).
		OrderBy("id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailableNear - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSpot(executor.QueryRowContext(ctx, query, args...), "FindAvailableNear")
}

// FindNear ищет любое место (занятое или нет) в пределах GPS допуска от координат
// Используется для запросов статуса места
func (r *Repository) FindNear(ctx context.Context, lat, lng float64) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "sector_name", "lat", "lng", "occupied").
		From("spots").
		Where(squirrel.Gt{"lat": lat - domain.GPSTolerance}).
		Where(squirrel.Lt{"lat": lat + domain.GPSTolerance}).
		Where(squirrel.Gt{"lng": lng - domain.GPSTolerance}).
		Where(squirrel.Lt{"lng": lng + domain.GPSTolerance}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindNear - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSpot(executor.QueryRowContext(ctx, query, args...), "FindNear")
}

// CountOccupiedBySector подсчитывает занятые места в секторе
func (r *Repository) CountOccupiedBySector(ctx context.Context, sectorName string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("spots").
		Where(squirrel.Eq{"sector_name": sectorName}).
		Where(squirrel.Eq{"occupied": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountOccupiedBySector - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOccupiedBySector - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// SetOccupied переключает флаг занятости места
func (r *Repository) SetOccupied(ctx context.Context, id string, occupied bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("spots").
		Set("occupied", occupied).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOccupied - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOccupied - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOccupied - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpotNotFound
	}

	return nil
}

// scanSpot сканирует одну строку в модель места
func (r *Repository) scanSpot(row *sql.Row, method string) (*domain.Spot, error) {
	var spot domain.Spot

	err := row.Scan(
		&spot.ID,
		&spot.SectorName,
		&spot.Lat,
		&spot.Lng,
		&spot.Occupied,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan spot: %v", ErrScanRow, method, err)
	}

	return &spot, nil
}
