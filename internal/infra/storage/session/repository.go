package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-GarageService/internal/domain"
	"github.com/m04kA/SMC-GarageService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GarageService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL unique_violation
const pqUniqueViolation = "23505"

// Repository репозиторий для работы с сессиями стоянки
// Сессии append-only: закрываются на EXIT, физически не удаляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую активную сессию для госномера
// Частичный уникальный индекс (license_plate WHERE exit_time IS NULL) гарантирует
// не больше одной активной сессии на номер даже при конкурентных ENTRY
func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns("license_plate", "entry_time", "applied_base_price").
		Values(session.LicensePlate, session.EntryTime, session.AppliedBasePrice).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateActiveSession
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetActiveByPlate получает активную (незакрытую) сессию по госномеру
// В транзакции строка блокируется (FOR UPDATE) для сериализации конкурентных событий
func (r *Repository) GetActiveByPlate(ctx context.Context, licensePlate string) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"license_plate": licensePlate}).
		Where("exit_time IS NULL").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPlate - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSession(executor.QueryRowContext(ctx, query, args...), "GetActiveByPlate")
}

// GetActiveBySpot получает активную сессию, занимающую указанное место
func (r *Repository) GetActiveBySpot(ctx context.Context, spotID string) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"spot_id": spotID}).
		Where("exit_time IS NULL").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySpot - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSession(executor.QueryRowContext(ctx, query, args...), "GetActiveBySpot")
}

// AssignSpot записывает на сессию назначенное место и зафиксированную ставку
// Обновляются только активные сессии
func (r *Repository) AssignSpot(ctx context.Context, id int64, sectorName, spotID string, lat, lng, appliedBasePrice float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("sector_name", sectorName).
		Set("spot_id", spotID).
		Set("lat", lat).
		Set("lng", lng).
		Set("applied_base_price", appliedBasePrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("exit_time IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignSpot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AssignSpot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AssignSpot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Close закрывает сессию, выставляя время выезда и итоговую стоимость
// Итоговая стоимость выставляется ровно один раз: уже закрытую сессию закрыть нельзя
func (r *Repository) Close(ctx context.Context, id int64, exitTime time.Time, finalPrice float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("exit_time", exitTime).
		Set("final_price", finalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("exit_time IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// SumFinalPriceBySectorAndPeriod суммирует итоговую стоимость закрытых сессий сектора
// за период [from, to). Открытые сессии (exit_time IS NULL) не попадают в выборку
// по условию на exit_time. Отсутствие строк - это 0, а не ошибка (COALESCE)
func (r *Repository) SumFinalPriceBySectorAndPeriod(ctx context.Context, sectorName string, from, to time.Time) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(final_price), 0)").
		From("sessions").
		Where(squirrel.Eq{"sector_name": sectorName}).
		Where(squirrel.GtOrEq{"exit_time": from}).
		Where(squirrel.Lt{"exit_time": to}).
		Where("final_price IS NOT NULL").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumFinalPriceBySectorAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumFinalPriceBySectorAndPeriod - scan sum: %v", ErrScanRow, err)
	}

	return total, nil
}

// sessionColumns полный список колонок сессии для SELECT запросов
var sessionColumns = []string{
	"id",
	"license_plate",
	"entry_time",
	"exit_time",
	"sector_name",
	"spot_id",
	"lat",
	"lng",
	"applied_base_price",
	"final_price",
	"created_at",
	"updated_at",
}

// scanSession сканирует одну строку в модель сессии
func (r *Repository) scanSession(row *sql.Row, method string) (*domain.Session, error) {
	var session domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.LicensePlate,
		&session.EntryTime,
		&session.ExitTime,
		&session.SectorName,
		&session.SpotID,
		&session.Lat,
		&session.Lng,
		&session.AppliedBasePrice,
		&session.FinalPrice,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan session: %v", ErrScanRow, method, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}
