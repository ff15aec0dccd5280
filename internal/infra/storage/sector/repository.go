package sector

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

// Repository репозиторий для работы с секторами гаража
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория секторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет сектор, если он еще не загружен
// Топология гаража неизменяема после загрузки, поэтому конфликт по имени игнорируется:
// повторный запуск сервиса не перезаписывает цены и вместимость
func (r *Repository) Upsert(ctx context.Context, sector *domain.Sector) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sectors").
		Columns("name", "base_price", "max_capacity").
		Values(sector.Name, sector.BasePrice, sector.MaxCapacity).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByName получает сектор по имени (точное совпадение, с учетом регистра)
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Sector, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("name", "base_price", "max_capacity").
		From("sectors").
		Where(squirrel.Eq{"name": name}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	var sector domain.Sector
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sector.Name,
		&sector.BasePrice,
		&sector.MaxCapacity,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSectorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - scan sector: %v", ErrScanRow, err)
	}

	return &sector, nil
}
