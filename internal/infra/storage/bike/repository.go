package bike

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	"github.com/m04kA/SMC-BikeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BikeService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var bikeColumns = []string{
	"id",
	"user_id",
	"brand",
	"model",
	"number_plate",
	"created_at",
	"updated_at",
}

// Repository репозиторий велосипедов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория велосипедов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует новый велосипед
// Дубликат номерного знака транслируется в ErrDuplicatePlate
func (r *Repository) Create(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bikes").
		Columns("user_id", "brand", "model", "number_plate").
		Values(bike.UserID, bike.Brand, bike.Model, bike.NumberPlate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&bike.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicatePlate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	bike.CreatedAt = createdAt.Time
	bike.UpdatedAt = updatedAt.Time

	return bike, nil
}

// GetByID получает велосипед по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Bike, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bikeColumns...).
		From("bikes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	bike, err := scanBike(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBikeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan bike: %v", ErrScanRow, err)
	}

	return bike, nil
}

// GetByUserID получает велосипеды пользователя, новые сверху
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Bike, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bikeColumns...).
		From("bikes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bikes := make([]*domain.Bike, 0)
	for rows.Next() {
		bike, err := scanBike(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}
		bikes = append(bikes, bike)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return bikes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBike(row rowScanner) (*domain.Bike, error) {
	var bike domain.Bike
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&bike.ID,
		&bike.UserID,
		&bike.Brand,
		&bike.Model,
		&bike.NumberPlate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	bike.CreatedAt = createdAt.Time
	bike.UpdatedAt = updatedAt.Time

	return &bike, nil
}
