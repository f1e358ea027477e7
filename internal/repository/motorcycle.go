package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"motorental/internal/apperr"
	"motorental/internal/domain"
)

// MotorcycleRepo represents the fleet directory.
type MotorcycleRepo struct{ db *pgxpool.Pool }

// NewMotorcycleRepo creates a new MotorcycleRepo.
func NewMotorcycleRepo(db *pgxpool.Pool) *MotorcycleRepo { return &MotorcycleRepo{db: db} }

// Create - registers a new fleet unit.
func (r *MotorcycleRepo) Create(ctx context.Context, m *domain.Motorcycle) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO motorcycles (plate, year, model_name)
        VALUES ($1, $2, $3)
        RETURNING id
    `, m.Plate, m.Year, m.ModelName).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create motorcycle: %w", err)
	}
	return id, nil
}

// GetByPlate - returns a unit by plate, nil when absent.
func (r *MotorcycleRepo) GetByPlate(ctx context.Context, plate string) (*domain.Motorcycle, error) {
	var m domain.Motorcycle
	err := r.db.QueryRow(ctx, `
        SELECT id, plate, year, model_name, rental_id
        FROM motorcycles
        WHERE plate = $1
    `, plate).Scan(&m.ID, &m.Plate, &m.Year, &m.ModelName, &m.RentalID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get motorcycle %q: %w", plate, err)
	}
	return &m, nil
}

// Release clears a unit's assignment when a finished rental hands the
// motorcycle back.
func (r *MotorcycleRepo) Release(ctx context.Context, motorcycleID int64) error {
	_, err := r.db.Exec(ctx, `
        UPDATE motorcycles
        SET rental_id = NULL, updated_at = now()
        WHERE id = $1
    `, motorcycleID)
	if err != nil {
		return fmt.Errorf("release motorcycle %d: %w", motorcycleID, err)
	}
	return nil
}
