package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"motorental/internal/domain"
)

// DelivererRepo represents the read-only deliverer directory.
type DelivererRepo struct{ db *pgxpool.Pool }

// NewDelivererRepo creates a new DelivererRepo.
func NewDelivererRepo(db *pgxpool.Pool) *DelivererRepo { return &DelivererRepo{db: db} }

// FindByID - returns a deliverer by its ID, nil when absent.
func (r *DelivererRepo) FindByID(ctx context.Context, id int64) (*domain.Deliverer, error) {
	var d domain.Deliverer
	err := r.db.QueryRow(ctx, `
        SELECT id, name, cnpj, driver_license_number, driver_license_type
        FROM deliverers
        WHERE id = $1
    `, id).Scan(&d.ID, &d.Name, &d.CNPJ, &d.DriverLicenseNumber, &d.DriverLicenseType)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find deliverer %d: %w", id, err)
	}
	return &d, nil
}
