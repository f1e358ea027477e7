package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"motorental/internal/domain"
	"motorental/internal/ports/rentaltx"
)

const rentalColumns = `
    r.id, r.deliverer_id, r.motorcycle_id, m.plate,
    r.plan_days, r.plan_daily_rate_cents,
    r.start_date, r.end_date, r.delivery_forecast_date,
    r.total_cost_cents, r.status`

// RentalRepo represents rental repository.
type RentalRepo struct {
	db *pgxpool.Pool
}

// NewRentalRepo creates a new RentalRepo.
func NewRentalRepo(db *pgxpool.Pool) *RentalRepo {
	return &RentalRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	var r domain.Rental
	err := row.Scan(
		&r.ID, &r.DelivererID, &r.MotorcycleID, &r.MotorcyclePlate,
		&r.Plan.Days, &r.Plan.DailyRateCents,
		&r.StartDate, &r.EndDate, &r.DeliveryForecastDate,
		&r.TotalCostCents, &r.Status,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create - persists a new rental and fills in its generated ID.
func (r *RentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO rentals
            (deliverer_id, plan_days, plan_daily_rate_cents,
             start_date, end_date, delivery_forecast_date,
             total_cost_cents, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, rental.DelivererID, rental.Plan.Days, rental.Plan.DailyRateCents,
		rental.StartDate, rental.EndDate, rental.DeliveryForecastDate,
		rental.TotalCostCents, string(rental.Status)).Scan(&rental.ID)
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// GetByID - returns a rental by its ID, nil when absent.
func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	row := r.db.QueryRow(ctx, `
        SELECT `+rentalColumns+`
        FROM rentals r
        LEFT JOIN motorcycles m ON m.id = r.motorcycle_id
        WHERE r.id = $1
    `, id)

	rental, err := scanRental(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental %d: %w", id, err)
	}
	return rental, nil
}

// FindRentedByPlate - returns the unique RENTED rental for a deliverer and
// motorcycle plate, nil when absent.
func (r *RentalRepo) FindRentedByPlate(ctx context.Context, delivererID int64, plate string) (*domain.Rental, error) {
	row := r.db.QueryRow(ctx, `
        SELECT `+rentalColumns+`
        FROM rentals r
        JOIN motorcycles m ON m.id = r.motorcycle_id
        WHERE r.deliverer_id = $1 AND m.plate = $2 AND r.status = $3
    `, delivererID, plate, string(domain.StatusRented))

	rental, err := scanRental(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rented by plate %q: %w", plate, err)
	}
	return rental, nil
}

// FindByMotorcyclePlate - returns all rentals ever attached to a plate. The
// fleet side uses it to block deletion of in-use units.
func (r *RentalRepo) FindByMotorcyclePlate(ctx context.Context, plate string) ([]domain.Rental, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+rentalColumns+`
        FROM rentals r
        JOIN motorcycles m ON m.id = r.motorcycle_id
        WHERE m.plate = $1
        ORDER BY r.id
    `, plate)
	if err != nil {
		return nil, fmt.Errorf("find rentals by plate %q: %w", plate, err)
	}
	defer rows.Close()

	return collectRentals(rows)
}

// List returns a deliverer's rentals ordered by id, with an optional status
// filter and page/perPage pagination.
func (r *RentalRepo) List(ctx context.Context, delivererID int64, filter domain.RentalFilter, page, perPage int) ([]domain.Rental, error) {
	q := `
        SELECT ` + rentalColumns + `
        FROM rentals r
        LEFT JOIN motorcycles m ON m.id = r.motorcycle_id
        WHERE r.deliverer_id = $1`
	args := []any{delivererID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		q += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	q += " ORDER BY r.id"
	if perPage > 0 {
		args = append(args, perPage)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
		if page > 1 {
			args = append(args, (page-1)*perPage)
			q += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list rentals for deliverer %d: %w", delivererID, err)
	}
	defer rows.Close()

	return collectRentals(rows)
}

func collectRentals(rows pgx.Rows) ([]domain.Rental, error) {
	out := make([]domain.Rental, 0)
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rental)
	}
	return out, rows.Err()
}

// UpdateStatusIf applies a conditional status transition and reports whether
// a row matched. The expected status is part of the WHERE clause, so a
// concurrent transition makes this a no-op instead of an overwrite.
func (r *RentalRepo) UpdateStatusIf(ctx context.Context, id int64, expected, next domain.RentalStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE rentals
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `, id, string(expected), string(next))
	if err != nil {
		return false, fmt.Errorf("update rental %d status: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Finalize moves a RENTED rental to DONE, writing the total cost and the
// actual delivery date. Reports whether a row matched.
func (r *RentalRepo) Finalize(ctx context.Context, id int64, totalCostCents int64, deliveryDate time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE rentals
        SET status = $2,
            total_cost_cents = $3,
            delivery_forecast_date = $4,
            updated_at = now()
        WHERE id = $1 AND status = $5
    `, id, string(domain.StatusDone), totalCostCents, deliveryDate, string(domain.StatusRented))
	if err != nil {
		return false, fmt.Errorf("finalize rental %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// WithTx opens a transaction and executes fn within it.
func (r *RentalRepo) WithTx(ctx context.Context, fn func(tx rentaltx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// ClaimAvailableMotorcycle marks one free unit as held by the rental and
// returns it, nil when the whole fleet is assigned. The claim is one
// conditional UPDATE: SKIP LOCKED keeps concurrent claimers from ever
// selecting the same row, so at most one caller wins each unit.
func (r *TxRepo) ClaimAvailableMotorcycle(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
	row := r.tx.QueryRow(ctx, `
        UPDATE motorcycles
        SET rental_id = $1, updated_at = now()
        WHERE id = (
            SELECT id FROM motorcycles
            WHERE rental_id IS NULL
            ORDER BY id
            FOR UPDATE SKIP LOCKED
            LIMIT 1
        )
        RETURNING id, plate, year, model_name, rental_id
    `, rentalID)

	var m domain.Motorcycle
	if err := row.Scan(&m.ID, &m.Plate, &m.Year, &m.ModelName, &m.RentalID); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim motorcycle for rental %d: %w", rentalID, err)
	}
	return &m, nil
}

// MarkRented - conditional PROCESSING → RENTED transition within the claim
// transaction. Reports whether a row matched.
func (r *TxRepo) MarkRented(ctx context.Context, rentalID, motorcycleID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE rentals
        SET status = $3, motorcycle_id = $2, updated_at = now()
        WHERE id = $1 AND status = $4
    `, rentalID, motorcycleID, string(domain.StatusRented), string(domain.StatusProcessing))
	if err != nil {
		return false, fmt.Errorf("mark rental %d rented: %w", rentalID, err)
	}
	return ct.RowsAffected() > 0, nil
}
