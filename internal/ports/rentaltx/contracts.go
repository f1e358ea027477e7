package rentaltx

import (
	"context"

	"motorental/internal/domain"
)

// Repository is the transactional slice of storage used while resolving a
// pending rental. Claiming and marking RENTED run inside one transaction so
// a lost race rolls the claim back.
type Repository interface {
	ClaimAvailableMotorcycle(ctx context.Context, rentalID int64) (*domain.Motorcycle, error)
	MarkRented(ctx context.Context, rentalID, motorcycleID int64) (bool, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
