package rental

import (
	"context"

	"motorental/internal/domain"
)

// delivererDirectory is the read-only lookup into the user directory.
type delivererDirectory interface {
	FindByID(ctx context.Context, id int64) (*domain.Deliverer, error)
}

// rentalRepository abstracts rental persistence used by the engine.
type rentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	List(ctx context.Context, delivererID int64, filter domain.RentalFilter, page, perPage int) ([]domain.Rental, error)
	UpdateStatusIf(ctx context.Context, id int64, expected, next domain.RentalStatus) (bool, error)
}

// planCatalog selects the smallest tier covering a requested duration.
type planCatalog interface {
	FindBy(daysRequested int) *domain.Plan
}

// EventPublisher emits lifecycle events on the durable channel. Both calls
// happen strictly after the corresponding state is persisted.
type EventPublisher interface {
	PublishRentalCreated(ctx context.Context, r domain.Rental) error
	PublishRentalUpdated(ctx context.Context, r domain.Rental) error
}

// Claimer atomically claims one free motorcycle for a rental and marks the
// rental RENTED. Implementations must return apperr.ErrResourceUnavailable
// when the fleet is exhausted and apperr.ErrConflict when the rental lost
// the transition race.
type Claimer interface {
	Claim(ctx context.Context, rentalID int64) (*domain.Motorcycle, error)
}
