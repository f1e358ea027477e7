package budget

import (
	"context"
	"time"

	"motorental/internal/costcalc"
	"motorental/internal/domain"
)

// rentalRepository abstracts the lookups and the conditional DONE write used
// by the budget path.
type rentalRepository interface {
	FindRentedByPlate(ctx context.Context, delivererID int64, plate string) (*domain.Rental, error)
	Finalize(ctx context.Context, id int64, totalCostCents int64, deliveryDate time.Time) (bool, error)
}

// fleetDirectory releases a unit once its rental is finished.
type fleetDirectory interface {
	Release(ctx context.Context, motorcycleID int64) error
}

// costCalculator prices a rental for a given delivery date. Preview and
// finalization share this single calculation path.
type costCalculator interface {
	Calculate(plan domain.Plan, startDate, planEndDate, deliveryDate time.Time) costcalc.Result
}
