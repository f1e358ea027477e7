package budget

import (
	"context"
	"strings"
	"time"

	"motorental/internal/apperr"
	"motorental/internal/domain"
	"motorental/internal/logx"
)

// Service computes expected-return previews and performs the RENTED → DONE
// finalization.
type Service struct {
	repo             rentalRepository
	fleet            fleetDirectory
	calc             costCalculator
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService - creates a new budget Service.
func NewService(repo rentalRepository, fleet fleetDirectory, calc costCalculator, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		fleet:            fleet,
		calc:             calc,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// ExpectedReturn previews the cost of returning the motorcycle on
// deliveryDate. Read-only; safe to call repeatedly.
func (s *Service) ExpectedReturn(ctx context.Context, delivererID int64, plate string, deliveryDate time.Time) (*domain.ExpectedPrice, error) {
	plate, err := validatePlate(plate)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rental, err := s.repo.FindRentedByPlate(ctx, delivererID, plate)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, apperr.ErrNotFound
	}

	res := s.calc.Calculate(rental.Plan, rental.StartDate, rental.EndDate, deliveryDate)
	return &domain.ExpectedPrice{
		TotalCostCents: res.TotalCostCents,
		TotalDaysUsed:  res.TotalDaysUsed,
		Rental:         *rental,
	}, nil
}

// Finalize prices the rental for the actual delivery date and moves it
// RENTED → DONE, releasing the motorcycle back into the fleet. The status
// transition is a conditional update; losing it to a concurrent finalize
// reports ErrNotFound.
func (s *Service) Finalize(ctx context.Context, delivererID int64, plate string, deliveryDate time.Time) (*domain.Rental, error) {
	plate, err := validatePlate(plate)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rental, err := s.repo.FindRentedByPlate(ctx, delivererID, plate)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, apperr.ErrNotFound
	}

	res := s.calc.Calculate(rental.Plan, rental.StartDate, rental.EndDate, deliveryDate)

	ok, err := s.repo.Finalize(ctx, rental.ID, res.TotalCostCents, deliveryDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}

	// the rental record keeps its motorcycle reference; only the fleet-side
	// assignment is cleared
	if rental.MotorcycleID != nil {
		if err := s.fleet.Release(ctx, *rental.MotorcycleID); err != nil {
			s.logger.Error("motorcycle release failed",
				logx.Int64("rental_id", rental.ID),
				logx.Int64("motorcycle_id", *rental.MotorcycleID),
				logx.Err(err),
			)
		}
	}

	s.logger.Info("rental finalized",
		logx.Int64("rental_id", rental.ID),
		logx.Int64("deliverer_id", delivererID),
		logx.String("plate", plate),
		logx.Int64("total_cost_cents", res.TotalCostCents),
		logx.Int("total_days_used", res.TotalDaysUsed),
	)

	rental.Status = domain.StatusDone
	rental.TotalCostCents = res.TotalCostCents
	rental.DeliveryForecastDate = deliveryDate
	return rental, nil
}

func validatePlate(raw string) (string, error) {
	plate := strings.TrimSpace(raw)
	if plate == "" {
		return "", apperr.ErrInvalid
	}
	return plate, nil
}
