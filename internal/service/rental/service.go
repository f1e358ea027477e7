package rental

import (
	"context"
	"fmt"
	"math"
	"time"

	"motorental/internal/apperr"
	"motorental/internal/domain"
	"motorental/internal/logx"
)

// Service is the request-side of the rental lifecycle engine: it validates
// and persists new rentals and lists existing ones. Resolution of pending
// rentals happens in Processor.
type Service struct {
	repo             rentalRepository
	deliverers       delivererDirectory
	plans            planCatalog
	publisher        EventPublisher
	loc              *time.Location
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService - creates a new rental Service.
func NewService(
	repo rentalRepository,
	deliverers delivererDirectory,
	plans planCatalog,
	publisher EventPublisher,
	loc *time.Location,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:             repo,
		deliverers:       deliverers,
		plans:            plans,
		publisher:        publisher,
		loc:              loc,
		operationTimeout: timeout,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create validates a rental request, persists it as PROCESSING and publishes
// a rental-created event. Assignment of a motorcycle happens asynchronously;
// the returned record is a valid intermediate state.
func (s *Service) Create(ctx context.Context, delivererID int64, endDate time.Time) (*domain.Rental, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deliverer, err := s.deliverers.FindByID(ctx, delivererID)
	if err != nil {
		return nil, err
	}
	if deliverer == nil || !deliverer.DriverLicenseType.AllowsMotorcycle() {
		return nil, apperr.ErrUnauthorized
	}

	// effective start is tomorrow, start of day, in the reference timezone.
	// The end date arrives as a bare calendar date in an arbitrary zone
	// (JSON dates parse as UTC midnight); the named day is authoritative,
	// so pin it to the reference timezone instead of converting the instant.
	start := startOfDay(s.now().In(s.loc)).AddDate(0, 0, 1)
	end := dateIn(endDate, s.loc)
	if !end.After(start) {
		return nil, apperr.ErrInvalidDateRange
	}

	durationDays := wholeDays(start, end)
	plan := s.plans.FindBy(durationDays)
	if plan == nil {
		return nil, apperr.ErrNoPlanAvailable
	}

	rental := &domain.Rental{
		DelivererID:          delivererID,
		Plan:                 *plan,
		StartDate:            start,
		EndDate:              end,
		DeliveryForecastDate: end,
		TotalCostCents:       0,
		Status:               domain.StatusProcessing,
	}
	if err := s.repo.Create(ctx, rental); err != nil {
		return nil, err
	}

	// publish only after the record is durable; a published-but-unpersisted
	// event must not be possible
	if err := s.publisher.PublishRentalCreated(ctx, *rental); err != nil {
		return nil, fmt.Errorf("rental %d persisted but created event not published: %w", rental.ID, err)
	}

	s.logger.Info("rental created",
		logx.Int64("rental_id", rental.ID),
		logx.Int64("deliverer_id", delivererID),
		logx.Int("plan_days", plan.Days),
		logx.Time("start_date", start),
		logx.Time("end_date", end),
	)

	return rental, nil
}

// List returns a deliverer's rentals with an optional status filter and
// page/perPage pagination.
func (s *Service) List(ctx context.Context, delivererID int64, filter domain.RentalFilter, page, perPage int) ([]domain.Rental, error) {
	if delivererID <= 0 {
		return nil, apperr.ErrInvalid
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.ErrInvalid
	}
	if page < 1 {
		page = 1
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, delivererID, filter, page, perPage)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateIn rebuilds the calendar date named by t at start of day in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// wholeDays counts calendar days from a to b, both at start of day in the
// same location. Rounding keeps the count stable across DST shifts.
func wholeDays(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
