package rental

import (
	"context"
	"errors"
	"time"

	"motorental/internal/apperr"
	"motorental/internal/domain"
	"motorental/internal/logx"
)

// Processor is the consumption side of the lifecycle engine: it resolves a
// PROCESSING rental into RENTED or REJECTED when its created event arrives.
// The channel delivers at least once, so Handle is idempotent: a record
// already outside PROCESSING is a no-op.
type Processor struct {
	repo             rentalRepository
	claimer          Claimer
	publisher        EventPublisher
	operationTimeout time.Duration
	logger           logx.Logger

	rented   counter
	rejected counter
}

// NewProcessor - creates a new rental Processor.
func NewProcessor(
	repo rentalRepository,
	claimer Claimer,
	publisher EventPublisher,
	timeout time.Duration,
	logger logx.Logger,
	rented, rejected counter,
) *Processor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Processor{
		repo:             repo,
		claimer:          claimer,
		publisher:        publisher,
		operationTimeout: timeout,
		logger:           logger,
		rented:           rented,
		rejected:         rejected,
	}
}

// Handle processes a single created event. Every path ends in a terminal
// write or an idempotent no-op; a returned error means the durable REJECTED
// write itself failed and the channel should redeliver.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, p.operationTimeout)
	defer cancel()

	rec, err := p.repo.GetByID(ctx, e.RentalID)
	if err != nil {
		return err
	}
	if rec == nil || rec.Status != domain.StatusProcessing {
		// redelivery of an already-resolved rental
		return nil
	}

	m, err := p.claimer.Claim(ctx, rec.ID)
	switch {
	case err == nil:
		rec.Status = domain.StatusRented
		rec.MotorcycleID = &m.ID
		rec.MotorcyclePlate = &m.Plate
		p.inc(p.rented)
		p.logger.Info("rental resolved",
			logx.Int64("rental_id", rec.ID),
			logx.String("status", string(rec.Status)),
			logx.String("plate", m.Plate),
		)
		p.publishUpdated(ctx, *rec)
		return nil

	case errors.Is(err, apperr.ErrConflict):
		// a concurrent consumer resolved this rental first; the transaction
		// rollback already released the claimed unit
		return nil

	default:
		return p.reject(ctx, rec, err)
	}
}

// reject - no unit available or the claim failed outright; the policy treats
// that as permanent for this request.
func (p *Processor) reject(ctx context.Context, rec *domain.Rental, cause error) error {
	if !errors.Is(cause, apperr.ErrResourceUnavailable) {
		p.logger.Warn("motorcycle claim failed, rejecting rental",
			logx.Int64("rental_id", rec.ID),
			logx.Err(cause),
		)
	}

	ok, err := p.repo.UpdateStatusIf(ctx, rec.ID, domain.StatusProcessing, domain.StatusRejected)
	if err != nil {
		// propagate: the channel redelivers and the idempotency guard makes
		// the retry safe
		return err
	}
	if !ok {
		return nil
	}

	rec.Status = domain.StatusRejected
	p.inc(p.rejected)
	p.logger.Info("rental resolved",
		logx.Int64("rental_id", rec.ID),
		logx.String("status", string(rec.Status)),
	)
	p.publishUpdated(ctx, *rec)
	return nil
}

// publishUpdated emits the rental-updated event for a durably persisted
// resolution. Publish failures are logged, not propagated: redelivery would
// hit the idempotency guard and still never publish.
func (p *Processor) publishUpdated(ctx context.Context, rec domain.Rental) {
	if err := p.publisher.PublishRentalUpdated(ctx, rec); err != nil {
		p.logger.Error("rental-updated publish failed",
			logx.Int64("rental_id", rec.ID),
			logx.Err(err),
		)
	}
}

func (p *Processor) inc(c counter) {
	if c != nil {
		c.Inc()
	}
}
