package rental

import (
	"context"
	"errors"
	"time"

	"motorental/internal/apperr"
	"motorental/internal/domain"
	"motorental/internal/logx"
	"motorental/internal/ports/rentaltx"
)

// TxClaimer claims a motorcycle and marks the rental RENTED inside one
// storage transaction. When the rental lost the transition race (duplicate
// delivery already resolved it) the transaction rolls back, which also
// releases the just-claimed unit.
type TxClaimer struct {
	runner rentaltx.Runner
}

// NewTxClaimer - creates a new TxClaimer.
func NewTxClaimer(runner rentaltx.Runner) *TxClaimer {
	return &TxClaimer{runner: runner}
}

// Claim implements Claimer.
func (c *TxClaimer) Claim(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
	var claimed *domain.Motorcycle
	err := c.runner.WithTx(ctx, func(tx rentaltx.Repository) error {
		m, err := tx.ClaimAvailableMotorcycle(ctx, rentalID)
		if err != nil {
			return err
		}
		if m == nil {
			return apperr.ErrResourceUnavailable
		}
		ok, err := tx.MarkRented(ctx, rentalID, m.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrConflict
		}
		claimed = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

type counter interface {
	Inc()
}

// RetryConfig describes the bounded retry applied to failed claims before a
// rental is rejected. MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingClaimer decorates a Claimer with bounded retry and backoff.
type RetryingClaimer struct {
	next    Claimer
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingClaimer wraps next with retry behavior. A nil next yields nil.
func NewRetryingClaimer(next Claimer, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingClaimer {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingClaimer{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Claim implements Claimer.
func (c *RetryingClaimer) Claim(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		m, err := c.next.Claim(ctx, rentalID)
		if err == nil {
			return m, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == c.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(c.cfg.BaseDelay, c.cfg.MaxDelay, attempt)
		if c.retries != nil {
			c.retries.Inc()
		}
		c.logger.Warn("motorcycle claim retry",
			logx.Int64("rental_id", rentalID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return nil, lastErr
}

// isRetryable - a lost transition race is final; everything else (empty
// fleet, storage trouble) may clear up within the backoff window.
func isRetryable(err error) bool {
	return !errors.Is(err, apperr.ErrConflict)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
