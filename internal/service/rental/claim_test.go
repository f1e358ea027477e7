package rental_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"motorental/internal/apperr"
	"motorental/internal/domain"
	"motorental/internal/logx"
	"motorental/internal/ports/rentaltx"
	"motorental/internal/service/rental"
)

type stubTx struct {
	claimFn func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error)
	markFn  func(ctx context.Context, rentalID, motorcycleID int64) (bool, error)
}

func (s *stubTx) ClaimAvailableMotorcycle(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
	return s.claimFn(ctx, rentalID)
}

func (s *stubTx) MarkRented(ctx context.Context, rentalID, motorcycleID int64) (bool, error) {
	if s.markFn == nil {
		return true, nil
	}
	return s.markFn(ctx, rentalID, motorcycleID)
}

type stubRunner struct {
	tx       *stubTx
	rollback *bool
}

func (s stubRunner) WithTx(ctx context.Context, fn func(tx rentaltx.Repository) error) error {
	err := fn(s.tx)
	if err != nil && s.rollback != nil {
		*s.rollback = true
	}
	return err
}

func TestTxClaimer_Claim_OK(t *testing.T) {
	t.Parallel()

	tx := &stubTx{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			require.Equal(t, int64(1), rentalID)
			return &domain.Motorcycle{ID: 5, Plate: "ABC1234"}, nil
		},
		markFn: func(ctx context.Context, rentalID, motorcycleID int64) (bool, error) {
			require.Equal(t, int64(1), rentalID)
			require.Equal(t, int64(5), motorcycleID)
			return true, nil
		},
	}

	c := rental.NewTxClaimer(stubRunner{tx: tx})

	m, err := c.Claim(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "ABC1234", m.Plate)
}

func TestTxClaimer_Claim_FleetExhausted(t *testing.T) {
	t.Parallel()

	tx := &stubTx{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			return nil, nil
		},
		markFn: func(ctx context.Context, rentalID, motorcycleID int64) (bool, error) {
			t.Fatal("MarkRented must not run without a claimed unit")
			return false, nil
		},
	}

	var rolledBack bool
	c := rental.NewTxClaimer(stubRunner{tx: tx, rollback: &rolledBack})

	m, err := c.Claim(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrResourceUnavailable)
	require.Nil(t, m)
	require.True(t, rolledBack)
}

func TestTxClaimer_Claim_LostRaceRollsBack(t *testing.T) {
	t.Parallel()

	tx := &stubTx{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			return &domain.Motorcycle{ID: 5, Plate: "ABC1234"}, nil
		},
		markFn: func(ctx context.Context, rentalID, motorcycleID int64) (bool, error) {
			// rental already resolved by a concurrent consumer
			return false, nil
		},
	}

	var rolledBack bool
	c := rental.NewTxClaimer(stubRunner{tx: tx, rollback: &rolledBack})

	m, err := c.Claim(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Nil(t, m)

	// the rollback releases the claimed unit together with the transition
	require.True(t, rolledBack)
}

func TestRetryingClaimer_FirstAttemptSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	next := &stubClaimer{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			calls++
			return &domain.Motorcycle{ID: 5}, nil
		},
	}

	retries := &countingCounter{}
	c := rental.NewRetryingClaimer(next, logx.Nop(), retries, rental.RetryConfig{MaxAttempts: 3})

	m, err := c.Claim(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, 1, calls)
	require.Equal(t, 0, retries.n)
}

func TestRetryingClaimer_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	next := &stubClaimer{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			calls++
			if calls < 3 {
				return nil, apperr.ErrResourceUnavailable
			}
			return &domain.Motorcycle{ID: 5}, nil
		},
	}

	retries := &countingCounter{}
	c := rental.NewRetryingClaimer(next, logx.Nop(), retries, rental.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
	})

	m, err := c.Claim(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, 3, calls)
	require.Equal(t, 2, retries.n)
}

func TestRetryingClaimer_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	next := &stubClaimer{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			calls++
			return nil, apperr.ErrResourceUnavailable
		},
	}

	c := rental.NewRetryingClaimer(next, logx.Nop(), &countingCounter{}, rental.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
	})

	_, err := c.Claim(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrResourceUnavailable)
	require.Equal(t, 3, calls)
}

func TestRetryingClaimer_SingleAttemptByDefault(t *testing.T) {
	t.Parallel()

	calls := 0
	next := &stubClaimer{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			calls++
			return nil, apperr.ErrResourceUnavailable
		},
	}

	c := rental.NewRetryingClaimer(next, logx.Nop(), nil, rental.RetryConfig{MaxAttempts: 1})

	_, err := c.Claim(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrResourceUnavailable)
	require.Equal(t, 1, calls)
}

func TestRetryingClaimer_ConflictIsNotRetried(t *testing.T) {
	t.Parallel()

	calls := 0
	next := &stubClaimer{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			calls++
			return nil, apperr.ErrConflict
		},
	}

	c := rental.NewRetryingClaimer(next, logx.Nop(), &countingCounter{}, rental.RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
	})

	_, err := c.Claim(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Equal(t, 1, calls)
}

func TestRetryingClaimer_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	next := &stubClaimer{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			calls++
			cancel()
			return nil, apperr.ErrResourceUnavailable
		},
	}

	c := rental.NewRetryingClaimer(next, logx.Nop(), &countingCounter{}, rental.RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
	})

	_, err := c.Claim(ctx, 1)
	require.ErrorIs(t, err, apperr.ErrResourceUnavailable)
	require.Equal(t, 1, calls)
}

func TestNewRetryingClaimer_NilNext(t *testing.T) {
	t.Parallel()

	require.Nil(t, rental.NewRetryingClaimer(nil, logx.Nop(), nil, rental.RetryConfig{}))
}

var _ rental.Claimer = (*rental.TxClaimer)(nil)
var _ rental.Claimer = (*rental.RetryingClaimer)(nil)

var errBoom = errors.New("boom")

func TestRetryingClaimer_RetriesInfraErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	next := &stubClaimer{
		claimFn: func(ctx context.Context, rentalID int64) (*domain.Motorcycle, error) {
			calls++
			return nil, errBoom
		},
	}

	c := rental.NewRetryingClaimer(next, logx.Nop(), &countingCounter{}, rental.RetryConfig{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
	})

	_, err := c.Claim(context.Background(), 1)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 2, calls)
}
