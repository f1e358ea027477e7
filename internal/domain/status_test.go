package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"motorental/internal/domain"
)

func TestRentalStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []domain.RentalStatus{
		domain.StatusProcessing,
		domain.StatusRented,
		domain.StatusRejected,
		domain.StatusDone,
	} {
		require.True(t, s.Valid(), "status %q", s)
	}

	require.False(t, domain.RentalStatus("").Valid())
	require.False(t, domain.RentalStatus("PROCESSING").Valid())
	require.False(t, domain.RentalStatus("canceled").Valid())
}

func TestRentalStatus_TransitionClosure(t *testing.T) {
	t.Parallel()

	all := []domain.RentalStatus{
		domain.StatusProcessing,
		domain.StatusRented,
		domain.StatusRejected,
		domain.StatusDone,
	}

	allowed := map[domain.RentalStatus]map[domain.RentalStatus]bool{
		domain.StatusProcessing: {
			domain.StatusRented:   true,
			domain.StatusRejected: true,
		},
		domain.StatusRented: {
			domain.StatusDone: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			require.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestRentalStatus_Terminal(t *testing.T) {
	t.Parallel()

	require.False(t, domain.StatusProcessing.Terminal())
	require.False(t, domain.StatusRented.Terminal())
	require.True(t, domain.StatusRejected.Terminal())
	require.True(t, domain.StatusDone.Terminal())
}
