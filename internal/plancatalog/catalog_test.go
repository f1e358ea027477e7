package plancatalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"motorental/internal/domain"
	"motorental/internal/plancatalog"
)

func TestFindBy_PicksSmallestCoveringTier(t *testing.T) {
	t.Parallel()

	c := plancatalog.Default()

	got := c.FindBy(16)
	require.NotNil(t, got)
	require.Equal(t, 30, got.Days)
	require.Equal(t, int64(2200), got.DailyRateCents)
}

func TestFindBy_ExactMatch(t *testing.T) {
	t.Parallel()

	c := plancatalog.Default()

	got := c.FindBy(15)
	require.NotNil(t, got)
	require.Equal(t, 15, got.Days)
}

func TestFindBy_BeyondLargestTier(t *testing.T) {
	t.Parallel()

	c := plancatalog.Default()

	require.Nil(t, c.FindBy(51))
}

func TestFindBy_Monotonic(t *testing.T) {
	t.Parallel()

	c := plancatalog.Default()

	prev := 0
	for d := 1; d <= 50; d++ {
		got := c.FindBy(d)
		require.NotNil(t, got, "days=%d", d)
		require.GreaterOrEqual(t, got.Days, prev, "days=%d", d)
		prev = got.Days
	}
}

func TestNew_SortsAndCopies(t *testing.T) {
	t.Parallel()

	tiers := []domain.Plan{
		{Days: 30, DailyRateCents: 2200},
		{Days: 7, DailyRateCents: 3000},
	}

	c := plancatalog.New(tiers)

	// mutating the input must not affect the catalog
	tiers[0].Days = 1
	tiers[1].DailyRateCents = 0

	got := c.FindBy(5)
	require.NotNil(t, got)
	require.Equal(t, 7, got.Days)
	require.Equal(t, int64(3000), got.DailyRateCents)

	require.Equal(t, []domain.Plan{
		{Days: 7, DailyRateCents: 3000},
		{Days: 30, DailyRateCents: 2200},
	}, c.Tiers())
}

func TestFindBy_ReturnsCopy(t *testing.T) {
	t.Parallel()

	c := plancatalog.Default()

	p := c.FindBy(7)
	require.NotNil(t, p)
	p.DailyRateCents = 1

	again := c.FindBy(7)
	require.Equal(t, int64(3000), again.DailyRateCents)
}
