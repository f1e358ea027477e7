package costcalc

import (
	"math"
	"time"

	"motorental/internal/domain"
)

// LatePenaltyPerDayCents is charged for every day past the agreed end date.
const LatePenaltyPerDayCents int64 = 5000

// Result carries the outcome of a cost calculation.
type Result struct {
	TotalCostCents int64
	TotalDaysUsed  int
}

// Calculator prices a finished or previewed rental against its embedded
// plan. All arithmetic is integer, in cents; day deltas are whole calendar
// days in a single reference timezone. Calculate has no side effects and is
// safe to call repeatedly for previews.
type Calculator struct {
	loc *time.Location
}

// NewCalculator creates a Calculator using the given reference timezone.
func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{loc: loc}
}

// Calculate returns the total cost and days used for a rental delivered on
// deliveryDate. Three disjoint cases against the plan end date: exact,
// early (used days plus a tier-dependent share of the unused days) and late
// (full plan plus a fixed daily penalty).
func (c *Calculator) Calculate(plan domain.Plan, startDate, planEndDate, deliveryDate time.Time) Result {
	daysUsed := c.daysBetween(startDate, deliveryDate) + 1
	daysLate := c.daysBetween(planEndDate, deliveryDate)

	switch {
	case daysLate < 0:
		return Result{
			TotalCostCents: c.earlyReturnCost(plan, daysUsed),
			TotalDaysUsed:  daysUsed,
		}
	case daysLate > 0:
		base := int64(plan.Days) * plan.DailyRateCents
		return Result{
			TotalCostCents: base + int64(daysLate)*LatePenaltyPerDayCents,
			TotalDaysUsed:  daysUsed,
		}
	default:
		// delivered on the exact end date
		return Result{
			TotalCostCents: int64(plan.Days) * plan.DailyRateCents,
			TotalDaysUsed:  plan.Days,
		}
	}
}

func (c *Calculator) earlyReturnCost(plan domain.Plan, daysUsed int) int64 {
	usedCost := int64(daysUsed) * plan.DailyRateCents

	unusedDays := int64(plan.Days - daysUsed)
	unusedCost := unusedDays * plan.DailyRateCents

	penalty := unusedCost * int64(penaltyPercent(plan.Days)) / 100
	return usedCost + penalty
}

// penaltyPercent returns the early-return penalty applied to the unused-day
// cost, per tier.
func penaltyPercent(planDays int) int {
	switch planDays {
	case 7:
		return 20
	case 15:
		return 40
	default:
		return 0
	}
}

// daysBetween counts whole calendar days from a to b in the reference
// timezone. Negative when b is before a. Rounding keeps the count stable
// across DST shifts.
func (c *Calculator) daysBetween(a, b time.Time) int {
	ad := c.dateOf(a)
	bd := c.dateOf(b)
	return int(math.Round(bd.Sub(ad).Hours() / 24))
}

// dateOf pins the calendar date named by t to the reference timezone.
// Inputs arrive as bare dates in arbitrary zones (JSON date strings parse
// as UTC midnight, Postgres timestamps read back as UTC wall clocks); the
// named day is authoritative, not the instant it happens to encode.
func (c *Calculator) dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}
