package plancatalog

import (
	"sort"

	"motorental/internal/domain"
)

// Catalog is an immutable, ascending-by-days list of pricing tiers. Build it
// once at startup and inject it; it is safe for concurrent use.
type Catalog struct {
	tiers []domain.Plan
}

// New copies and sorts the given tiers into a Catalog.
func New(tiers []domain.Plan) *Catalog {
	cp := make([]domain.Plan, len(tiers))
	copy(cp, tiers)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Days < cp[j].Days })
	return &Catalog{tiers: cp}
}

// Default returns the catalog the fleet operates with. Rates are cents per
// day and strictly decrease as commitment length increases.
func Default() *Catalog {
	return New([]domain.Plan{
		{Days: 7, DailyRateCents: 3000},
		{Days: 15, DailyRateCents: 2800},
		{Days: 30, DailyRateCents: 2200},
		{Days: 45, DailyRateCents: 2000},
		{Days: 50, DailyRateCents: 1800},
	})
}

// FindBy returns the smallest tier covering the requested duration, or nil
// when the duration exceeds every tier.
func (c *Catalog) FindBy(daysRequested int) *domain.Plan {
	for _, p := range c.tiers {
		if p.Days >= daysRequested {
			plan := p
			return &plan
		}
	}
	return nil
}

// Tiers returns a copy of the tier list.
func (c *Catalog) Tiers() []domain.Plan {
	out := make([]domain.Plan, len(c.tiers))
	copy(out, c.tiers)
	return out
}
