package rental

import (
	"time"

	"motorental/internal/domain"
)

// Event is a full snapshot of a rental at the moment of a lifecycle change.
type Event struct {
	RentalID             int64      `json:"rental_id"`
	DelivererID          int64      `json:"deliverer_id"`
	MotorcycleID         *int64     `json:"motorcycle_id,omitempty"`
	PlanDays             int        `json:"plan_days"`
	PlanDailyRateCents   int64      `json:"plan_daily_rate_cents"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	DeliveryForecastDate time.Time  `json:"delivery_forecast_date"`
	TotalCostCents       int64      `json:"total_cost_cents"`
	Status               string     `json:"status"`
	OccurredAt           time.Time  `json:"occurred_at"`
}

// NewEvent snapshots a rental into an Event.
func NewEvent(r domain.Rental, occurredAt time.Time) Event {
	return Event{
		RentalID:             r.ID,
		DelivererID:          r.DelivererID,
		MotorcycleID:         r.MotorcycleID,
		PlanDays:             r.Plan.Days,
		PlanDailyRateCents:   r.Plan.DailyRateCents,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		DeliveryForecastDate: r.DeliveryForecastDate,
		TotalCostCents:       r.TotalCostCents,
		Status:               string(r.Status),
		OccurredAt:           occurredAt,
	}
}
