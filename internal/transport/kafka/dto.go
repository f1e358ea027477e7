package kafka

import (
	"strings"
	"time"

	"motorental/internal/service/rental"
)

// EventDTO is the wire shape of a rental lifecycle event.
type EventDTO struct {
	RentalID             int64     `json:"rental_id"`
	DelivererID          int64     `json:"deliverer_id"`
	MotorcycleID         *int64    `json:"motorcycle_id,omitempty"`
	PlanDays             int       `json:"plan_days"`
	PlanDailyRateCents   int64     `json:"plan_daily_rate_cents"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	DeliveryForecastDate time.Time `json:"delivery_forecast_date"`
	TotalCostCents       int64     `json:"total_cost_cents"`
	Status               string    `json:"status"`
	OccurredAt           time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to rental.Event
func ToDomain(dto EventDTO) rental.Event {
	return rental.Event{
		RentalID:             dto.RentalID,
		DelivererID:          dto.DelivererID,
		MotorcycleID:         dto.MotorcycleID,
		PlanDays:             dto.PlanDays,
		PlanDailyRateCents:   dto.PlanDailyRateCents,
		StartDate:            dto.StartDate,
		EndDate:              dto.EndDate,
		DeliveryForecastDate: dto.DeliveryForecastDate,
		TotalCostCents:       dto.TotalCostCents,
		Status:               strings.TrimSpace(dto.Status),
		OccurredAt:           dto.OccurredAt,
	}
}

// FromDomain converts rental.Event to EventDTO
func FromDomain(e rental.Event) EventDTO {
	return EventDTO{
		RentalID:             e.RentalID,
		DelivererID:          e.DelivererID,
		MotorcycleID:         e.MotorcycleID,
		PlanDays:             e.PlanDays,
		PlanDailyRateCents:   e.PlanDailyRateCents,
		StartDate:            e.StartDate,
		EndDate:              e.EndDate,
		DeliveryForecastDate: e.DeliveryForecastDate,
		TotalCostCents:       e.TotalCostCents,
		Status:               e.Status,
		OccurredAt:           e.OccurredAt,
	}
}
