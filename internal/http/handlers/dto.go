package handlers

import "time"

type createRentalRequest struct {
	DelivererID int64  `json:"deliverer_id"`
	EndDate     string `json:"end_date"`
}

type returnRequest struct {
	DelivererID  int64  `json:"deliverer_id"`
	Plate        string `json:"plate"`
	DeliveryDate string `json:"delivery_date"`
}

type rentalDTO struct {
	ID                   int64   `json:"id"`
	DelivererID          int64   `json:"deliverer_id"`
	MotorcycleID         *int64  `json:"motorcycle_id,omitempty"`
	MotorcyclePlate      *string `json:"motorcycle_plate,omitempty"`
	PlanDays             int     `json:"plan_days"`
	PlanDailyRateCents   int64   `json:"plan_daily_rate_cents"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	DeliveryForecastDate string  `json:"delivery_forecast_date"`
	TotalCostCents       int64   `json:"total_cost_cents"`
	Status               string  `json:"status"`
}

type expectedPriceDTO struct {
	TotalCostCents int64     `json:"total_cost_cents"`
	TotalDaysUsed  int       `json:"total_days_used"`
	Rental         rentalDTO `json:"rental"`
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
