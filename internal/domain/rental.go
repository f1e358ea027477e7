package domain

import "time"

// RentalStatus represents the status of a rental.
type RentalStatus string

// Plan is a pricing tier copied into the rental at creation time. Catalog
// changes never retroactively affect existing rentals.
type Plan struct {
	Days           int
	DailyRateCents int64
}

// Rental - struct representing a motorcycle rental.
type Rental struct {
	ID                   int64
	DelivererID          int64
	MotorcycleID         *int64
	MotorcyclePlate      *string
	Plan                 Plan
	StartDate            time.Time
	EndDate              time.Time
	DeliveryForecastDate time.Time
	TotalCostCents       int64
	Status               RentalStatus
}

// RentalFilter carries optional listing filters. A nil field means "do not
// filter" on that attribute.
type RentalFilter struct {
	Status *RentalStatus
}

// ExpectedPrice - struct representing the result of a return-cost preview.
type ExpectedPrice struct {
	TotalCostCents int64
	TotalDaysUsed  int
	Rental         Rental
}
