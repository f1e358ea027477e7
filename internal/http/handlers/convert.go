package handlers

import "motorental/internal/domain"

func toRentalDTO(r domain.Rental) rentalDTO {
	return rentalDTO{
		ID:                   r.ID,
		DelivererID:          r.DelivererID,
		MotorcycleID:         r.MotorcycleID,
		MotorcyclePlate:      r.MotorcyclePlate,
		PlanDays:             r.Plan.Days,
		PlanDailyRateCents:   r.Plan.DailyRateCents,
		StartDate:            formatDate(r.StartDate),
		EndDate:              formatDate(r.EndDate),
		DeliveryForecastDate: formatDate(r.DeliveryForecastDate),
		TotalCostCents:       r.TotalCostCents,
		Status:               string(r.Status),
	}
}

func toRentalDTOs(list []domain.Rental) []rentalDTO {
	out := make([]rentalDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toRentalDTO(r))
	}
	return out
}

func toExpectedPriceDTO(p domain.ExpectedPrice) expectedPriceDTO {
	return expectedPriceDTO{
		TotalCostCents: p.TotalCostCents,
		TotalDaysUsed:  p.TotalDaysUsed,
		Rental:         toRentalDTO(p.Rental),
	}
}
