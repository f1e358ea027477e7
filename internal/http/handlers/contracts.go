package handlers

import (
	"context"
	"time"

	"motorental/internal/domain"
	"motorental/internal/service/budget"
	"motorental/internal/service/rental"
)

type rentalUsecase interface {
	Create(ctx context.Context, delivererID int64, endDate time.Time) (*domain.Rental, error)
	List(ctx context.Context, delivererID int64, filter domain.RentalFilter, page, perPage int) ([]domain.Rental, error)
}

// NewRentalUsecase wires a rental Service into a rentalUsecase.
func NewRentalUsecase(svc *rental.Service) rentalUsecase {
	return svc
}

type budgetUsecase interface {
	ExpectedReturn(ctx context.Context, delivererID int64, plate string, deliveryDate time.Time) (*domain.ExpectedPrice, error)
	Finalize(ctx context.Context, delivererID int64, plate string, deliveryDate time.Time) (*domain.Rental, error)
}

// NewBudgetUsecase wires a budget Service into a budgetUsecase.
func NewBudgetUsecase(svc *budget.Service) budgetUsecase {
	return svc
}
