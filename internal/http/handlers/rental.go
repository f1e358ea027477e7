package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"motorental/internal/apperr"
	"motorental/internal/domain"
)

// RentalHandler serves HTTP endpoints for rental resources.
type RentalHandler struct {
	uc     rentalUsecase
	budget budgetUsecase
}

// NewRentalHandler wires the rental and budget usecases into HTTP handlers.
func NewRentalHandler(uc rentalUsecase, budget budgetUsecase) *RentalHandler {
	return &RentalHandler{uc: uc, budget: budget}
}

// Create handles POST /rental.
func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	if req.DelivererID <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid deliverer_id")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid end_date")
		return
	}

	rec, err := h.uc.Create(r.Context(), req.DelivererID, endDate)
	switch {
	case err == nil:
		w.Header().Set("Location", "/rental/"+strconv.FormatInt(rec.ID, 10))
		writeJSON(w, r, http.StatusCreated, toRentalDTO(*rec))
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(w, r, http.StatusBadRequest, "deliverer is not authorized to rent a motorcycle")
	case errors.Is(err, apperr.ErrInvalidDateRange):
		writeError(w, r, http.StatusBadRequest, "reservation dates cannot be today or a past date")
	case errors.Is(err, apperr.ErrNoPlanAvailable):
		writeError(w, r, http.StatusBadRequest, "no rental plan available for the specified range dates")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /rental/deliverer/{id}.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	delivererID, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	q := r.URL.Query()
	var filter domain.RentalFilter
	if s := q.Get("status"); s != "" {
		st := domain.RentalStatus(s)
		if !st.Valid() {
			writeError(w, r, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = &st
	}
	page, perPage := 1, 0
	if s := q.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, r, http.StatusBadRequest, "invalid page")
			return
		}
		page = v
	}
	if s := q.Get("perPage"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid perPage")
			return
		}
		perPage = v
	}

	list, err := h.uc.List(r.Context(), delivererID, filter, page, perPage)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, toRentalDTOs(list))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// ExpectedReturn handles GET /rental/expected-return.
func (h *RentalHandler) ExpectedReturn(w http.ResponseWriter, r *http.Request) {
	delivererID, plate, deliveryDate, ok := h.returnParams(w, r)
	if !ok {
		return
	}

	price, err := h.budget.ExpectedReturn(r.Context(), delivererID, plate, deliveryDate)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, toExpectedPriceDTO(*price))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "rent not found")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// Finalize handles PUT /rental/finalize.
func (h *RentalHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	if req.DelivererID <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid deliverer_id")
		return
	}
	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid delivery_date")
		return
	}

	rec, err := h.budget.Finalize(r.Context(), req.DelivererID, req.Plate, deliveryDate)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, toRentalDTO(*rec))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "rent not found")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (h *RentalHandler) returnParams(w http.ResponseWriter, r *http.Request) (int64, string, time.Time, bool) {
	q := r.URL.Query()

	delivererID, err := strconv.ParseInt(q.Get("deliverer_id"), 10, 64)
	if err != nil || delivererID <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid deliverer_id")
		return 0, "", time.Time{}, false
	}
	plate := q.Get("plate")
	if plate == "" {
		writeError(w, r, http.StatusBadRequest, "invalid plate")
		return 0, "", time.Time{}, false
	}
	deliveryDate, err := parseDate(q.Get("delivery_date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid delivery_date")
		return 0, "", time.Time{}, false
	}
	return delivererID, plate, deliveryDate, true
}
