package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/kpatters/wayfarer/backend/internal/domain"
)

// createExpenseRequest is the body for POST /trips/{tripID}/expenses.
type createExpenseRequest struct {
	Date        openapi_types.Date `json:"date"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency"`
	Category    string             `json:"category,omitempty"`
	Description string             `json:"description,omitempty"`
}

// expenseResponse is the wire shape of an expense.
type expenseResponse struct {
	ID          uuid.UUID          `json:"id"`
	TripID      uuid.UUID          `json:"trip_id"`
	Date        openapi_types.Date `json:"date"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency"`
	Category    string             `json:"category,omitempty"`
	Description string             `json:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req createExpenseRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.expenses.Create(r.Context(), ownerID, domain.Expense{
		TripID:      tripID,
		Date:        req.Date.Time,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// ListExpenses handles GET /trips/{tripID}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	expenses, err := s.expenses.ListByTrip(r.Context(), ownerID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		data[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "expenseID")
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), ownerID, tripID, expenseID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExpenseSummary handles GET /trips/{tripID}/expenses/summary.
func (s *Server) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	summary, err := s.expenses.Summary(r.Context(), ownerID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// expenseToResponse converts a domain.Expense into its wire shape.
func expenseToResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		Date:        openapi_types.Date{Time: e.Date},
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
