// Package handler implements the HTTP handlers for the Wayfarer API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, activity.go, etc.) but all share the same Server struct so
// they can access its dependencies.
//
// The servicer interfaces are defined here, in the consumer package, per the
// Go convention "accept interfaces, return concrete types". Handler tests
// inject mocks without touching the database or service layer.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/suggest"
)

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, ownerID, tripID uuid.UUID) error
}

// ActivityServicer defines the business operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, activity domain.Activity) (domain.Activity, error)
	ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, ownerID uuid.UUID, activity domain.Activity) (domain.Activity, error)
	Toggle(ctx context.Context, ownerID, tripID, activityID uuid.UUID) (domain.Activity, error)
	Delete(ctx context.Context, ownerID, tripID, activityID uuid.UUID) error
}

// ItineraryServicer defines the day-shift engine operations the itinerary
// handlers depend on.
type ItineraryServicer interface {
	ExtendTrip(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error)
	RemoveDay(ctx context.Context, ownerID, tripID uuid.UUID, day time.Time) (domain.Trip, error)
	Itinerary(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, []domain.ItineraryDay, error)
}

// ExpenseServicer defines the business operations the expense handlers depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, expense domain.Expense) (domain.Expense, error)
	ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Expense, error)
	Delete(ctx context.Context, ownerID, tripID, expenseID uuid.UUID) error
	Summary(ctx context.Context, ownerID, tripID uuid.UUID) (domain.ExpenseSummary, error)
}

// InterestServicer defines the business operations the interest handlers depend on.
type InterestServicer interface {
	AddToTrip(ctx context.Context, ownerID, tripID uuid.UUID, name string) (domain.Interest, error)
	RemoveFromTrip(ctx context.Context, ownerID, tripID uuid.UUID, slug string) error
	ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Interest, error)
}

// SuggestServicer defines the AI suggestion operation the suggestion handler
// depends on.
type SuggestServicer interface {
	Suggest(ctx context.Context, ownerID, tripID uuid.UUID) (suggest.Suggestion, error)
}

// ExportServicer defines the flat-export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error)
}

// AuthServicer defines the account operations the auth handlers depend on.
type AuthServicer interface {
	Register(ctx context.Context, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
}

// Server holds every handler dependency. Wire it in main.go via Routes.
type Server struct {
	auth        AuthServicer
	trips       TripServicer
	activities  ActivityServicer
	itinerary   ItineraryServicer
	expenses    ExpenseServicer
	interests   InterestServicer
	suggestions SuggestServicer
	export      ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	auth AuthServicer,
	trips TripServicer,
	activities ActivityServicer,
	itinerary ItineraryServicer,
	expenses ExpenseServicer,
	interests InterestServicer,
	suggestions SuggestServicer,
	export ExportServicer,
) *Server {
	return &Server{
		auth:        auth,
		trips:       trips,
		activities:  activities,
		itinerary:   itinerary,
		expenses:    expenses,
		interests:   interests,
		suggestions: suggestions,
		export:      export,
	}
}

// Routes mounts every endpoint on r. The authed middleware guards everything
// except registration, login, and the health check.
func (s *Server) Routes(r chi.Router, authed func(http.Handler) http.Handler) {
	r.Get("/healthz", s.GetHealth)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(authed)

		r.Get("/export", s.Export)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Get("/itinerary", s.GetItinerary)
				r.Post("/days", s.ExtendTrip)
				r.Delete("/days/{date}", s.RemoveDay)

				r.Get("/activities", s.ListActivities)
				r.Post("/activities", s.CreateActivity)
				r.Put("/activities/{activityID}", s.UpdateActivity)
				r.Patch("/activities/{activityID}/toggle", s.ToggleActivity)
				r.Delete("/activities/{activityID}", s.DeleteActivity)

				r.Get("/expenses", s.ListExpenses)
				r.Post("/expenses", s.CreateExpense)
				r.Delete("/expenses/{expenseID}", s.DeleteExpense)
				r.Get("/expenses/summary", s.ExpenseSummary)

				r.Get("/interests", s.ListInterests)
				r.Post("/interests", s.AddInterest)
				r.Delete("/interests/{slug}", s.RemoveInterest)

				r.Get("/suggestions", s.GetSuggestions)
			})
		})
	})
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
