package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatters/wayfarer/backend/internal/domain"
)

func sampleTrip(ownerID uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Destination: "Lisbon",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Budget:      1200,
		CreatedAt:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateTrip(t *testing.T) {
	ownerID := uuid.New()
	trips := &mockTripServicer{
		CreateFunc: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, ownerID, trip.OwnerID, "owner comes from the token, not the body")
			assert.Equal(t, "Lisbon", trip.Destination)
			assert.True(t, trip.EndDate.IsZero(), "omitted end_date stays zero for the service to default")
			trip.ID = uuid.New()
			trip.EndDate = trip.StartDate
			return trip, nil
		},
	}
	h := newTestRouter(deps{trips: trips}, ownerID)

	rec := doJSON(t, h, http.MethodPost, "/trips",
		`{"destination":"Lisbon","start_date":"2024-03-01","budget":1200}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Lisbon", body["destination"])
	assert.Equal(t, "2024-03-01", body["start_date"])
	assert.EqualValues(t, 1, body["day_count"])
}

func TestCreateTrip_ValidationError(t *testing.T) {
	trips := &mockTripServicer{
		CreateFunc: func(context.Context, domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: destination is required", domain.ErrValidation)
		},
	}
	h := newTestRouter(deps{trips: trips}, uuid.New())

	rec := doJSON(t, h, http.MethodPost, "/trips", `{"start_date":"2024-03-01"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestCreateTrip_MalformedBody(t *testing.T) {
	h := newTestRouter(deps{}, uuid.New())

	rec := doJSON(t, h, http.MethodPost, "/trips", `{"destination":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", errorCode(t, rec))
}

func TestListTrips(t *testing.T) {
	ownerID := uuid.New()
	trip := sampleTrip(ownerID)
	trips := &mockTripServicer{
		ListPagedFunc: func(_ context.Context, owner uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, ownerID, owner)
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []domain.Trip{trip}, 11, nil
		},
	}
	h := newTestRouter(deps{trips: trips}, ownerID)

	rec := doJSON(t, h, http.MethodGet, "/trips?page=2&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, pagination["page"])
	assert.EqualValues(t, 5, pagination["limit"])
	assert.EqualValues(t, 11, pagination["total"])
}

func TestGetTrip(t *testing.T) {
	ownerID := uuid.New()
	trip := sampleTrip(ownerID)
	trips := &mockTripServicer{
		GetByIDFunc: func(_ context.Context, owner, tripID uuid.UUID) (domain.Trip, error) {
			if tripID != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
	h := newTestRouter(deps{trips: trips}, ownerID)

	t.Run("found", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/trips/"+trip.ID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, trip.ID.String(), body["id"])
		assert.EqualValues(t, 5, body["day_count"])
	})

	t.Run("not found", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/trips/"+uuid.NewString(), "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", errorCode(t, rec))
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/trips/not-a-uuid", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateTrip(t *testing.T) {
	ownerID := uuid.New()
	trip := sampleTrip(ownerID)
	trips := &mockTripServicer{
		UpdateFunc: func(_ context.Context, in domain.Trip) (domain.Trip, error) {
			assert.Equal(t, trip.ID, in.ID)
			assert.Equal(t, ownerID, in.OwnerID)
			assert.Equal(t, "Porto", in.Destination)
			return in, nil
		},
	}
	h := newTestRouter(deps{trips: trips}, ownerID)

	rec := doJSON(t, h, http.MethodPut, "/trips/"+trip.ID.String(),
		`{"destination":"Porto","start_date":"2024-03-01","end_date":"2024-03-05","budget":900}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Porto", decodeBody(t, rec)["destination"])
}

func TestDeleteTrip(t *testing.T) {
	ownerID := uuid.New()
	tripID := uuid.New()
	trips := &mockTripServicer{
		DeleteFunc: func(_ context.Context, owner, id uuid.UUID) error {
			assert.Equal(t, ownerID, owner)
			assert.Equal(t, tripID, id)
			return nil
		},
	}
	h := newTestRouter(deps{trips: trips}, ownerID)

	rec := doJSON(t, h, http.MethodDelete, "/trips/"+tripID.String(), "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
