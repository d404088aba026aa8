package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatters/wayfarer/backend/internal/domain"
	"github.com/kpatters/wayfarer/backend/internal/suggest"
)

func TestAddInterest(t *testing.T) {
	ownerID := uuid.New()
	tripID := uuid.New()
	interests := &mockInterestServicer{
		AddToTripFunc: func(_ context.Context, owner, trip uuid.UUID, name string) (domain.Interest, error) {
			assert.Equal(t, "Street Food", name)
			return domain.Interest{ID: uuid.New(), Name: name, Slug: "street-food"}, nil
		},
	}
	h := newTestRouter(deps{interests: interests}, ownerID)

	rec := doJSON(t, h, http.MethodPost, "/trips/"+tripID.String()+"/interests",
		`{"name":"Street Food"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "street-food", decodeBody(t, rec)["slug"])
}

func TestRemoveInterest(t *testing.T) {
	ownerID := uuid.New()
	tripID := uuid.New()
	interests := &mockInterestServicer{
		RemoveFromTripFunc: func(_ context.Context, owner, trip uuid.UUID, slug string) error {
			assert.Equal(t, "street-food", slug)
			return nil
		},
	}
	h := newTestRouter(deps{interests: interests}, ownerID)

	rec := doJSON(t, h, http.MethodDelete, "/trips/"+tripID.String()+"/interests/street-food", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetSuggestions(t *testing.T) {
	ownerID := uuid.New()
	tripID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		suggestions := &mockSuggestServicer{
			SuggestFunc: func(context.Context, uuid.UUID, uuid.UUID) (suggest.Suggestion, error) {
				return suggest.Suggestion{
					Destination: "Lisbon",
					Days: []suggest.SuggestionDay{
						{Day: 1, Title: "Alfama", Activities: []string{"miradouro walk"}},
					},
				}, nil
			},
		}
		h := newTestRouter(deps{suggestions: suggestions}, ownerID)

		rec := doJSON(t, h, http.MethodGet, "/trips/"+tripID.String()+"/suggestions", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Lisbon", body["destination"])
		days, ok := body["days"].([]any)
		require.True(t, ok)
		assert.Len(t, days, 1)
	})

	t.Run("unavailable", func(t *testing.T) {
		suggestions := &mockSuggestServicer{
			SuggestFunc: func(context.Context, uuid.UUID, uuid.UUID) (suggest.Suggestion, error) {
				return suggest.Suggestion{}, suggest.ErrUnavailable
			},
		}
		h := newTestRouter(deps{suggestions: suggestions}, ownerID)

		rec := doJSON(t, h, http.MethodGet, "/trips/"+tripID.String()+"/suggestions", "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "suggestions_unavailable", errorCode(t, rec))
	})
}
