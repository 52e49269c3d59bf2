package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concert-tickets/internal/model"
	"concert-tickets/internal/service"
)

type stubConcertStore struct {
	concerts []model.Concert
	offers   map[uint64][]model.TicketOffer
}

func (s *stubConcertStore) ListWithOffers(ctx context.Context) ([]model.Concert, map[uint64][]model.TicketOffer, error) {
	return s.concerts, s.offers, nil
}

func (s *stubConcertStore) GetWithOffers(ctx context.Context, id uint64) (model.Concert, []model.TicketOffer, error) {
	for _, c := range s.concerts {
		if c.ID == id {
			return c, s.offers[id], nil
		}
	}
	return model.Concert{}, nil, sql.ErrNoRows
}

func newPublicHandler() *PublicHandler {
	store := &stubConcertStore{
		concerts: []model.Concert{{ID: 1, Artist: "Stromae", Location: "Antwerpen"}},
		offers: map[uint64][]model.TicketOffer{
			1: {{ID: 10, ConcertID: 1, TicketType: "Staanplaats", NumTickets: 12, Price: decimal.RequireFromString("65.00")}},
		},
	}
	return NewPublicHandler(service.NewConcertService(store))
}

func TestListConcerts(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/concerts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, newPublicHandler().ListConcerts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"artist":"Stromae"`)
	assert.Contains(t, rec.Body.String(), `"available_tickets":12`)
	assert.Contains(t, rec.Body.String(), `"sold_out":false`)
}

func TestGetConcert(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/concerts/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, newPublicHandler().GetConcert(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ticket_type":"Staanplaats"`)
}

func TestGetConcertNotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/concerts/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, newPublicHandler().GetConcert(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetConcertInvalidID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/concerts/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := newPublicHandler().GetConcert(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
