package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concert-tickets/internal/model"
)

type fakeConcertStore struct {
	concerts []model.Concert
	offers   map[uint64][]model.TicketOffer
	err      error
}

func (f *fakeConcertStore) ListWithOffers(ctx context.Context) ([]model.Concert, map[uint64][]model.TicketOffer, error) {
	return f.concerts, f.offers, f.err
}

func (f *fakeConcertStore) GetWithOffers(ctx context.Context, id uint64) (model.Concert, []model.TicketOffer, error) {
	if f.err != nil {
		return model.Concert{}, nil, f.err
	}
	for _, c := range f.concerts {
		if c.ID == id {
			return c, f.offers[id], nil
		}
	}
	return model.Concert{}, nil, sql.ErrNoRows
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestListConcertsAggregatesAvailability(t *testing.T) {
	store := &fakeConcertStore{
		concerts: []model.Concert{
			{ID: 1, Artist: "Stromae"},
			{ID: 2, Artist: "Coldplay"},
		},
		offers: map[uint64][]model.TicketOffer{
			1: {
				{ID: 10, ConcertID: 1, TicketType: "Staanplaats", NumTickets: 120, Price: price("65.00")},
				{ID: 11, ConcertID: 1, TicketType: "Zitplaats", NumTickets: 30, Price: price("75.00")},
			},
			2: {
				{ID: 12, ConcertID: 2, TicketType: "Staanplaats", NumTickets: 0, Price: price("70.00")},
			},
		},
	}
	svc := NewConcertService(store)

	out, err := svc.ListConcerts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, 150, out[0].AvailableTickets)
	assert.False(t, out[0].SoldOut)
	assert.Equal(t, 0, out[1].AvailableTickets)
	assert.True(t, out[1].SoldOut)
}

func TestListConcertsWithoutOffers(t *testing.T) {
	store := &fakeConcertStore{
		concerts: []model.Concert{{ID: 1, Artist: "Stromae"}},
		offers:   map[uint64][]model.TicketOffer{},
	}
	svc := NewConcertService(store)

	out, err := svc.ListConcerts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].SoldOut)
	assert.NotNil(t, out[0].TicketOffers)
	assert.Empty(t, out[0].TicketOffers)
}

func TestGetConcertNotFound(t *testing.T) {
	svc := NewConcertService(&fakeConcertStore{})

	_, err := svc.GetConcert(context.Background(), 99)
	assert.ErrorIs(t, err, ErrConcertNotFound)
}
