package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concert-tickets/internal/model"
)

type fakeOfferStore struct {
	offer      model.TicketOffer
	getErr     error
	updatedTo  *int
	updateErr  error
	updatedFor uint64
}

func (f *fakeOfferStore) GetWithConcert(ctx context.Context, id uint64) (model.TicketOffer, error) {
	if f.getErr != nil {
		return model.TicketOffer{}, f.getErr
	}
	return f.offer, nil
}

func (f *fakeOfferStore) UpdateNumTickets(ctx context.Context, id uint64, numTickets int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedFor = id
	f.updatedTo = &numTickets
	return nil
}

func TestOrderFormWithMemberCard(t *testing.T) {
	store := &fakeOfferStore{offer: model.TicketOffer{
		ID:         5,
		ConcertID:  2,
		TicketType: "Golden Circle",
		NumTickets: 40,
		Price:      price("150.00"),
		Concert:    &model.Concert{ID: 2, Artist: "Taylor Swift", Location: "Brussel"},
	}}
	svc := NewTicketOfferService(store)

	form, err := svc.OrderFormFor(context.Background(), 5, true)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), form.TicketOfferID)
	assert.Equal(t, uint64(2), form.ConcertID)
	assert.Equal(t, "Taylor Swift", form.Artist)
	assert.True(t, form.DiscountApplied)
	assert.Equal(t, "135.00", form.PricePerTicket.StringFixed(2))
	assert.Equal(t, 1, form.NumberOfTickets)
	assert.Equal(t, "135.00", form.TotalPrice.StringFixed(2))
	assert.Equal(t, 40, form.AvailableTickets)
}

func TestOrderFormWithoutMemberCard(t *testing.T) {
	store := &fakeOfferStore{offer: model.TicketOffer{
		ID: 5, TicketType: "Staanplaats", NumTickets: 10, Price: price("85.00"),
	}}
	svc := NewTicketOfferService(store)

	form, err := svc.OrderFormFor(context.Background(), 5, false)
	require.NoError(t, err)
	assert.False(t, form.DiscountApplied)
	assert.Equal(t, "85.00", form.PricePerTicket.StringFixed(2))
}

func TestOrderFormOfferMissing(t *testing.T) {
	svc := NewTicketOfferService(&fakeOfferStore{getErr: sql.ErrNoRows})

	_, err := svc.OrderFormFor(context.Background(), 5, false)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestSetInventory(t *testing.T) {
	store := &fakeOfferStore{}
	svc := NewTicketOfferService(store)

	require.NoError(t, svc.SetInventory(context.Background(), 5, 250))
	require.NotNil(t, store.updatedTo)
	assert.Equal(t, 250, *store.updatedTo)
	assert.Equal(t, uint64(5), store.updatedFor)
}

func TestSetInventoryRejectsNegative(t *testing.T) {
	svc := NewTicketOfferService(&fakeOfferStore{})
	assert.ErrorIs(t, svc.SetInventory(context.Background(), 5, -1), ErrInvalidQuantity)
}

func TestSetInventoryUnknownOffer(t *testing.T) {
	svc := NewTicketOfferService(&fakeOfferStore{updateErr: sql.ErrNoRows})
	assert.ErrorIs(t, svc.SetInventory(context.Background(), 5, 10), ErrOfferNotFound)
}
