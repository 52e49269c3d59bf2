package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"concert-tickets/internal/model"
)

// OrderForm is the read-side projection backing the purchase form: the
// concert being bought, the would-be unit price for this buyer, the
// total for the default quantity of one, and the remaining inventory.
type OrderForm struct {
	ConcertID        uint64          `json:"concert_id"`
	Artist           string          `json:"artist"`
	Location         string          `json:"location"`
	Date             time.Time       `json:"date"`
	TicketOfferID    uint64          `json:"ticket_offer_id"`
	TicketType       string          `json:"ticket_type"`
	PricePerTicket   decimal.Decimal `json:"price_per_ticket"`
	NumberOfTickets  int             `json:"number_of_tickets"`
	HasMemberCard    bool            `json:"has_member_card"`
	DiscountApplied  bool            `json:"discount_applied"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	AvailableTickets int             `json:"available_tickets"`
}

// offerFormStore is the read access the form projection needs.
type offerFormStore interface {
	GetWithConcert(ctx context.Context, id uint64) (model.TicketOffer, error)
	UpdateNumTickets(ctx context.Context, id uint64, numTickets int) error
}

// TicketOfferService computes display pricing for an offer before the
// purchase is submitted, applying the same discount rule as the order
// flow, and carries the back-office inventory update.
type TicketOfferService struct {
	offers offerFormStore
}

func NewTicketOfferService(offers offerFormStore) *TicketOfferService {
	if offers == nil {
		panic("nil store passed to NewTicketOfferService")
	}
	return &TicketOfferService{offers: offers}
}

// OrderFormFor returns the purchase form data for an offer as seen by a
// buyer with the given member-card status.  The quantity defaults to
// one, so the initial total equals the unit price.
func (s *TicketOfferService) OrderFormFor(ctx context.Context, offerID uint64, hasMemberCard bool) (OrderForm, error) {
	offer, err := s.offers.GetWithConcert(ctx, offerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderForm{}, ErrOfferNotFound
		}
		return OrderForm{}, err
	}
	unit, applied := UnitPrice(offer.Price, hasMemberCard)
	form := OrderForm{
		TicketOfferID:    offer.ID,
		TicketType:       offer.TicketType,
		PricePerTicket:   unit,
		NumberOfTickets:  MinTicketsPerOrder,
		HasMemberCard:    hasMemberCard,
		DiscountApplied:  applied,
		TotalPrice:       TotalPrice(unit, MinTicketsPerOrder),
		AvailableTickets: offer.NumTickets,
	}
	if offer.Concert != nil {
		form.ConcertID = offer.Concert.ID
		form.Artist = offer.Concert.Artist
		form.Location = offer.Concert.Location
		form.Date = offer.Concert.Date
	}
	return form, nil
}

// SetInventory updates an offer's remaining ticket count to an absolute
// value; the back-office restock operation.
func (s *TicketOfferService) SetInventory(ctx context.Context, offerID uint64, numTickets int) error {
	if numTickets < 0 {
		return ErrInvalidQuantity
	}
	if err := s.offers.UpdateNumTickets(ctx, offerID, numTickets); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOfferNotFound
		}
		return err
	}
	return nil
}
