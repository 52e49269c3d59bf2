package service

import (
	"context"
	"database/sql"
	"errors"

	"concert-tickets/internal/model"
)

// ConcertOverview is a concert plus the aggregate remaining-ticket
// count across its offers, for the public listing.
type ConcertOverview struct {
	model.Concert
	TicketOffers     []model.TicketOffer `json:"ticket_offers"`
	AvailableTickets int                 `json:"available_tickets"`
	SoldOut          bool                `json:"sold_out"`
}

// concertStore is the read access the public projections need.
type concertStore interface {
	ListWithOffers(ctx context.Context) ([]model.Concert, map[uint64][]model.TicketOffer, error)
	GetWithOffers(ctx context.Context, id uint64) (model.Concert, []model.TicketOffer, error)
}

// ErrConcertNotFound is returned for lookups of absent concerts.
var ErrConcertNotFound = errors.New("concert not found")

// ConcertService assembles the public concert projections.
type ConcertService struct {
	concerts concertStore
}

func NewConcertService(concerts concertStore) *ConcertService {
	if concerts == nil {
		panic("nil store passed to NewConcertService")
	}
	return &ConcertService{concerts: concerts}
}

// ListConcerts returns all concerts with offers and availability totals.
func (s *ConcertService) ListConcerts(ctx context.Context) ([]ConcertOverview, error) {
	concerts, offersByConcert, err := s.concerts.ListWithOffers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ConcertOverview, 0, len(concerts))
	for _, c := range concerts {
		out = append(out, buildOverview(c, offersByConcert[c.ID]))
	}
	return out, nil
}

// GetConcert returns one concert with its offers and availability.
func (s *ConcertService) GetConcert(ctx context.Context, id uint64) (ConcertOverview, error) {
	c, offers, err := s.concerts.GetWithOffers(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ConcertOverview{}, ErrConcertNotFound
		}
		return ConcertOverview{}, err
	}
	return buildOverview(c, offers), nil
}

func buildOverview(c model.Concert, offers []model.TicketOffer) ConcertOverview {
	total := 0
	for _, o := range offers {
		total += o.NumTickets
	}
	if offers == nil {
		offers = []model.TicketOffer{}
	}
	return ConcertOverview{
		Concert:          c,
		TicketOffers:     offers,
		AvailableTickets: total,
		SoldOut:          total == 0,
	}
}
