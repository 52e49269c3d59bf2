package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketOffer represents a priced ticket tier for one concert as stored
// in the `ticket_offers` table.  NumTickets is the remaining inventory
// counter; it is decremented inside the order-placement transaction and
// must never go negative.  Price is a DECIMAL(18,2) column scanned into
// a decimal.Decimal so money math never touches floats.
//
// Fields:
//  ID         – primary key identifier.
//  ConcertID  – owning concert (FK, ON DELETE CASCADE).
//  TicketType – tier label (e.g. "Golden Circle").
//  NumTickets – remaining ticket count.
//  Price      – listed unit price before any discount.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type TicketOffer struct {
	ID         uint64          `json:"id"`          // ticket_offers.id
	ConcertID  uint64          `json:"concert_id"`  // ticket_offers.concert_id
	TicketType string          `json:"ticket_type"` // ticket_offers.ticket_type
	NumTickets int             `json:"num_tickets"` // ticket_offers.num_tickets
	Price      decimal.Decimal `json:"price"`       // ticket_offers.price
	CreatedAt  time.Time       `json:"created_at"`  // ticket_offers.created_at
	UpdatedAt  time.Time       `json:"updated_at"`  // ticket_offers.updated_at

	// Concert is populated by queries that join the parent concert.
	Concert *Concert `json:"concert,omitempty"`
}
