package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a user's purchase of N tickets from one ticket offer
// as stored in the `orders` table.  TotalPrice is locked in at purchase
// time (discounted unit price × quantity) and is never recomputed from
// current offer prices.  Paid flips exactly once, false → true, through
// the admin payment confirmation.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – purchasing user (FK).
//  TicketOfferID   – referenced offer (FK, ON DELETE RESTRICT).
//  NumTickets      – purchased quantity.
//  TotalPrice      – server-derived total at purchase time.
//  Paid            – payment status, defaults to false.
//  DiscountApplied – whether the member discount was applied.
//  CreatedAt       – server-side order timestamp.
type Order struct {
	ID              uint64          `json:"id"`               // orders.id
	UserID          uint64          `json:"user_id"`          // orders.user_id
	TicketOfferID   uint64          `json:"ticket_offer_id"`  // orders.ticket_offer_id
	NumTickets      int             `json:"num_tickets"`      // orders.num_tickets
	TotalPrice      decimal.Decimal `json:"total_price"`      // orders.total_price
	Paid            bool            `json:"paid"`             // orders.paid
	DiscountApplied bool            `json:"discount_applied"` // orders.discount_applied
	CreatedAt       time.Time       `json:"created_at"`       // orders.created_at
}

// OrderDetail is the read-side projection of an order joined with its
// offer, concert and buyer.  It backs the order success page and the
// admin order list.
type OrderDetail struct {
	ID              uint64          `json:"id"`
	NumTickets      int             `json:"num_tickets"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Paid            bool            `json:"paid"`
	DiscountApplied bool            `json:"discount_applied"`
	CreatedAt       time.Time       `json:"created_at"`
	TicketType      string          `json:"ticket_type"`
	PricePerTicket  decimal.Decimal `json:"price_per_ticket"`
	ConcertArtist   string          `json:"concert_artist"`
	ConcertLocation string          `json:"concert_location"`
	ConcertDate     time.Time       `json:"concert_date"`
	UserEmail       string          `json:"user_email"`
	UserFullName    string          `json:"user_full_name"`
}
