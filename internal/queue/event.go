// Package queue defines the message payloads exchanged over the broker
// plus the publisher and background consumer for them.
package queue

// OrderPlacedEvent is published when a purchase commits.  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type OrderPlacedEvent struct {
	OrderID         uint64 `json:"order_id"`
	UserID          uint64 `json:"user_id"`
	TicketOfferID   uint64 `json:"ticket_offer_id"`
	TicketType      string `json:"ticket_type"`
	NumTickets      int    `json:"num_tickets"`
	TotalPrice      string `json:"total_price"`
	DiscountApplied bool   `json:"discount_applied"`
	PlacedAt        string `json:"placed_at"`
	ConcertArtist   string `json:"concert_artist"`
	ConcertLocation string `json:"concert_location"`
	ConcertDate     string `json:"concert_date"`
}
