package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"concert-tickets/internal/model"
	"concert-tickets/internal/monitoring"
	"concert-tickets/internal/queue"
	"concert-tickets/internal/repository"
)

// Sentinel errors surfaced to handlers.  Insufficient inventory reuses
// the repository sentinel because the same condition can be detected
// either by the pre-check or by the conditional decrement.
var (
	ErrOfferNotFound       = errors.New("ticket offer not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidQuantity     = errors.New("quantity out of range")
	ErrInsufficientTickets = repository.ErrInsufficientTickets
)

// TicketOfferStore is the slice of the offer repository the order flow
// needs.  Narrow interfaces keep the service testable with fakes.
type TicketOfferStore interface {
	GetWithConcert(ctx context.Context, id uint64) (model.TicketOffer, error)
	DecrementTicketsTx(ctx context.Context, tx *sql.Tx, id uint64, qty int) error
}

// OrderStore is the slice of the order repository used by the service.
type OrderStore interface {
	CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error
	GetByID(ctx context.Context, id uint64) (model.Order, error)
	GetDetailByID(ctx context.Context, id uint64) (model.OrderDetail, error)
	UpdatePaid(ctx context.Context, id uint64, paid bool) error
}

// UserStore resolves the purchasing user for discount eligibility.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// EventPublisher forwards a domain event to the message broker.  May be
// nil when no broker is configured.
type EventPublisher func(ctx context.Context, ev queue.OrderPlacedEvent) error

// OrderService implements order placement and payment confirmation.
// PlaceOrder wraps the order insert and the inventory decrement in a
// single transaction so a failure of either leaves no state change.
type OrderService struct {
	db      *sql.DB
	orders  OrderStore
	offers  TicketOfferStore
	users   UserStore
	publish EventPublisher
}

// NewOrderService wires the service.  db may not be nil; publish may be.
func NewOrderService(db *sql.DB, orders OrderStore, offers TicketOfferStore, users UserStore, publish EventPublisher) *OrderService {
	if orders == nil || offers == nil || users == nil {
		panic("nil store passed to NewOrderService")
	}
	return &OrderService{db: db, orders: orders, offers: offers, users: users, publish: publish}
}

// PlaceOrderInput carries the validated purchase request.
type PlaceOrderInput struct {
	TicketOfferID uint64
	UserID        uint64
	Quantity      int
}

// PlaceOrder attempts to create an order and returns the new order ID.
//
// Flow: load the offer with its concert, reject quantities beyond the
// remaining inventory, load the buyer, compute the discounted unit
// price, then insert the order and decrement the inventory inside one
// transaction.  The decrement re-checks availability in its WHERE
// clause, so two concurrent purchases of the last tickets cannot both
// commit; the loser gets ErrInsufficientTickets.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (uint64, error) {
	if in.Quantity < MinTicketsPerOrder || in.Quantity > MaxTicketsPerOrder {
		monitoring.OrderRejected("invalid_quantity")
		return 0, ErrInvalidQuantity
	}

	offer, err := s.offers.GetWithConcert(ctx, in.TicketOfferID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			monitoring.OrderRejected("offer_not_found")
			return 0, ErrOfferNotFound
		}
		return 0, err
	}
	if offer.NumTickets < in.Quantity {
		monitoring.OrderRejected("insufficient_tickets")
		return 0, ErrInsufficientTickets
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			monitoring.OrderRejected("user_not_found")
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	unit, discountApplied := UnitPrice(offer.Price, user.HasMemberCard)
	order := model.Order{
		UserID:          in.UserID,
		TicketOfferID:   in.TicketOfferID,
		NumTickets:      in.Quantity,
		TotalPrice:      TotalPrice(unit, in.Quantity),
		Paid:            false,
		DiscountApplied: discountApplied,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.offers.DecrementTicketsTx(ctx, tx, in.TicketOfferID, in.Quantity); err != nil {
		if errors.Is(err, ErrInsufficientTickets) {
			monitoring.OrderRejected("insufficient_tickets")
		}
		return 0, err
	}
	if err := s.orders.CreateTx(ctx, tx, &order); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true

	monitoring.OrderPlaced(in.Quantity)
	s.publishPlaced(ctx, order, offer)
	return order.ID, nil
}

// publishPlaced emits the order.placed event.  Broker trouble is logged
// and ignored; the purchase already committed.
func (s *OrderService) publishPlaced(ctx context.Context, o model.Order, offer model.TicketOffer) {
	if s.publish == nil {
		return
	}
	ev := queue.OrderPlacedEvent{
		OrderID:         o.ID,
		UserID:          o.UserID,
		TicketOfferID:   o.TicketOfferID,
		TicketType:      offer.TicketType,
		NumTickets:      o.NumTickets,
		TotalPrice:      o.TotalPrice.StringFixed(2),
		DiscountApplied: o.DiscountApplied,
		PlacedAt:        o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if offer.Concert != nil {
		ev.ConcertArtist = offer.Concert.Artist
		ev.ConcertLocation = offer.Concert.Location
		ev.ConcertDate = offer.Concert.Date.UTC().Format(time.RFC3339)
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("order-service: publish order.placed failed for order %d: %v", o.ID, err)
	}
}

// GetOrder returns the full order projection for the success page.
func (s *OrderService) GetOrder(ctx context.Context, id uint64) (model.OrderDetail, error) {
	d, err := s.orders.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.OrderDetail{}, ErrOrderNotFound
		}
		return model.OrderDetail{}, err
	}
	return d, nil
}

// UpdatePaid sets an order's paid flag.  Setting the current value is a
// success without a write, which makes payment confirmation idempotent.
func (s *OrderService) UpdatePaid(ctx context.Context, orderID uint64, paid bool) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.Paid == paid {
		return nil
	}
	return s.orders.UpdatePaid(ctx, orderID, paid)
}

// ConfirmPayment marks an order as paid.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID uint64) error {
	if err := s.UpdatePaid(ctx, orderID, true); err != nil {
		return err
	}
	monitoring.PaymentConfirmed()
	return nil
}
