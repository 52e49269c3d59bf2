package repository

import (
	"context"
	"database/sql"
	"strings"

	"concert-tickets/internal/model"
)

// OrderRepo provides persistence for orders.  Order creation during a
// purchase happens inside the caller's transaction (CreateTx) so that
// the insert and the inventory decrement commit or roll back together.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// CreateTx inserts an order within an existing transaction and
// populates the generated ID and the server-side creation timestamp.
// The caller must commit or roll back.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, ticket_offer_id, num_tickets, total_price, paid, discount_applied)
		 VALUES (?,?,?,?,?,?)`,
		o.UserID, o.TicketOfferID, o.NumTickets, o.TotalPrice, o.Paid, o.DiscountApplied)
	if err != nil {
		return mapFKConflict(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM orders WHERE id=?", o.ID).Scan(&o.CreatedAt)
}

// Create inserts an order outside a purchase transaction.  Used by the
// back-office create form, which supplies the total directly.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO orders (user_id, ticket_offer_id, num_tickets, total_price, paid, discount_applied)
		 VALUES (?,?,?,?,?,?)`,
		o.UserID, o.TicketOfferID, o.NumTickets, o.TotalPrice, o.Paid, o.DiscountApplied)
	if err != nil {
		return mapFKConflict(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// GetByID returns the raw order row.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	var o model.Order
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, ticket_offer_id, num_tickets, total_price, paid, discount_applied, created_at
		 FROM orders WHERE id=? LIMIT 1`, id).Scan(
		&o.ID, &o.UserID, &o.TicketOfferID, &o.NumTickets, &o.TotalPrice,
		&o.Paid, &o.DiscountApplied, &o.CreatedAt)
	return o, err
}

const detailQuery = `SELECT o.id, o.num_tickets, o.total_price, o.paid, o.discount_applied, o.created_at,
	       t.ticket_type, t.price,
	       c.artist, c.location, c.date,
	       u.email, u.first_name, u.last_name
	FROM orders o
	JOIN ticket_offers t ON t.id = o.ticket_offer_id
	JOIN concerts c ON c.id = t.concert_id
	JOIN users u ON u.id = o.user_id`

func scanDetail(s interface{ Scan(...interface{}) error }) (model.OrderDetail, error) {
	var (
		d                model.OrderDetail
		first, last, sep string
	)
	err := s.Scan(&d.ID, &d.NumTickets, &d.TotalPrice, &d.Paid, &d.DiscountApplied, &d.CreatedAt,
		&d.TicketType, &d.PricePerTicket,
		&d.ConcertArtist, &d.ConcertLocation, &d.ConcertDate,
		&d.UserEmail, &first, &last)
	if err != nil {
		return model.OrderDetail{}, err
	}
	if first != "" && last != "" {
		sep = " "
	}
	d.UserFullName = strings.TrimSpace(first + sep + last)
	return d, nil
}

// GetDetailByID returns the order joined with its offer, concert and
// buyer.  Backs the order success page.
func (r *OrderRepo) GetDetailByID(ctx context.Context, id uint64) (model.OrderDetail, error) {
	return scanDetail(r.DB.QueryRowContext(ctx, detailQuery+" WHERE o.id=? LIMIT 1", id))
}

// ListDetails returns all orders with their projections, newest first.
// With onlyUnpaid set, the result is restricted to orders awaiting
// payment confirmation.
func (r *OrderRepo) ListDetails(ctx context.Context, onlyUnpaid bool) ([]model.OrderDetail, error) {
	q := detailQuery
	if onlyUnpaid {
		q += " WHERE o.paid = 0"
	}
	q += " ORDER BY o.created_at DESC, o.id DESC"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.OrderDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// UpdatePaid sets the paid flag.
func (r *OrderRepo) UpdatePaid(ctx context.Context, id uint64, paid bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE orders SET paid=? WHERE id=?", paid, id)
	if err != nil {
		return err
	}
	return affectedOrExists(ctx, r.DB, res, "orders", id)
}

// Update rewrites an order's mutable fields; back-office edit only.
// Purchase-time fields (total, discount flag) are otherwise immutable.
func (r *OrderRepo) Update(ctx context.Context, o model.Order) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET user_id=?, ticket_offer_id=?, num_tickets=?, total_price=?, paid=?, discount_applied=?
		 WHERE id=?`,
		o.UserID, o.TicketOfferID, o.NumTickets, o.TotalPrice, o.Paid, o.DiscountApplied, o.ID)
	if err != nil {
		return mapFKConflict(err)
	}
	return affectedOrExists(ctx, r.DB, res, "orders", o.ID)
}

// Delete removes an order; back-office only.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
