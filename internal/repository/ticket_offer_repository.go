package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"concert-tickets/internal/model"
)

// TicketOfferRepo encapsulates database operations for ticket offers.
// The inventory decrement used during order placement is expressed as a
// conditional UPDATE so the num_tickets >= quantity guard is evaluated
// atomically by the database.
type TicketOfferRepo struct{ DB *sql.DB }

func NewTicketOfferRepo(db *sql.DB) *TicketOfferRepo { return &TicketOfferRepo{DB: db} }

const offerCols = `id, concert_id, ticket_type, num_tickets, price, created_at, updated_at`

func scanOffer(s interface{ Scan(...interface{}) error }) (model.TicketOffer, error) {
	var o model.TicketOffer
	err := s.Scan(&o.ID, &o.ConcertID, &o.TicketType, &o.NumTickets, &o.Price, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// Create inserts a ticket offer and populates the generated ID.
func (r *TicketOfferRepo) Create(ctx context.Context, o *model.TicketOffer) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO ticket_offers (concert_id, ticket_type, num_tickets, price) VALUES (?,?,?,?)",
		o.ConcertID, o.TicketType, o.NumTickets, o.Price)
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

// GetByID returns a single offer without its concert.
func (r *TicketOfferRepo) GetByID(ctx context.Context, id uint64) (model.TicketOffer, error) {
	return scanOffer(r.DB.QueryRowContext(ctx,
		"SELECT "+offerCols+" FROM ticket_offers WHERE id=? LIMIT 1", id))
}

// GetWithConcert returns an offer joined with its parent concert.  The
// join is an inner join: an offer whose concert vanished mid-request is
// reported as sql.ErrNoRows like an absent offer.
func (r *TicketOfferRepo) GetWithConcert(ctx context.Context, id uint64) (model.TicketOffer, error) {
	var (
		o model.TicketOffer
		c model.Concert
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT o.id, o.concert_id, o.ticket_type, o.num_tickets, o.price, o.created_at, o.updated_at,
		        c.id, c.artist, c.location, c.date, c.created_at, c.updated_at
		 FROM ticket_offers o
		 JOIN concerts c ON c.id = o.concert_id
		 WHERE o.id = ?`, id).Scan(
		&o.ID, &o.ConcertID, &o.TicketType, &o.NumTickets, &o.Price, &o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Artist, &c.Location, &c.Date, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.TicketOffer{}, err
	}
	o.Concert = &c
	return o, nil
}

// ListWithConcerts returns all offers with their parent concerts, for
// the back-office overview.
func (r *TicketOfferRepo) ListWithConcerts(ctx context.Context) ([]model.TicketOffer, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT o.id, o.concert_id, o.ticket_type, o.num_tickets, o.price, o.created_at, o.updated_at,
		        c.id, c.artist, c.location, c.date, c.created_at, c.updated_at
		 FROM ticket_offers o
		 JOIN concerts c ON c.id = o.concert_id
		 ORDER BY c.date, o.price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	offers := make([]model.TicketOffer, 0)
	for rows.Next() {
		var (
			o model.TicketOffer
			c model.Concert
		)
		if err := rows.Scan(
			&o.ID, &o.ConcertID, &o.TicketType, &o.NumTickets, &o.Price, &o.CreatedAt, &o.UpdatedAt,
			&c.ID, &c.Artist, &c.Location, &c.Date, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		o.Concert = &c
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// Update rewrites the mutable offer fields.
func (r *TicketOfferRepo) Update(ctx context.Context, o model.TicketOffer) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ticket_offers SET concert_id=?, ticket_type=?, num_tickets=?, price=? WHERE id=?",
		o.ConcertID, o.TicketType, o.NumTickets, o.Price, o.ID)
	if err != nil {
		return mapFKConflict(err)
	}
	return affectedOrExists(ctx, r.DB, res, "ticket_offers", o.ID)
}

// UpdateNumTickets sets the remaining inventory to an absolute count,
// the back-office restock operation.
func (r *TicketOfferRepo) UpdateNumTickets(ctx context.Context, id uint64, numTickets int) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ticket_offers SET num_tickets=? WHERE id=?", numTickets, id)
	if err != nil {
		return err
	}
	return affectedOrExists(ctx, r.DB, res, "ticket_offers", id)
}

// DecrementTicketsTx subtracts qty from an offer's inventory within the
// given transaction.  The WHERE guard makes oversell impossible: when
// the remaining count is below qty no row matches and
// ErrInsufficientTickets is returned, aborting the caller's transaction.
func (r *TicketOfferRepo) DecrementTicketsTx(ctx context.Context, tx *sql.Tx, id uint64, qty int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE ticket_offers SET num_tickets = num_tickets - ? WHERE id = ? AND num_tickets >= ?",
		qty, id, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientTickets
	}
	return nil
}

// Delete removes an offer.  Offers referenced by orders are protected
// by the RESTRICT foreign key; the driver error maps to ErrConflict.
func (r *TicketOfferRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM ticket_offers WHERE id=?", id)
	if err != nil {
		return mapFKConflict(err)
	}
	return requireRow(res)
}

// mapFKConflict converts MySQL foreign-key violations (1451: delete
// blocked by children, 1452: unknown parent) into ErrConflict.
func mapFKConflict(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && (me.Number == 1451 || me.Number == 1452) {
		return ErrConflict
	}
	return err
}

// affectedOrExists distinguishes "no such row" from "update was a
// no-op" for UPDATE statements: MySQL reports zero affected rows when
// the new values equal the old ones.
func affectedOrExists(ctx context.Context, db *sql.DB, res sql.Result, table string, id uint64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var one int
	return db.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id=? LIMIT 1", id).Scan(&one)
}
