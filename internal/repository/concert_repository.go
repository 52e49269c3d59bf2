package repository

import (
	"context"
	"database/sql"
	"strings"

	"concert-tickets/internal/model"
)

// ConcertRepo encapsulates database operations for concerts.  List
// queries also hydrate each concert's ticket offers so the presentation
// layer can compute remaining-ticket totals without extra round trips.
type ConcertRepo struct{ DB *sql.DB }

func NewConcertRepo(db *sql.DB) *ConcertRepo { return &ConcertRepo{DB: db} }

// Create inserts a concert and populates the generated ID.
func (r *ConcertRepo) Create(ctx context.Context, c *model.Concert) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO concerts (artist, location, date) VALUES (?,?,?)",
		c.Artist, c.Location, c.Date.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID returns a single concert without its offers.  Absent rows
// surface as sql.ErrNoRows.
func (r *ConcertRepo) GetByID(ctx context.Context, id uint64) (model.Concert, error) {
	var c model.Concert
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, artist, location, date, created_at, updated_at FROM concerts WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Artist, &c.Location, &c.Date, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListWithOffers returns all concerts ordered by date, each with its
// ticket offers attached.  Offers are fetched in a single follow-up
// query and joined in memory by concert ID.
func (r *ConcertRepo) ListWithOffers(ctx context.Context) ([]model.Concert, map[uint64][]model.TicketOffer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, artist, location, date, created_at, updated_at FROM concerts ORDER BY date")
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	concerts := make([]model.Concert, 0)
	ids := make([]interface{}, 0)
	for rows.Next() {
		var c model.Concert
		if err := rows.Scan(&c.ID, &c.Artist, &c.Location, &c.Date, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, nil, err
		}
		concerts = append(concerts, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	offersByConcert := make(map[uint64][]model.TicketOffer)
	if len(ids) == 0 {
		return concerts, offersByConcert, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	orows, err := r.DB.QueryContext(ctx,
		`SELECT id, concert_id, ticket_type, num_tickets, price, created_at, updated_at
		 FROM ticket_offers WHERE concert_id IN (`+placeholders+`) ORDER BY concert_id, price`, ids...)
	if err != nil {
		return nil, nil, err
	}
	defer orows.Close()
	for orows.Next() {
		var o model.TicketOffer
		if err := orows.Scan(&o.ID, &o.ConcertID, &o.TicketType, &o.NumTickets, &o.Price, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, nil, err
		}
		offersByConcert[o.ConcertID] = append(offersByConcert[o.ConcertID], o)
	}
	if err := orows.Err(); err != nil {
		return nil, nil, err
	}
	return concerts, offersByConcert, nil
}

// GetWithOffers returns one concert and its ticket offers.
func (r *ConcertRepo) GetWithOffers(ctx context.Context, id uint64) (model.Concert, []model.TicketOffer, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Concert{}, nil, err
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, concert_id, ticket_type, num_tickets, price, created_at, updated_at
		 FROM ticket_offers WHERE concert_id=? ORDER BY price`, id)
	if err != nil {
		return model.Concert{}, nil, err
	}
	defer rows.Close()
	offers := make([]model.TicketOffer, 0)
	for rows.Next() {
		var o model.TicketOffer
		if err := rows.Scan(&o.ID, &o.ConcertID, &o.TicketType, &o.NumTickets, &o.Price, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return model.Concert{}, nil, err
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return model.Concert{}, nil, err
	}
	return c, offers, nil
}

// Update rewrites the mutable concert fields.  sql.ErrNoRows is
// returned when the concert does not exist.
func (r *ConcertRepo) Update(ctx context.Context, c model.Concert) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE concerts SET artist=?, location=?, date=? WHERE id=?",
		c.Artist, c.Location, c.Date.UTC(), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a concert.  The database cascades the delete to its
// ticket offers; offers referenced by orders block the cascade and the
// driver error is mapped to ErrConflict.
func (r *ConcertRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM concerts WHERE id=?", id)
	if err != nil {
		return mapFKConflict(err)
	}
	return requireRow(res)
}

// requireRow converts a zero rows-affected result into sql.ErrNoRows.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
