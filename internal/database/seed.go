package database

import (
	"context"
	"database/sql"
	"log"

	"concert-tickets/internal/utils"
)

// SeedAdmin ensures a back-office account exists with the is_admin flag
// set.  The email/password come from configuration; when either is empty
// seeding is skipped.  Existing accounts only get the flag raised, the
// password is never overwritten.
func SeedAdmin(ctx context.Context, db *sql.DB, email, password string, bcryptCost int) error {
	if email == "" || password == "" {
		log.Printf("seed: admin credentials not configured, skipping admin seed")
		return nil
	}
	var (
		id      uint64
		isAdmin bool
	)
	err := db.QueryRowContext(ctx,
		"SELECT id, is_admin FROM users WHERE email=? LIMIT 1", email).Scan(&id, &isAdmin)
	switch {
	case err == sql.ErrNoRows:
		hash, err := utils.HashPassword(password, bcryptCost)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO users (email, password_hash, first_name, last_name, member_card_number, has_member_card, is_admin)
			 VALUES (?,?,?,?,?,1,1)`,
			email, hash, "Admin", "User", "ODI1234567890")
		if err != nil {
			return err
		}
		log.Printf("seed: admin user %s created", email)
		return nil
	case err != nil:
		return err
	}
	if !isAdmin {
		if _, err := db.ExecContext(ctx, "UPDATE users SET is_admin=1 WHERE id=?", id); err != nil {
			return err
		}
		log.Printf("seed: admin flag raised for existing user %s", email)
	}
	return nil
}

// SeedConcerts populates a fixed initial set of concerts and ticket
// offers on an empty database.  It is a no-op once any concert exists.
func SeedConcerts(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM concerts").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	type offer struct {
		ticketType string
		num        int
		price      string
	}
	seed := []struct {
		artist   string
		location string
		date     string
		offers   []offer
	}{
		{"Taylor Swift", "Koning Boudewijnstadion, Brussel", "2026-06-12 20:00:00", []offer{
			{"Golden Circle", 500, "150.00"},
			{"Staanplaats", 2000, "85.00"},
			{"Zitplaats", 1500, "95.00"},
		}},
		{"Stromae", "Sportpaleis, Antwerpen", "2026-09-03 20:30:00", []offer{
			{"Staanplaats", 1200, "65.00"},
			{"Zitplaats", 800, "75.00"},
		}},
		{"Coldplay", "Koning Boudewijnstadion, Brussel", "2026-07-21 19:30:00", []offer{
			{"Golden Circle", 300, "120.00"},
			{"Staanplaats", 2500, "70.00"},
		}},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, c := range seed {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO concerts (artist, location, date) VALUES (?,?,?)",
			c.artist, c.location, c.date)
		if err != nil {
			return err
		}
		concertID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, o := range c.offers {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO ticket_offers (concert_id, ticket_type, num_tickets, price) VALUES (?,?,?,?)",
				concertID, o.ticketType, o.num, o.price); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	log.Printf("seed: inserted %d concerts with ticket offers", len(seed))
	return nil
}
