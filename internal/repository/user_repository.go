package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"concert-tickets/internal/model"
)

// UserRepo provides persistence for application accounts.  Accounts are
// plain rows; credentials and profile data live together and the
// has_member_card flag drives discount eligibility.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NewUserParams carries the fields needed to create an account.  The
// member card number may be empty; HasMemberCard is recorded as given.
type NewUserParams struct {
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	MemberCardNumber string
	HasMemberCard    bool
}

// Create inserts a user and returns its ID.  A duplicate email maps to
// ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, p NewUserParams) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	var card interface{}
	if s := strings.TrimSpace(p.MemberCardNumber); s != "" {
		card = s
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, member_card_number, has_member_card)
		 VALUES (?,?,?,?,?,?)`,
		email, p.PasswordHash, p.FirstName, p.LastName, card, p.HasMemberCard)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userCols = `id, email, password_hash, first_name, last_name, member_card_number, has_member_card, is_admin, created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u    model.User
		card sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&card, &u.HasMemberCard, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if card.Valid {
		s := card.String
		u.MemberCardNumber = &s
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}
