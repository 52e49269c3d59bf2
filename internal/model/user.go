package model

import "time"

// User represents an application account as stored in the `users`
// table.  Authentication credentials (bcrypt hash) live on the same
// row; there is no separate identity framework.  HasMemberCard drives
// the member discount at purchase time.
//
// Fields:
//  ID               – primary key identifier.
//  Email            – unique email address.
//  PasswordHash     – bcrypt hashed password.
//  FirstName        – given name.
//  LastName         – family name.
//  MemberCardNumber – optional card number ("ODI" + 10 digits).
//  HasMemberCard    – whether the 10% member discount applies.
//  IsAdmin          – whether back-office endpoints are accessible.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type User struct {
	ID               uint64    // users.id
	Email            string    // users.email
	PasswordHash     string    // users.password_hash
	FirstName        string    // users.first_name
	LastName         string    // users.last_name
	MemberCardNumber *string   // users.member_card_number (nullable)
	HasMemberCard    bool      // users.has_member_card
	IsAdmin          bool      // users.is_admin
	CreatedAt        time.Time // users.created_at
	UpdatedAt        time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of a token is stored, never the raw value.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
