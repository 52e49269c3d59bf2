package database

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the application tables when they do not exist.
// Foreign keys encode the lifecycle rules: ticket offers are removed with
// their concert (CASCADE) while offers referenced by orders cannot be
// deleted (RESTRICT).  Money columns are DECIMAL(18,2).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			member_card_number VARCHAR(13) NULL,
			has_member_card TINYINT(1) NOT NULL DEFAULT 0,
			is_admin TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_refresh_tokens_hash (token_hash),
			KEY idx_refresh_tokens_user (user_id),
			CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id)
				REFERENCES users (id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS concerts (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			artist VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL,
			date DATETIME NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS ticket_offers (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			concert_id BIGINT UNSIGNED NOT NULL,
			ticket_type VARCHAR(100) NOT NULL,
			num_tickets INT NOT NULL,
			price DECIMAL(18,2) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_ticket_offers_concert (concert_id),
			CONSTRAINT fk_ticket_offers_concert FOREIGN KEY (concert_id)
				REFERENCES concerts (id) ON DELETE CASCADE,
			CONSTRAINT chk_ticket_offers_num CHECK (num_tickets >= 0)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id BIGINT UNSIGNED NOT NULL,
			ticket_offer_id BIGINT UNSIGNED NOT NULL,
			num_tickets INT NOT NULL,
			total_price DECIMAL(18,2) NOT NULL,
			paid TINYINT(1) NOT NULL DEFAULT 0,
			discount_applied TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_orders_user (user_id),
			KEY idx_orders_offer (ticket_offer_id),
			CONSTRAINT fk_orders_user FOREIGN KEY (user_id)
				REFERENCES users (id),
			CONSTRAINT fk_orders_offer FOREIGN KEY (ticket_offer_id)
				REFERENCES ticket_offers (id) ON DELETE RESTRICT
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
