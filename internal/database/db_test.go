package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"concert-tickets/internal/config"
)

func TestDSNWithPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "app", DBPass: "s3cret",
		DBHost: "db.internal", DBPort: "3306", DBName: "tickets",
		DBMaxOpenConns: 25, DBMaxIdleConns: 10, DBConnLifetime: 30 * time.Minute,
	}
	assert.Equal(t,
		"app:s3cret@tcp(db.internal:3306)/tickets?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "root",
		DBHost: "127.0.0.1", DBPort: "3307", DBName: "tickets_test",
	}
	got := dsn(cfg)
	assert.Equal(t,
		"root@tcp(127.0.0.1:3307)/tickets_test?charset=utf8mb4&parseTime=true&loc=UTC",
		got)
	assert.NotContains(t, got, ":@", "empty password must not leave a dangling colon")
}
