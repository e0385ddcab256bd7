package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB. postgres:// DSNs use the Postgres driver with
// PreferSimpleProtocol, which disables prepared statement caching to avoid
// 42P05 ("prepared statement already exists") behind connection poolers
// (PgBouncer, Supabase, Render). Anything else is treated as a SQLite file
// path, the default for a single-user local deployment.
func Open(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}
