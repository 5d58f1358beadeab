package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Open connects to driver ("postgres" or "sqlite"), checks the connection
// and migrates the schema.
func Open(ctx context.Context, driver, url string) (*sql.DB, *SQLRepository, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case "postgres":
		db, err = sql.Open("postgres", withSSLMode(url))
		if err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
		}
	case "sqlite":
		db, err = sql.Open("sqlite", url)
		if err == nil {
			// one writer avoids SQLITE_BUSY under concurrent saves
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, nil, fmt.Errorf("repo: unknown driver %q", driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("repo: open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("repo: ping %s: %w", driver, err)
	}

	r := NewPostgres(db)
	if driver == "sqlite" {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("repo: enable foreign keys: %w", err)
		}
		r = NewSQLite(db)
	}
	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, r, nil
}

// withSSLMode requires TLS unless the URL chooses an sslmode itself.
func withSSLMode(url string) string {
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		if strings.Contains(url, "?") {
			return url + "&sslmode=require"
		}
		return url + "?sslmode=require"
	}
	return url + " sslmode=require"
}
