package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to the hotel MySQL database and verifies the
// connection with a bounded ping.
//
// The DSN is non-negotiable for this codebase: parseTime=true so
// check_in/check_out DATETIMEs scan into time.Time, and loc=UTC so
// those values come back as the UTC midnights the reservation
// repositories stored. Without loc=UTC the half-open range
// comparisons and the dashboard's day windows silently shift by the
// server's zone offset.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Booking requests are short-lived; a modest pool is plenty, and
	// the lifetime cap keeps connections fresh across MySQL restarts.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
