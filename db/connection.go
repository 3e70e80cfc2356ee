package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect opens the Supabase Postgres pool and makes sure the
// player_registrations table exists.
func Connect(databaseURL string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := ensureSchema(conn); err != nil {
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return conn, nil
}

func ensureSchema(conn *sql.DB) error {
	// Registration rows are created by the intake form; the table is
	// bootstrapped here only so a fresh database works out of the box.
	registrationTable := `
	CREATE TABLE IF NOT EXISTS player_registrations (
		id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		phone TEXT,
		status TEXT DEFAULT 'pending',
		payment_status TEXT DEFAULT 'pending',
		payment_amount REAL,
		razorpay_payment_id TEXT,
		razorpay_order_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := conn.Exec(registrationTable); err != nil {
		return fmt.Errorf("error creating player_registrations table: %w", err)
	}

	return nil
}
