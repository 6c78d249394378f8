package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Connect opens a Postgres connection pool for databaseURL and verifies it
// with a ping.
func Connect(databaseURL string, maxOpenConns, maxIdleConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
