// Package repository is the PostgreSQL storage of the backend.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage holds the database handle.
type Storage struct {
	DB *sql.DB
}

// New opens the database and checks the connection.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping reports whether the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close closes the database handle.
func (s *Storage) Close() error {
	return s.DB.Close()
}
