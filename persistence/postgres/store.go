package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	DSN string
}

type baseDao struct {
	pool *pgxpool.Pool
}

// NewPool connects to the backing postgres instance. The schema is owned by
// the hosted backend, this module only issues CRUD statements against it.
func NewPool(conf Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), conf.DSN)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
