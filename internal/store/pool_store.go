package store

import (
	"github.com/jmoiron/sqlx"
)

// PoolStore reads and writes entrants, predictions, actual picks and standings.
// Methods taking a *sqlx.Tx run inside the caller's transaction; the rest use the pool directly.
type PoolStore struct {
	db *sqlx.DB
}

func NewPoolStore(db *sqlx.DB) *PoolStore {
	return &PoolStore{db: db}
}
