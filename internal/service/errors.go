package service

import (
	"errors"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
)

var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrUnauthorized = errors.New("admin key required")
)

func requireAdmin(admin pool.AdminContext) error {
	if !admin.Granted() {
		return ErrUnauthorized
	}
	return nil
}
