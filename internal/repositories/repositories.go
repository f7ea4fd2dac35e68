// package repositories provides the stream registry and credential storage.
package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

var (
	_ models.Registry      = (*StreamRepository)(nil)
	_ models.Registry      = (*MemoryStreamRepository)(nil)
	_ models.Authenticator = (*UserRepository)(nil)
)

// NewRegistry returns the [models.Registry] selected by backend.
//
// db is only used, and must be non-nil, for [shared.BackendSQLite].
func NewRegistry(backend string, db *sql.DB) (models.Registry, error) {
	switch backend {
	case shared.BackendMemory:
		return NewMemoryStreamRepository(), nil
	case shared.BackendSQLite:
		if db == nil {
			return nil, fmt.Errorf("%w: sqlite registry needs a database", shared.ErrInvalidConfig)
		}
		return NewStreamRepository(db), nil
	default:
		return nil, fmt.Errorf("%w: unknown registry backend %q", shared.ErrInvalidConfig, backend)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStream(s scanner) (*models.StreamEntry, error) {
	var (
		entry     models.StreamEntry
		createdAt sql.NullTime
	)

	if err := s.Scan(&entry.ID, &entry.Name, &entry.URL, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		entry.CreatedAt = createdAt.Time
	}

	return &entry, nil
}
