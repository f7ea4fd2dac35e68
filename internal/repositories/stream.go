package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

// StreamRepository is the durable [models.Registry] backed by the streams table.
//
// Add always inserts: registering the same name and url twice yields two rows.
type StreamRepository struct {
	db *sql.DB
}

// NewStreamRepository creates a new [StreamRepository] with the given database connection
func NewStreamRepository(db *sql.DB) *StreamRepository {
	return &StreamRepository{db: db}
}

// Add inserts a new row and returns it with its id and creation time.
func (r *StreamRepository) Add(ctx context.Context, name, url string) (*models.StreamEntry, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: url is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `INSERT INTO streams (name, url, created_at) VALUES (?, ?, ?)`, name, url, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert stream: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get stream id: %w", err)
	}

	return &models.StreamEntry{ID: id, Name: name, URL: url, CreatedAt: now}, nil
}

// Get retrieves a stream by row id.
func (r *StreamRepository) Get(ctx context.Context, id int64) (*models.StreamEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, url, created_at FROM streams WHERE id = ?`, id)

	entry, err := scanStream(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", shared.ErrStreamNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query stream: %w", err)
	}

	return entry, nil
}

// GetByName retrieves the first stream registered under name.
func (r *StreamRepository) GetByName(ctx context.Context, name string) (*models.StreamEntry, error) {
	query := `
		SELECT id, name, url, created_at
		FROM streams
		WHERE name = ?
		ORDER BY id ASC
		LIMIT 1
	`

	entry, err := scanStream(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: name %q", shared.ErrStreamNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query stream: %w", err)
	}

	return entry, nil
}

// List returns every stream ordered by id.
func (r *StreamRepository) List(ctx context.Context) ([]*models.StreamEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, url, created_at FROM streams ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query streams: %w", err)
	}
	defer rows.Close()

	entries := []*models.StreamEntry{}
	for rows.Next() {
		entry, err := scanStream(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stream: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}
