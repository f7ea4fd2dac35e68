package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
)

// MemoryStreamRepository is the transient [models.Registry]: an ordered list addressed by index.
//
// URLs are unique. Adding a URL that is already present returns the existing entry.
// Nothing survives a restart.
type MemoryStreamRepository struct {
	mu      sync.RWMutex
	entries []models.StreamEntry
}

// NewMemoryStreamRepository creates an empty [MemoryStreamRepository].
func NewMemoryStreamRepository() *MemoryStreamRepository {
	return &MemoryStreamRepository{}
}

// Add appends url unless it is already registered. name is optional.
func (r *MemoryStreamRepository) Add(_ context.Context, name, url string) (*models.StreamEntry, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: url is required", shared.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].URL == url {
			entry := r.entries[i]
			return &entry, nil
		}
	}

	entry := models.StreamEntry{
		ID:        int64(len(r.entries)),
		Name:      name,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
	r.entries = append(r.entries, entry)

	return &entry, nil
}

// Get returns the entry at index id.
func (r *MemoryStreamRepository) Get(_ context.Context, id int64) (*models.StreamEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id < 0 || id >= int64(len(r.entries)) {
		return nil, fmt.Errorf("%w: id %d", shared.ErrStreamNotFound, id)
	}

	entry := r.entries[id]
	return &entry, nil
}

// GetByName returns the first entry registered under name.
func (r *MemoryStreamRepository) GetByName(_ context.Context, name string) (*models.StreamEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if name != "" && r.entries[i].Name == name {
			entry := r.entries[i]
			return &entry, nil
		}
	}

	return nil, fmt.Errorf("%w: name %q", shared.ErrStreamNotFound, name)
}

// List returns a copy of every entry in insertion order.
func (r *MemoryStreamRepository) List(_ context.Context) ([]*models.StreamEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*models.StreamEntry, 0, len(r.entries))
	for i := range r.entries {
		entry := r.entries[i]
		entries = append(entries, &entry)
	}

	return entries, nil
}

// Len returns the number of registered entries.
func (r *MemoryStreamRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
