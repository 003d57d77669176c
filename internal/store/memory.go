package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/scx/internal/shared"
)

// MemoryStore keeps preferences in a map. Values are lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

// GetPreference returns the stored value, or def when none is set.
func (m *MemoryStore) GetPreference(ctx context.Context, user, key, def string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.values[user][key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *MemoryStore) SetPreference(ctx context.Context, user, key, value string) error {
	if user == "" || key == "" {
		return fmt.Errorf("%w: user and key are required", shared.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prefs, ok := m.values[user]
	if !ok {
		prefs = make(map[string]string)
		m.values[user] = prefs
	}
	prefs[key] = value
	return nil
}

func (m *MemoryStore) Close() error { return nil }
