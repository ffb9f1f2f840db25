package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/catalog"
)

// InMemoryViewHistory implements catalog.ViewHistory in process memory.
// Suitable for testing and single-instance development setups.
type InMemoryViewHistory struct {
	mu      sync.RWMutex
	byUser  map[string][]uuid.UUID
	maxSize int
}

// NewInMemoryViewHistory creates a new in-memory view history
func NewInMemoryViewHistory() *InMemoryViewHistory {
	return &InMemoryViewHistory{
		byUser:  make(map[string][]uuid.UUID),
		maxSize: historyMaxLength,
	}
}

// RecordView moves the variant to the head of the user's history
func (s *InMemoryViewHistory) RecordView(_ context.Context, userID string, variantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.byUser[userID]
	history := make([]uuid.UUID, 0, len(existing)+1)
	history = append(history, variantID)
	for _, id := range existing {
		if id != variantID {
			history = append(history, id)
		}
	}
	if len(history) > s.maxSize {
		history = history[:s.maxSize]
	}
	s.byUser[userID] = history
	return nil
}

// RecentVariantIDs returns up to limit variant ids, most recent first
func (s *InMemoryViewHistory) RecentVariantIDs(_ context.Context, userID string, limit int) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.byUser[userID]
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}

	ids := make([]uuid.UUID, len(history))
	copy(ids, history)
	return ids, nil
}

// Ensure InMemoryViewHistory implements ViewHistory
var _ catalog.ViewHistory = (*InMemoryViewHistory)(nil)
