package repository

import (
	"context"

	"github.com/google/uuid"
)

// gameUUIDHistoryRepository tracks every game UUID ever accepted. Entries
// outlive the games themselves, which is what makes replay rejection stick
// after a game is finished or cancelled.
type gameUUIDHistoryRepository struct {
	store *MemoryStore
}

// Contains checks whether the UUID was used before
func (r *gameUUIDHistoryRepository) Contains(ctx context.Context, gameUUID uuid.UUID) (bool, error) {
	_, ok := r.store.usedGameUUIDs[gameUUID]
	return ok, nil
}

// Add records a UUID permanently
func (r *gameUUIDHistoryRepository) Add(ctx context.Context, gameUUID uuid.UUID) error {
	r.store.usedGameUUIDs[gameUUID] = struct{}{}
	return nil
}
