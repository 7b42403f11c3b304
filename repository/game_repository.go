package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"scorebet/domain/entities"
)

// gameRepository implements game data access over the memory store. Reads
// hand out copies so callers mutate freely and persist through Update.
type gameRepository struct {
	store *MemoryStore
}

// Create inserts a new game and assigns its identity
func (r *gameRepository) Create(ctx context.Context, game *entities.Game) error {
	if _, exists := r.store.gamesByUUID[game.UUID]; exists {
		return entities.NewReplayErrorf("game with uuid '%s' already exists", game.UUID)
	}
	game.ID = r.store.nextGameID
	r.store.nextGameID++
	r.store.games[game.ID] = copyGame(game)
	r.store.gamesByUUID[game.UUID] = game.ID
	return nil
}

// GetByUUID retrieves a game by its UUID, nil when absent
func (r *gameRepository) GetByUUID(ctx context.Context, gameUUID uuid.UUID) (*entities.Game, error) {
	id, ok := r.store.gamesByUUID[gameUUID]
	if !ok {
		return nil, nil
	}
	return copyGame(r.store.games[id]), nil
}

// ExistsByUUID checks whether a game with this UUID currently exists
func (r *gameRepository) ExistsByUUID(ctx context.Context, gameUUID uuid.UUID) (bool, error) {
	_, ok := r.store.gamesByUUID[gameUUID]
	return ok, nil
}

// Update persists a mutated game
func (r *gameRepository) Update(ctx context.Context, game *entities.Game) error {
	if _, ok := r.store.games[game.ID]; !ok {
		return entities.NewPreconditionErrorf("game '%s' does not exist", game.UUID)
	}
	r.store.games[game.ID] = copyGame(game)
	return nil
}

// ListToStart returns created games whose scheduled start is at or before
// startTime, ordered by id for determinism
func (r *gameRepository) ListToStart(ctx context.Context, startTime time.Time) ([]*entities.Game, error) {
	var due []*entities.Game
	for _, game := range r.store.games {
		if !game.IsCreated() {
			continue
		}
		if game.StartTime.After(startTime) {
			continue
		}
		due = append(due, copyGame(game))
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due, nil
}

// ListToAutoResolve returns non-terminal games whose auto-resolve deadline
// is at or before resolveTime, ordered by id for determinism
func (r *gameRepository) ListToAutoResolve(ctx context.Context, resolveTime time.Time) ([]*entities.Game, error) {
	var due []*entities.Game
	for _, game := range r.store.games {
		if game.IsTerminal() {
			continue
		}
		if game.AutoResolveTime().After(resolveTime) {
			continue
		}
		due = append(due, copyGame(game))
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due, nil
}
