package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"scorebet/domain/entities"
)

// pendingBetRepository implements pending-bet data access over the memory
// store. List results are ordered by (created, id), the FIFO order the
// matcher depends on for a deterministic match sequence.
type pendingBetRepository struct {
	store *MemoryStore
}

// Create inserts a new pending bet and assigns its identity
func (r *pendingBetRepository) Create(ctx context.Context, bet *entities.PendingBet) error {
	if _, exists := r.store.pendingBetsByUUID[bet.UUID]; exists {
		return entities.NewReplayErrorf("pending bet with uuid '%s' already exists", bet.UUID)
	}
	bet.ID = r.store.nextPendingBetID
	r.store.nextPendingBetID++
	copied := *bet
	r.store.pendingBets[bet.ID] = &copied
	r.store.pendingBetsByUUID[bet.UUID] = bet.ID
	return nil
}

// GetByUUID retrieves a pending bet by its UUID, nil when absent
func (r *pendingBetRepository) GetByUUID(ctx context.Context, betUUID uuid.UUID) (*entities.PendingBet, error) {
	id, ok := r.store.pendingBetsByUUID[betUUID]
	if !ok {
		return nil, nil
	}
	copied := *r.store.pendingBets[id]
	return &copied, nil
}

// ExistsByUUID checks whether a pending bet with this UUID exists
func (r *pendingBetRepository) ExistsByUUID(ctx context.Context, betUUID uuid.UUID) (bool, error) {
	_, ok := r.store.pendingBetsByUUID[betUUID]
	return ok, nil
}

// Update persists a mutated pending bet
func (r *pendingBetRepository) Update(ctx context.Context, bet *entities.PendingBet) error {
	if _, ok := r.store.pendingBets[bet.ID]; !ok {
		return entities.NewPreconditionErrorf("pending bet '%s' does not exist", bet.UUID)
	}
	copied := *bet
	r.store.pendingBets[bet.ID] = &copied
	return nil
}

// Delete removes a pending bet
func (r *pendingBetRepository) Delete(ctx context.Context, id int64) error {
	bet, ok := r.store.pendingBets[id]
	if !ok {
		return entities.NewPreconditionErrorf("pending bet with id %d does not exist", id)
	}
	delete(r.store.pendingBetsByUUID, bet.UUID)
	delete(r.store.pendingBets, id)
	return nil
}

// ListByGame returns all pending bets on a game in (created, id) order
func (r *pendingBetRepository) ListByGame(ctx context.Context, gameUUID uuid.UUID) ([]*entities.PendingBet, error) {
	return r.list(func(bet *entities.PendingBet) bool {
		return bet.GameUUID == gameUUID
	}), nil
}

// ListByGameAndWincase returns pending bets on a game carrying the given
// wincase, in (created, id) order
func (r *pendingBetRepository) ListByGameAndWincase(ctx context.Context, gameUUID uuid.UUID,
	wincase entities.Wincase) ([]*entities.PendingBet, error) {
	return r.list(func(bet *entities.PendingBet) bool {
		return bet.GameUUID == gameUUID && bet.Wincase == wincase
	}), nil
}

func (r *pendingBetRepository) list(keep func(*entities.PendingBet) bool) []*entities.PendingBet {
	var bets []*entities.PendingBet
	for _, bet := range r.store.pendingBets {
		if keep(bet) {
			copied := *bet
			bets = append(bets, &copied)
		}
	}
	sort.Slice(bets, func(i, j int) bool {
		if !bets[i].CreatedAt.Equal(bets[j].CreatedAt) {
			return bets[i].CreatedAt.Before(bets[j].CreatedAt)
		}
		return bets[i].ID < bets[j].ID
	})
	return bets
}
