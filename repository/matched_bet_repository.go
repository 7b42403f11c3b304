package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"scorebet/domain/entities"
)

// matchedBetRepository implements the append-only trade ledger over the
// memory store. Records are never updated or deleted.
type matchedBetRepository struct {
	store *MemoryStore
}

// Create inserts a new matched bet and assigns its identity
func (r *matchedBetRepository) Create(ctx context.Context, bet *entities.MatchedBet) error {
	bet.ID = r.store.nextMatchedBetID
	r.store.nextMatchedBetID++
	copied := *bet
	r.store.matchedBets[bet.ID] = &copied
	return nil
}

// GetByID retrieves a matched bet by its ID, nil when absent
func (r *matchedBetRepository) GetByID(ctx context.Context, id int64) (*entities.MatchedBet, error) {
	bet, ok := r.store.matchedBets[id]
	if !ok {
		return nil, nil
	}
	copied := *bet
	return &copied, nil
}

// ListByGame returns all matched bets on a game ordered by id
func (r *matchedBetRepository) ListByGame(ctx context.Context, gameUUID uuid.UUID) ([]*entities.MatchedBet, error) {
	var bets []*entities.MatchedBet
	for _, bet := range r.store.matchedBets {
		if bet.GameUUID == gameUUID {
			copied := *bet
			bets = append(bets, &copied)
		}
	}
	sort.Slice(bets, func(i, j int) bool { return bets[i].ID < bets[j].ID })
	return bets, nil
}
