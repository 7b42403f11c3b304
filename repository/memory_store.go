// Package repository holds the chain-state accessors. The canonical state
// lives in memory: the deterministic state-transition pipeline replays the
// same operations on every node, so the store must be synchronous,
// iteration-order stable, and cheap to snapshot for all-or-nothing
// operation application. Durable mirrors (the Postgres indexer) hang off
// the event stream instead.
package repository

import (
	"github.com/google/uuid"

	"scorebet/domain/entities"
	"scorebet/domain/interfaces"
)

// MemoryStore owns the pending-bet, matched-bet and game collections. It is
// mutated exclusively by the core while an operation is in flight; no
// concurrent access is permitted, so it carries no locking.
type MemoryStore struct {
	nextGameID       int64
	nextPendingBetID int64
	nextMatchedBetID int64

	games       map[int64]*entities.Game
	gamesByUUID map[uuid.UUID]int64

	pendingBets       map[int64]*entities.PendingBet
	pendingBetsByUUID map[uuid.UUID]int64

	matchedBets map[int64]*entities.MatchedBet

	usedGameUUIDs map[uuid.UUID]struct{}
}

// NewMemoryStore creates an empty chain state
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextGameID:        1,
		nextPendingBetID:  1,
		nextMatchedBetID:  1,
		games:             make(map[int64]*entities.Game),
		gamesByUUID:       make(map[uuid.UUID]int64),
		pendingBets:       make(map[int64]*entities.PendingBet),
		pendingBetsByUUID: make(map[uuid.UUID]int64),
		matchedBets:       make(map[int64]*entities.MatchedBet),
		usedGameUUIDs:     make(map[uuid.UUID]struct{}),
	}
}

// Games returns the game accessor
func (s *MemoryStore) Games() interfaces.GameRepository {
	return &gameRepository{store: s}
}

// PendingBets returns the pending-bet accessor
func (s *MemoryStore) PendingBets() interfaces.PendingBetRepository {
	return &pendingBetRepository{store: s}
}

// MatchedBets returns the matched-bet accessor
func (s *MemoryStore) MatchedBets() interfaces.MatchedBetRepository {
	return &matchedBetRepository{store: s}
}

// GameUUIDHistory returns the replay-protection accessor
func (s *MemoryStore) GameUUIDHistory() interfaces.GameUUIDHistoryRepository {
	return &gameUUIDHistoryRepository{store: s}
}

// Snapshot captures a deep copy of the whole state. Taken before each
// operation so a failed evaluator leaves state exactly as before the
// attempt.
type Snapshot struct {
	store MemoryStore
}

// Snapshot returns a restorable copy of the current state
func (s *MemoryStore) Snapshot() *Snapshot {
	snap := MemoryStore{
		nextGameID:        s.nextGameID,
		nextPendingBetID:  s.nextPendingBetID,
		nextMatchedBetID:  s.nextMatchedBetID,
		games:             make(map[int64]*entities.Game, len(s.games)),
		gamesByUUID:       make(map[uuid.UUID]int64, len(s.gamesByUUID)),
		pendingBets:       make(map[int64]*entities.PendingBet, len(s.pendingBets)),
		pendingBetsByUUID: make(map[uuid.UUID]int64, len(s.pendingBetsByUUID)),
		matchedBets:       make(map[int64]*entities.MatchedBet, len(s.matchedBets)),
		usedGameUUIDs:     make(map[uuid.UUID]struct{}, len(s.usedGameUUIDs)),
	}
	for id, game := range s.games {
		snap.games[id] = copyGame(game)
	}
	for gameUUID, id := range s.gamesByUUID {
		snap.gamesByUUID[gameUUID] = id
	}
	for id, bet := range s.pendingBets {
		copied := *bet
		snap.pendingBets[id] = &copied
	}
	for betUUID, id := range s.pendingBetsByUUID {
		snap.pendingBetsByUUID[betUUID] = id
	}
	for id, bet := range s.matchedBets {
		copied := *bet
		snap.matchedBets[id] = &copied
	}
	for gameUUID := range s.usedGameUUIDs {
		snap.usedGameUUIDs[gameUUID] = struct{}{}
	}
	return &Snapshot{store: snap}
}

// Restore discards the current state and replaces it with the snapshot
func (s *MemoryStore) Restore(snap *Snapshot) {
	*s = snap.store
}

func copyGame(game *entities.Game) *entities.Game {
	copied := *game
	copied.Markets = append([]entities.Market(nil), game.Markets...)
	copied.Wincases = append([]entities.Wincase(nil), game.Wincases...)
	return &copied
}
