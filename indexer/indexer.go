// Package indexer mirrors core betting events into Postgres. It is one of
// the off-chain observers behind the event boundary: the deterministic core
// publishes fire-and-forget and never waits on the index.
package indexer

import (
	"context"

	log "github.com/sirupsen/logrus"

	"scorebet/domain/entities"
	"scorebet/domain/events"
)

// Indexer consumes core events off the bus and writes the query index
type Indexer struct {
	repo *Repository
}

// NewIndexer creates a new event-driven indexer
func NewIndexer(repo *Repository) *Indexer {
	return &Indexer{repo: repo}
}

// Publish applies one event to the index. Errors are returned to the bus,
// which logs and drops them; the index is a best-effort mirror.
func (i *Indexer) Publish(event events.Event) error {
	ctx := context.Background()

	switch e := event.(type) {
	case events.GameCreatedEvent:
		return i.repo.UpsertGame(ctx, e.GameUUID, e.Moderator, entities.GameStatusCreated, e)
	case events.GameStartedEvent:
		return i.repo.UpdateGameStatus(ctx, e.GameUUID, entities.GameStatusStarted)
	case events.GameMarketsUpdatedEvent:
		return i.repo.UpdateGameMarkets(ctx, e.GameUUID, e.NewMarkets)
	case events.GameFinishedEvent:
		return i.repo.FinishGame(ctx, e.GameUUID, e.Wincases)
	case events.GameCancelledEvent:
		return i.repo.UpdateGameStatus(ctx, e.GameUUID, entities.GameStatusCancelled)
	case events.BetMatchedEvent:
		return i.repo.InsertMatchedBet(ctx, e)
	case events.BetsCancelledEvent:
		return i.repo.InsertCancelledBets(ctx, e.GameUUID, e.Bets)
	default:
		log.WithField("event", event.Type()).Debug("event not indexed")
	}
	return nil
}
