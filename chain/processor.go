// Package chain wires the evaluators into a sequential deterministic
// state-transition pipeline. One operation is applied to completion,
// including every cascading match and cancellation it triggers, before the
// next is considered.
package chain

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scorebet/domain/interfaces"
	"scorebet/domain/operations"
	"scorebet/domain/services"
	"scorebet/repository"
)

// Processor applies operations against the in-memory chain state. A failed
// operation restores the pre-operation snapshot, so application is
// all-or-nothing and every node rejects it identically.
type Processor struct {
	store  *repository.MemoryStore
	clock  *HeadTimeClock
	games  interfaces.GameService
	events *eventBuffer

	createGame          *services.CreateGameEvaluator
	updateGameMarkets   *services.UpdateGameMarketsEvaluator
	updateGameStartTime *services.UpdateGameStartTimeEvaluator
	cancelGame          *services.CancelGameEvaluator
	postGameResults     *services.PostGameResultsEvaluator
	postBet             *services.PostBetEvaluator
	cancelPendingBets   *services.CancelPendingBetsEvaluator
}

// NewProcessor builds the full evaluator set over the given state, account
// boundary and event sink. Events emitted while an operation runs are
// buffered and reach the sink only once the operation is accepted.
func NewProcessor(store *repository.MemoryStore, clock *HeadTimeClock,
	accounts interfaces.AccountService, eventPublisher interfaces.EventPublisher) *Processor {

	gameRepo := store.Games()
	pendingBetRepo := store.PendingBets()
	matchedBetRepo := store.MatchedBets()
	uuidHistoryRepo := store.GameUUIDHistory()

	buffer := &eventBuffer{sink: eventPublisher}
	matcher := services.NewBettingMatcher(pendingBetRepo, matchedBetRepo, clock, buffer)
	betting := services.NewBettingService(gameRepo, pendingBetRepo, matcher, clock, buffer)
	games := services.NewGameService(gameRepo, uuidHistoryRepo, betting, clock, buffer)

	return &Processor{
		store:  store,
		clock:  clock,
		games:  games,
		events: buffer,

		createGame:          services.NewCreateGameEvaluator(accounts, games, clock),
		updateGameMarkets:   services.NewUpdateGameMarketsEvaluator(accounts, gameRepo, games),
		updateGameStartTime: services.NewUpdateGameStartTimeEvaluator(accounts, gameRepo, games, clock),
		cancelGame:          services.NewCancelGameEvaluator(accounts, gameRepo, games),
		postGameResults:     services.NewPostGameResultsEvaluator(accounts, gameRepo, games),
		postBet:             services.NewPostBetEvaluator(accounts, betting),
		cancelPendingBets:   services.NewCancelPendingBetsEvaluator(accounts, betting),
	}
}

// Apply runs a single operation at the current head time. On failure the
// state is rolled back to the pre-operation snapshot and the error is
// returned; there is no partial application.
func (p *Processor) Apply(ctx context.Context, op operations.Operation) error {
	snapshot := p.store.Snapshot()

	if err := p.dispatch(ctx, op); err != nil {
		p.store.Restore(snapshot)
		p.events.discard()
		return err
	}
	p.events.flush()
	return nil
}

func (p *Processor) dispatch(ctx context.Context, op operations.Operation) error {
	switch typed := op.(type) {
	case operations.CreateGameOperation:
		return p.createGame.Apply(ctx, typed)
	case operations.UpdateGameMarketsOperation:
		return p.updateGameMarkets.Apply(ctx, typed)
	case operations.UpdateGameStartTimeOperation:
		return p.updateGameStartTime.Apply(ctx, typed)
	case operations.CancelGameOperation:
		return p.cancelGame.Apply(ctx, typed)
	case operations.PostGameResultsOperation:
		return p.postGameResults.Apply(ctx, typed)
	case operations.PostBetOperation:
		return p.postBet.Apply(ctx, typed)
	case operations.CancelPendingBetsOperation:
		return p.cancelPendingBets.Apply(ctx, typed)
	}
	return fmt.Errorf("unknown operation type %q", op.Type())
}

// ProcessBlock applies a block's operations at its timestamp. The start
// sweep runs first so results can be posted in the block a game goes in
// play. Operations that fail are rejected deterministically and skipped;
// the block then runs the auto-resolve sweep for games whose deadline
// passed.
func (p *Processor) ProcessBlock(ctx context.Context, blockTime time.Time, ops []operations.Operation) error {
	p.clock.SetHeadTime(blockTime)

	if err := p.games.StartDueGames(ctx, blockTime); err != nil {
		return fmt.Errorf("failed to start due games: %w", err)
	}
	p.events.flush()

	for _, op := range ops {
		if err := p.Apply(ctx, op); err != nil {
			log.WithFields(log.Fields{
				"operation": op.Type(),
				"error":     err,
			}).Warn("operation rejected")
		}
	}

	if err := p.games.AutoResolve(ctx, blockTime); err != nil {
		return fmt.Errorf("failed to auto resolve games: %w", err)
	}
	p.events.flush()
	return nil
}
