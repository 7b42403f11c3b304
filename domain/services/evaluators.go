package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scorebet/domain/entities"
	"scorebet/domain/interfaces"
	"scorebet/domain/operations"
)

// Evaluators validate operation-issuer authority and game-status
// preconditions, then delegate to the game and betting services. They hold
// no matching or diff logic of their own.

// CreateGameEvaluator applies create_game operations
type CreateGameEvaluator struct {
	accounts interfaces.AccountService
	games    interfaces.GameService
	clock    interfaces.Clock
}

// NewCreateGameEvaluator creates a new create game evaluator
func NewCreateGameEvaluator(accounts interfaces.AccountService, games interfaces.GameService,
	clock interfaces.Clock) *CreateGameEvaluator {
	return &CreateGameEvaluator{accounts: accounts, games: games, clock: clock}
}

// Apply validates moderator authority and schedules the game
func (e *CreateGameEvaluator) Apply(ctx context.Context, op operations.CreateGameOperation) error {
	if err := e.accounts.CheckAccountExistence(ctx, op.Moderator); err != nil {
		return err
	}
	isModerator, err := e.accounts.IsBettingModerator(ctx, op.Moderator)
	if err != nil {
		return fmt.Errorf("failed to check moderator role: %w", err)
	}
	if !isModerator {
		return entities.NewPreconditionErrorf("account '%s' is not a betting moderator", op.Moderator)
	}
	if !op.StartTime.After(e.clock.Now()) {
		return entities.NewPreconditionErrorf("game start time must be in the future")
	}

	_, err = e.games.CreateGame(ctx, op.UUID, op.Moderator, op.JSONMetadata,
		op.StartTime, op.AutoResolveDelay, op.Markets)
	return err
}

// UpdateGameMarketsEvaluator applies update_game_markets operations
type UpdateGameMarketsEvaluator struct {
	accounts interfaces.AccountService
	gameRepo interfaces.GameRepository
	games    interfaces.GameService
}

// NewUpdateGameMarketsEvaluator creates a new update game markets evaluator
func NewUpdateGameMarketsEvaluator(accounts interfaces.AccountService, gameRepo interfaces.GameRepository,
	games interfaces.GameService) *UpdateGameMarketsEvaluator {
	return &UpdateGameMarketsEvaluator{accounts: accounts, gameRepo: gameRepo, games: games}
}

// Apply checks authority and status, then delegates the market diff
func (e *UpdateGameMarketsEvaluator) Apply(ctx context.Context, op operations.UpdateGameMarketsOperation) error {
	game, err := authorizeGameModerator(ctx, e.accounts, e.gameRepo, op.GameUUID, op.Moderator)
	if err != nil {
		return err
	}
	if game.IsTerminal() {
		return entities.NewPreconditionErrorf("cannot update markets of a %s game", game.Status)
	}
	return e.games.UpdateMarkets(ctx, game, op.Markets)
}

// UpdateGameStartTimeEvaluator applies update_game_start_time operations
type UpdateGameStartTimeEvaluator struct {
	accounts interfaces.AccountService
	gameRepo interfaces.GameRepository
	games    interfaces.GameService
	clock    interfaces.Clock
}

// NewUpdateGameStartTimeEvaluator creates a new update game start time evaluator
func NewUpdateGameStartTimeEvaluator(accounts interfaces.AccountService, gameRepo interfaces.GameRepository,
	games interfaces.GameService, clock interfaces.Clock) *UpdateGameStartTimeEvaluator {
	return &UpdateGameStartTimeEvaluator{accounts: accounts, gameRepo: gameRepo, games: games, clock: clock}
}

// Apply checks authority and moves the scheduled start
func (e *UpdateGameStartTimeEvaluator) Apply(ctx context.Context, op operations.UpdateGameStartTimeOperation) error {
	game, err := authorizeGameModerator(ctx, e.accounts, e.gameRepo, op.GameUUID, op.Moderator)
	if err != nil {
		return err
	}
	if !op.StartTime.After(e.clock.Now()) {
		return entities.NewPreconditionErrorf("game start time must be in the future")
	}
	return e.games.UpdateStartTime(ctx, game, op.StartTime)
}

// CancelGameEvaluator applies cancel_game operations
type CancelGameEvaluator struct {
	accounts interfaces.AccountService
	gameRepo interfaces.GameRepository
	games    interfaces.GameService
}

// NewCancelGameEvaluator creates a new cancel game evaluator
func NewCancelGameEvaluator(accounts interfaces.AccountService, gameRepo interfaces.GameRepository,
	games interfaces.GameService) *CancelGameEvaluator {
	return &CancelGameEvaluator{accounts: accounts, gameRepo: gameRepo, games: games}
}

// Apply checks authority and withdraws the game
func (e *CancelGameEvaluator) Apply(ctx context.Context, op operations.CancelGameOperation) error {
	game, err := authorizeGameModerator(ctx, e.accounts, e.gameRepo, op.GameUUID, op.Moderator)
	if err != nil {
		return err
	}
	return e.games.Cancel(ctx, game)
}

// PostGameResultsEvaluator applies post_game_results operations
type PostGameResultsEvaluator struct {
	accounts interfaces.AccountService
	gameRepo interfaces.GameRepository
	games    interfaces.GameService
}

// NewPostGameResultsEvaluator creates a new post game results evaluator
func NewPostGameResultsEvaluator(accounts interfaces.AccountService, gameRepo interfaces.GameRepository,
	games interfaces.GameService) *PostGameResultsEvaluator {
	return &PostGameResultsEvaluator{accounts: accounts, gameRepo: gameRepo, games: games}
}

// Apply checks authority and posts the resolved wincases
func (e *PostGameResultsEvaluator) Apply(ctx context.Context, op operations.PostGameResultsOperation) error {
	game, err := authorizeGameModerator(ctx, e.accounts, e.gameRepo, op.GameUUID, op.Moderator)
	if err != nil {
		return err
	}
	if !game.IsStarted() {
		return entities.NewPreconditionErrorf("cannot post results for a %s game", game.Status)
	}
	return e.games.Finish(ctx, game, op.Wincases)
}

// PostBetEvaluator applies post_bet operations
type PostBetEvaluator struct {
	accounts interfaces.AccountService
	betting  interfaces.BettingService
}

// NewPostBetEvaluator creates a new post bet evaluator
func NewPostBetEvaluator(accounts interfaces.AccountService, betting interfaces.BettingService) *PostBetEvaluator {
	return &PostBetEvaluator{accounts: accounts, betting: betting}
}

// Apply checks the better's account and places the bet
func (e *PostBetEvaluator) Apply(ctx context.Context, op operations.PostBetOperation) error {
	if err := e.accounts.CheckAccountExistence(ctx, op.Better); err != nil {
		return err
	}
	_, err := e.betting.PlaceBet(ctx, op.UUID, op.Better, op.GameUUID, op.Wincase, op.Odds, op.Stake)
	return err
}

// CancelPendingBetsEvaluator applies cancel_pending_bets operations
type CancelPendingBetsEvaluator struct {
	accounts interfaces.AccountService
	betting  interfaces.BettingService
}

// NewCancelPendingBetsEvaluator creates a new cancel pending bets evaluator
func NewCancelPendingBetsEvaluator(accounts interfaces.AccountService,
	betting interfaces.BettingService) *CancelPendingBetsEvaluator {
	return &CancelPendingBetsEvaluator{accounts: accounts, betting: betting}
}

// Apply checks the owner's account and withdraws the bets
func (e *CancelPendingBetsEvaluator) Apply(ctx context.Context, op operations.CancelPendingBetsOperation) error {
	if err := e.accounts.CheckAccountExistence(ctx, op.Better); err != nil {
		return err
	}
	return e.betting.CancelPendingBets(ctx, op.Better, op.BetUUIDs)
}

// authorizeGameModerator resolves the game and verifies the issuer is its
// moderator or holds the global betting moderator role.
func authorizeGameModerator(ctx context.Context, accounts interfaces.AccountService,
	gameRepo interfaces.GameRepository, gameUUID uuid.UUID, moderator string) (*entities.Game, error) {

	if err := accounts.CheckAccountExistence(ctx, moderator); err != nil {
		return nil, err
	}
	game, err := gameRepo.GetByUUID(ctx, gameUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, entities.NewPreconditionErrorf("game '%s' does not exist", gameUUID)
	}
	if game.Moderator == moderator {
		return game, nil
	}
	isModerator, err := accounts.IsBettingModerator(ctx, moderator)
	if err != nil {
		return nil, fmt.Errorf("failed to check moderator role: %w", err)
	}
	if !isModerator {
		return nil, entities.NewPreconditionErrorf("account '%s' is not authorized to moderate game '%s'", moderator, gameUUID)
	}
	return game, nil
}
