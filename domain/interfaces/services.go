package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scorebet/domain/entities"
)

// Clock yields the canonical current time for the in-progress operation.
// All nodes read the same head block time, so every decision keyed on "now"
// is identical across the network.
type Clock interface {
	Now() time.Time
}

// AccountService is the external authority/account boundary. The core only
// consumes its outcomes and never inspects balances or signatures itself.
type AccountService interface {
	// CheckAccountExistence returns a PreconditionError for unknown accounts
	CheckAccountExistence(ctx context.Context, name string) error

	// IsBettingModerator reports whether the account holds the global
	// betting moderator role
	IsBettingModerator(ctx context.Context, name string) (bool, error)
}

// BettingMatcher pairs an incoming bet against compatible pending bets.
// It returns the bets that became fully matched as a result, which may
// include the incoming bet itself.
type BettingMatcher interface {
	Match(ctx context.Context, bet *entities.PendingBet) ([]*entities.PendingBet, error)
}

// BettingService owns the pending-bet side of the book: placement and the
// cancellation paths driven by market reconciliation and game withdrawal.
type BettingService interface {
	// PlaceBet validates and inserts a pending bet, then runs the matcher
	PlaceBet(ctx context.Context, betUUID uuid.UUID, better string, gameUUID uuid.UUID,
		wincase entities.Wincase, odds entities.Odds, stake int64) (*entities.PendingBet, error)

	// CancelBetsByMarkets withdraws every pending bet on the game whose
	// wincase belongs to one of the given markets' complementary pairs
	CancelBetsByMarkets(ctx context.Context, gameUUID uuid.UUID, markets []entities.Market) error

	// CancelBetsByGame withdraws every pending bet on the game
	CancelBetsByGame(ctx context.Context, gameUUID uuid.UUID) error

	// CancelPendingBets withdraws the given still-pending bets of one owner
	CancelPendingBets(ctx context.Context, better string, betUUIDs []uuid.UUID) error
}

// GameService owns the game lifecycle state machine and market
// reconciliation.
type GameService interface {
	// CreateGame registers a game after replay and market-set validation
	CreateGame(ctx context.Context, gameUUID uuid.UUID, moderator, jsonMetadata string,
		startTime time.Time, autoResolveDelay time.Duration, markets []entities.Market) (*entities.Game, error)

	// UpdateMarkets diffs the new set against the current one, cancels bets
	// on withdrawn markets and replaces the set
	UpdateMarkets(ctx context.Context, game *entities.Game, markets []entities.Market) error

	// UpdateStartTime moves the scheduled start of a non-terminal game
	UpdateStartTime(ctx context.Context, game *entities.Game, startTime time.Time) error

	// Finish posts results; permitted only from started
	Finish(ctx context.Context, game *entities.Game, wincases []entities.Wincase) error

	// Cancel withdraws a non-terminal game and all pending bets on it
	Cancel(ctx context.Context, game *entities.Game) error

	// StartDueGames moves every created game whose scheduled start passed
	// into the started state
	StartDueGames(ctx context.Context, now time.Time) error

	// AutoResolve cancels every game whose auto-resolve deadline passed
	// without results
	AutoResolve(ctx context.Context, now time.Time) error
}
