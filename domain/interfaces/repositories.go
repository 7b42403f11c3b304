package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scorebet/domain/entities"
	"scorebet/domain/events"
)

// GameRepository defines the accessor for game state
type GameRepository interface {
	// Create inserts a new game and assigns its identity
	Create(ctx context.Context, game *entities.Game) error

	// GetByUUID retrieves a game by its UUID, nil when absent
	GetByUUID(ctx context.Context, gameUUID uuid.UUID) (*entities.Game, error)

	// ExistsByUUID checks whether a game with this UUID currently exists
	ExistsByUUID(ctx context.Context, gameUUID uuid.UUID) (bool, error)

	// Update persists a mutated game
	Update(ctx context.Context, game *entities.Game) error

	// ListToStart returns created games whose scheduled start is at or
	// before startTime, in deterministic order
	ListToStart(ctx context.Context, startTime time.Time) ([]*entities.Game, error)

	// ListToAutoResolve returns started or created games whose auto-resolve
	// deadline is at or before resolveTime, in deterministic order
	ListToAutoResolve(ctx context.Context, resolveTime time.Time) ([]*entities.Game, error)
}

// GameUUIDHistoryRepository tracks every game UUID ever used, including
// finished and cancelled games, for replay protection
type GameUUIDHistoryRepository interface {
	// Contains checks whether the UUID was used before
	Contains(ctx context.Context, gameUUID uuid.UUID) (bool, error)

	// Add records a UUID permanently
	Add(ctx context.Context, gameUUID uuid.UUID) error
}

// PendingBetRepository defines the accessor for the open-bet collection
type PendingBetRepository interface {
	// Create inserts a new pending bet and assigns its identity
	Create(ctx context.Context, bet *entities.PendingBet) error

	// GetByUUID retrieves a pending bet by its UUID, nil when absent
	GetByUUID(ctx context.Context, betUUID uuid.UUID) (*entities.PendingBet, error)

	// ExistsByUUID checks whether a pending bet with this UUID exists
	ExistsByUUID(ctx context.Context, betUUID uuid.UUID) (bool, error)

	// Update persists a mutated pending bet (stake reduction)
	Update(ctx context.Context, bet *entities.PendingBet) error

	// Delete removes a pending bet (fully matched or cancelled)
	Delete(ctx context.Context, id int64) error

	// ListByGame returns all pending bets on a game ordered by creation
	// time ascending, ties broken by id
	ListByGame(ctx context.Context, gameUUID uuid.UUID) ([]*entities.PendingBet, error)

	// ListByGameAndWincase returns pending bets on a game carrying the given
	// wincase, in the same total order as ListByGame
	ListByGameAndWincase(ctx context.Context, gameUUID uuid.UUID, wincase entities.Wincase) ([]*entities.PendingBet, error)
}

// MatchedBetRepository defines the accessor for the append-only trade ledger
type MatchedBetRepository interface {
	// Create inserts a new matched bet and assigns its identity
	Create(ctx context.Context, bet *entities.MatchedBet) error

	// GetByID retrieves a matched bet by its ID, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.MatchedBet, error)

	// ListByGame returns all matched bets on a game ordered by id
	ListByGame(ctx context.Context, gameUUID uuid.UUID) ([]*entities.MatchedBet, error)
}

// EventPublisher defines the sink the core announces side effects to.
// Publishing is fire-and-forget; the core does not depend on delivery.
type EventPublisher interface {
	Publish(event events.Event) error
}
