// Package operations defines the value-typed inputs of the deterministic
// state-transition pipeline. One operation is applied to completion before
// the next is considered; evaluators validate them and delegate to the
// domain services.
package operations

import (
	"time"

	"github.com/google/uuid"

	"scorebet/domain/entities"
)

// OperationType discriminates operations on the wire and in replay files
type OperationType string

const (
	OperationTypeCreateGame          OperationType = "create_game"
	OperationTypeUpdateGameMarkets   OperationType = "update_game_markets"
	OperationTypeUpdateGameStartTime OperationType = "update_game_start_time"
	OperationTypeCancelGame          OperationType = "cancel_game"
	OperationTypePostGameResults     OperationType = "post_game_results"
	OperationTypePostBet             OperationType = "post_bet"
	OperationTypeCancelPendingBets   OperationType = "cancel_pending_bets"
)

// Operation is implemented by every operation value
type Operation interface {
	Type() OperationType
}

// CreateGameOperation registers a new game with its initial market set
type CreateGameOperation struct {
	UUID             uuid.UUID         `json:"uuid"`
	Moderator        string            `json:"moderator"`
	JSONMetadata     string            `json:"json_metadata"`
	StartTime        time.Time         `json:"start_time"`
	AutoResolveDelay time.Duration     `json:"auto_resolve_delay"`
	Markets          []entities.Market `json:"markets"`
}

func (op CreateGameOperation) Type() OperationType { return OperationTypeCreateGame }

// UpdateGameMarketsOperation replaces a game's tradable market set
type UpdateGameMarketsOperation struct {
	GameUUID  uuid.UUID         `json:"game_uuid"`
	Moderator string            `json:"moderator"`
	Markets   []entities.Market `json:"markets"`
}

func (op UpdateGameMarketsOperation) Type() OperationType { return OperationTypeUpdateGameMarkets }

// UpdateGameStartTimeOperation moves a not-yet-finished game's start time
type UpdateGameStartTimeOperation struct {
	GameUUID  uuid.UUID `json:"game_uuid"`
	Moderator string    `json:"moderator"`
	StartTime time.Time `json:"start_time"`
}

func (op UpdateGameStartTimeOperation) Type() OperationType {
	return OperationTypeUpdateGameStartTime
}

// CancelGameOperation withdraws a game and all pending bets on it
type CancelGameOperation struct {
	GameUUID  uuid.UUID `json:"game_uuid"`
	Moderator string    `json:"moderator"`
}

func (op CancelGameOperation) Type() OperationType { return OperationTypeCancelGame }

// PostGameResultsOperation fixes the winning wincases of a started game
type PostGameResultsOperation struct {
	GameUUID  uuid.UUID          `json:"game_uuid"`
	Moderator string             `json:"moderator"`
	Wincases  []entities.Wincase `json:"wincases"`
}

func (op PostGameResultsOperation) Type() OperationType { return OperationTypePostGameResults }

// PostBetOperation places a new stake on one wincase of a game's market
type PostBetOperation struct {
	UUID     uuid.UUID        `json:"uuid"`
	Better   string           `json:"better"`
	GameUUID uuid.UUID        `json:"game_uuid"`
	Wincase  entities.Wincase `json:"wincase"`
	Odds     entities.Odds    `json:"odds"`
	Stake    int64            `json:"stake"`
}

func (op PostBetOperation) Type() OperationType { return OperationTypePostBet }

// CancelPendingBetsOperation withdraws the owner's still-pending bets
type CancelPendingBetsOperation struct {
	Better   string      `json:"better"`
	BetUUIDs []uuid.UUID `json:"bet_uuids"`
}

func (op CancelPendingBetsOperation) Type() OperationType { return OperationTypeCancelPendingBets }
