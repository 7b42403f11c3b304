package events

import (
	"time"

	"github.com/google/uuid"

	"scorebet/domain/entities"
)

// EventType represents different types of events emitted by the betting core
type EventType string

const (
	EventTypeGameCreated        EventType = "game_created"
	EventTypeGameStarted        EventType = "game_started"
	EventTypeGameMarketsUpdated EventType = "game_markets_updated"
	EventTypeGameFinished       EventType = "game_finished"
	EventTypeGameCancelled      EventType = "game_cancelled"
	EventTypeBetPlaced          EventType = "bet_placed"
	EventTypeBetMatched         EventType = "bet_matched"
	EventTypeBetsCancelled      EventType = "bets_cancelled"
)

// Event is the base interface for all events. Events are fire-and-forget
// value records handed to a caller-supplied sink; the core never depends on
// delivery confirmation.
type Event interface {
	Type() EventType
}

// GameCreatedEvent announces a freshly created game
type GameCreatedEvent struct {
	GameUUID  uuid.UUID
	Moderator string
	StartTime time.Time
	Markets   []entities.Market
}

func (e GameCreatedEvent) Type() EventType {
	return EventTypeGameCreated
}

// GameStartedEvent announces a game going in play at its scheduled time
type GameStartedEvent struct {
	GameUUID  uuid.UUID
	StartTime time.Time
}

func (e GameStartedEvent) Type() EventType {
	return EventTypeGameStarted
}

// GameMarketsUpdatedEvent announces the replacement of a game's market set
type GameMarketsUpdatedEvent struct {
	GameUUID   uuid.UUID
	OldMarkets []entities.Market
	NewMarkets []entities.Market
}

func (e GameMarketsUpdatedEvent) Type() EventType {
	return EventTypeGameMarketsUpdated
}

// GameFinishedEvent announces posted results; Wincases is the resolved set
type GameFinishedEvent struct {
	GameUUID uuid.UUID
	Wincases []entities.Wincase
}

func (e GameFinishedEvent) Type() EventType {
	return EventTypeGameFinished
}

// GameCancelledEvent announces a withdrawn game
type GameCancelledEvent struct {
	GameUUID uuid.UUID
}

func (e GameCancelledEvent) Type() EventType {
	return EventTypeGameCancelled
}

// BetPlacedEvent announces a new pending bet entering the book
type BetPlacedEvent struct {
	BetUUID  uuid.UUID
	GameUUID uuid.UUID
	Better   string
	Wincase  entities.Wincase
	Odds     entities.Odds
	Stake    int64
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetMatchedEvent is emitted once per MatchedBet created
type BetMatchedEvent struct {
	MatchedBetID int64
	GameUUID     uuid.UUID
	Market       entities.Market
	Bet1UUID     uuid.UUID
	Bet1Better   string
	Bet1Stake    int64
	Bet2UUID     uuid.UUID
	Bet2Better   string
	Bet2Stake    int64
}

func (e BetMatchedEvent) Type() EventType {
	return EventTypeBetMatched
}

// CancelledBet identifies one withdrawn pending bet and the stake the
// external balance service must refund to its owner.
type CancelledBet struct {
	BetUUID uuid.UUID
	Better  string
	Stake   int64
}

// BetsCancelledEvent is emitted once per cancellation sweep, carrying the
// markets that were withdrawn and every pending bet removed because of it.
type BetsCancelledEvent struct {
	GameUUID uuid.UUID
	Markets  []entities.Market
	Bets     []CancelledBet
}

func (e BetsCancelledEvent) Type() EventType {
	return EventTypeBetsCancelled
}
