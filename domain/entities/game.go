package entities

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus represents the lifecycle state of a game. Transitions are
// linear (created -> started -> finished); cancelled is reachable from any
// non-terminal state. Finished and cancelled are terminal.
type GameStatus string

const (
	GameStatusCreated   GameStatus = "created"
	GameStatusStarted   GameStatus = "started"
	GameStatusFinished  GameStatus = "finished"
	GameStatusCancelled GameStatus = "cancelled"
)

// Game is a real-world event bets are traded on. The UUID is externally
// assigned and checked against a UUID history so a cancelled game's id can
// never be replayed. Markets is the current tradable set, duplicate-free and
// kept in canonical order.
type Game struct {
	ID               int64         `db:"id"`
	UUID             uuid.UUID     `db:"uuid"`
	Moderator        string        `db:"moderator"`
	JSONMetadata     string        `db:"json_metadata"`
	Status           GameStatus    `db:"status"`
	StartTime        time.Time     `db:"start_time"`
	AutoResolveDelay time.Duration `db:"auto_resolve_delay"`
	Markets          []Market      `db:"markets"`
	Wincases         []Wincase     `db:"wincases"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

// IsCreated checks if the game has not started yet
func (g *Game) IsCreated() bool {
	return g.Status == GameStatusCreated
}

// IsStarted checks if the game is in play
func (g *Game) IsStarted() bool {
	return g.Status == GameStatusStarted
}

// IsFinished checks if results were posted
func (g *Game) IsFinished() bool {
	return g.Status == GameStatusFinished
}

// IsCancelled checks if the game was withdrawn
func (g *Game) IsCancelled() bool {
	return g.Status == GameStatusCancelled
}

// IsTerminal reports whether no further mutation of the game is permitted
func (g *Game) IsTerminal() bool {
	return g.IsFinished() || g.IsCancelled()
}

// AcceptsBets reports whether new bets may still reference this game
func (g *Game) AcceptsBets() bool {
	return g.IsCreated() || g.IsStarted()
}

// AutoResolveTime is the moment an unresolved game gets force-cancelled
func (g *Game) AutoResolveTime() time.Time {
	return g.StartTime.Add(g.AutoResolveDelay)
}

// HasMarket reports whether the market is currently tradable on this game
func (g *Game) HasMarket(m Market) bool {
	return ContainsMarket(g.Markets, m)
}

// HasWincase reports whether the wincase belongs to one of the game's
// current markets.
func (g *Game) HasWincase(w Wincase) bool {
	return g.HasMarket(w.Market())
}
