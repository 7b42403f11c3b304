package entities

import (
	"time"

	"github.com/google/uuid"
)

// PendingBet is an open, not-yet-fully-matched stake on one wincase of a
// game's market. Stake is the remaining unmatched amount; the matcher
// decrements it on partial fills and the bet is deleted once it hits zero.
type PendingBet struct {
	ID        int64     `db:"id"`
	UUID      uuid.UUID `db:"uuid"`
	Better    string    `db:"better"`
	GameUUID  uuid.UUID `db:"game_uuid"`
	Wincase   Wincase   `db:"wincase"`
	Odds      Odds      `db:"odds"`
	Stake     int64     `db:"stake"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Market returns the market this bet is placed on
func (b *PendingBet) Market() Market {
	return b.Wincase.Market()
}

// IsFullyMatched reports whether the bet has no unmatched stake left
func (b *PendingBet) IsFullyMatched() bool {
	return b.Stake == 0
}

// MatchedBetSide is an immutable snapshot of one contributing bet at the
// moment of pairing. Stake here is the matched portion, not the remainder.
type MatchedBetSide struct {
	BetUUID uuid.UUID `db:"bet_uuid"`
	Better  string    `db:"better"`
	Wincase Wincase   `db:"wincase"`
	Odds    Odds      `db:"odds"`
	Stake   int64     `db:"stake"`
}

// MatchedBet is an immutable record of two opposing bets paired into a
// trade. It is append-only and serves as settlement input when the game
// resolves.
type MatchedBet struct {
	ID        int64          `db:"id"`
	GameUUID  uuid.UUID      `db:"game_uuid"`
	Market    Market         `db:"market"`
	Bet1      MatchedBetSide `db:"bet1"`
	Bet2      MatchedBetSide `db:"bet2"`
	CreatedAt time.Time      `db:"created_at"`
}

// TotalStake returns the combined stake both sides committed to the trade
func (m *MatchedBet) TotalStake() int64 {
	return m.Bet1.Stake + m.Bet2.Stake
}
