package indexer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"scorebet/database"
	"scorebet/domain/entities"
	"scorebet/domain/events"
)

// Repository writes the off-chain betting index. It mirrors core events
// into Postgres; the chain state itself never lives here.
type Repository struct {
	db *database.DB
}

// NewRepository creates a new index repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// UpsertGame inserts or refreshes a game row
func (r *Repository) UpsertGame(ctx context.Context, gameUUID uuid.UUID, moderator string,
	status entities.GameStatus, event events.GameCreatedEvent) error {
	markets, err := json.Marshal(event.Markets)
	if err != nil {
		return fmt.Errorf("failed to marshal markets: %w", err)
	}

	query := `
		INSERT INTO games (uuid, moderator, status, start_time, markets)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (uuid) DO UPDATE
		SET moderator = EXCLUDED.moderator,
		    status = EXCLUDED.status,
		    start_time = EXCLUDED.start_time,
		    markets = EXCLUDED.markets,
		    updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, gameUUID, moderator, status, event.StartTime, markets); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}
	return nil
}

// UpdateGameMarkets replaces a game row's market set
func (r *Repository) UpdateGameMarkets(ctx context.Context, gameUUID uuid.UUID, markets []entities.Market) error {
	payload, err := json.Marshal(markets)
	if err != nil {
		return fmt.Errorf("failed to marshal markets: %w", err)
	}

	query := `UPDATE games SET markets = $2, updated_at = now() WHERE uuid = $1`
	if _, err := r.db.Exec(ctx, query, gameUUID, payload); err != nil {
		return fmt.Errorf("failed to update game markets: %w", err)
	}
	return nil
}

// FinishGame marks a game finished and records its resolved wincases
func (r *Repository) FinishGame(ctx context.Context, gameUUID uuid.UUID, wincases []entities.Wincase) error {
	payload, err := json.Marshal(wincases)
	if err != nil {
		return fmt.Errorf("failed to marshal wincases: %w", err)
	}

	query := `UPDATE games SET status = $2, wincases = $3, updated_at = now() WHERE uuid = $1`
	if _, err := r.db.Exec(ctx, query, gameUUID, entities.GameStatusFinished, payload); err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}
	return nil
}

// UpdateGameStatus sets a game row's lifecycle status
func (r *Repository) UpdateGameStatus(ctx context.Context, gameUUID uuid.UUID, status entities.GameStatus) error {
	query := `UPDATE games SET status = $2, updated_at = now() WHERE uuid = $1`
	if _, err := r.db.Exec(ctx, query, gameUUID, status); err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	return nil
}

// InsertMatchedBet records one trade
func (r *Repository) InsertMatchedBet(ctx context.Context, event events.BetMatchedEvent) error {
	market, err := json.Marshal(event.Market)
	if err != nil {
		return fmt.Errorf("failed to marshal market: %w", err)
	}

	query := `
		INSERT INTO matched_bets (
			id, game_uuid, market,
			bet1_uuid, bet1_better, bet1_stake,
			bet2_uuid, bet2_better, bet2_stake
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.db.Exec(ctx, query,
		event.MatchedBetID,
		event.GameUUID,
		market,
		event.Bet1UUID,
		event.Bet1Better,
		event.Bet1Stake,
		event.Bet2UUID,
		event.Bet2Better,
		event.Bet2Stake,
	)
	if err != nil {
		return fmt.Errorf("failed to insert matched bet: %w", err)
	}
	return nil
}

// InsertCancelledBets records a cancellation sweep's refunds
func (r *Repository) InsertCancelledBets(ctx context.Context, gameUUID uuid.UUID, bets []events.CancelledBet) error {
	query := `
		INSERT INTO cancelled_bets (bet_uuid, game_uuid, better, stake)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (bet_uuid) DO NOTHING
	`
	for _, bet := range bets {
		if _, err := r.db.Exec(ctx, query, bet.BetUUID, gameUUID, bet.Better, bet.Stake); err != nil {
			return fmt.Errorf("failed to insert cancelled bet: %w", err)
		}
	}
	return nil
}

// GetMatchedBetCount returns the number of indexed trades for a game
func (r *Repository) GetMatchedBetCount(ctx context.Context, gameUUID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM matched_bets WHERE game_uuid = $1`
	if err := r.db.QueryRow(ctx, query, gameUUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matched bets: %w", err)
	}
	return count, nil
}
