package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorebet/domain/entities"
	"scorebet/domain/events"
	"scorebet/indexer/testutil"
)

func TestIndexer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	indexer := NewIndexer(NewRepository(testDB.DB))
	ctx := context.Background()

	gameUUID := uuid.New()
	startTime := time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC)
	markets := []entities.Market{
		{Kind: entities.MarketResultHome},
		{Kind: entities.MarketTotal, Threshold: 500},
	}

	gameStatus := func() string {
		var status string
		require.NoError(t, testDB.DB.QueryRow(ctx,
			`SELECT status FROM games WHERE uuid = $1`, gameUUID).Scan(&status))
		return status
	}

	t.Run("game created", func(t *testing.T) {
		require.NoError(t, indexer.Publish(events.GameCreatedEvent{
			GameUUID:  gameUUID,
			Moderator: "moderator",
			StartTime: startTime,
			Markets:   markets,
		}))
		assert.Equal(t, "created", gameStatus())
	})

	t.Run("game created is idempotent", func(t *testing.T) {
		require.NoError(t, indexer.Publish(events.GameCreatedEvent{
			GameUUID:  gameUUID,
			Moderator: "moderator",
			StartTime: startTime,
			Markets:   markets,
		}))

		var count int64
		require.NoError(t, testDB.DB.QueryRow(ctx,
			`SELECT COUNT(*) FROM games WHERE uuid = $1`, gameUUID).Scan(&count))
		assert.Equal(t, int64(1), count)
	})

	t.Run("game started", func(t *testing.T) {
		require.NoError(t, indexer.Publish(events.GameStartedEvent{
			GameUUID:  gameUUID,
			StartTime: startTime,
		}))
		assert.Equal(t, "started", gameStatus())
	})

	t.Run("markets updated", func(t *testing.T) {
		require.NoError(t, indexer.Publish(events.GameMarketsUpdatedEvent{
			GameUUID:   gameUUID,
			OldMarkets: markets,
			NewMarkets: markets[:1],
		}))

		var payload []byte
		require.NoError(t, testDB.DB.QueryRow(ctx,
			`SELECT markets FROM games WHERE uuid = $1`, gameUUID).Scan(&payload))
		assert.JSONEq(t, `[{"kind":"result_home"}]`, string(payload))
	})

	t.Run("matched bet recorded once", func(t *testing.T) {
		event := events.BetMatchedEvent{
			MatchedBetID: 1,
			GameUUID:     gameUUID,
			Market:       markets[0],
			Bet1UUID:     uuid.New(),
			Bet1Better:   "alice",
			Bet1Stake:    100,
			Bet2UUID:     uuid.New(),
			Bet2Better:   "bob",
			Bet2Stake:    100,
		}
		require.NoError(t, indexer.Publish(event))
		require.NoError(t, indexer.Publish(event))

		count, err := NewRepository(testDB.DB).GetMatchedBetCount(ctx, gameUUID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("cancelled bets recorded", func(t *testing.T) {
		require.NoError(t, indexer.Publish(events.BetsCancelledEvent{
			GameUUID: gameUUID,
			Markets:  markets[1:],
			Bets: []events.CancelledBet{
				{BetUUID: uuid.New(), Better: "alice", Stake: 40},
				{BetUUID: uuid.New(), Better: "bob", Stake: 60},
			},
		}))

		var total int64
		require.NoError(t, testDB.DB.QueryRow(ctx,
			`SELECT COALESCE(SUM(stake), 0) FROM cancelled_bets WHERE game_uuid = $1`, gameUUID).Scan(&total))
		assert.Equal(t, int64(100), total)
	})

	t.Run("game finished", func(t *testing.T) {
		require.NoError(t, indexer.Publish(events.GameFinishedEvent{
			GameUUID: gameUUID,
			Wincases: []entities.Wincase{{Kind: entities.WincaseResultHomeYes}},
		}))
		assert.Equal(t, "finished", gameStatus())
	})

	t.Run("unknown events are ignored", func(t *testing.T) {
		require.NoError(t, indexer.Publish(events.BetPlacedEvent{
			BetUUID:  uuid.New(),
			GameUUID: gameUUID,
			Better:   "alice",
		}))
	})
}
