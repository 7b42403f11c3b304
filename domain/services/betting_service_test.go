package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scorebet/domain/entities"
	"scorebet/domain/events"
	"scorebet/domain/interfaces"
	"scorebet/domain/testhelpers"
)

type bettingServiceFixture struct {
	gameRepo  *testhelpers.MockGameRepository
	betRepo   *testhelpers.MockPendingBetRepository
	matcher   *testhelpers.MockBettingMatcher
	clock     *testhelpers.FakeClock
	publisher *testhelpers.MockEventPublisher
	service   interfaces.BettingService
}

func newBettingServiceFixture() *bettingServiceFixture {
	f := &bettingServiceFixture{
		gameRepo:  new(testhelpers.MockGameRepository),
		betRepo:   new(testhelpers.MockPendingBetRepository),
		matcher:   new(testhelpers.MockBettingMatcher),
		clock:     &testhelpers.FakeClock{Time: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		publisher: new(testhelpers.MockEventPublisher),
	}
	f.service = NewBettingService(f.gameRepo, f.betRepo, f.matcher, f.clock, f.publisher)
	return f
}

func TestPlaceBet(t *testing.T) {
	ctx := context.Background()
	over := entities.Wincase{Kind: entities.WincaseTotalOver, Threshold: 500}
	goodOdds := entities.Odds{Numerator: 2, Denominator: 1}

	liveGame := func() *entities.Game {
		return &entities.Game{
			ID:     1,
			UUID:   uuid.New(),
			Status: entities.GameStatusCreated,
			Markets: []entities.Market{
				{Kind: entities.MarketTotal, Threshold: 500},
			},
		}
	}

	t.Run("places and matches the bet", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		betUUID := uuid.New()

		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)
		f.betRepo.On("ExistsByUUID", ctx, betUUID).Return(false, nil)
		f.betRepo.On("Create", ctx, mock.AnythingOfType("*entities.PendingBet")).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.BetPlacedEvent")).Return(nil)
		f.matcher.On("Match", ctx, mock.AnythingOfType("*entities.PendingBet")).Return(nil, nil)

		bet, err := f.service.PlaceBet(ctx, betUUID, "alice", game.UUID, over, goodOdds, 100)
		require.NoError(t, err)

		assert.Equal(t, betUUID, bet.UUID)
		assert.Equal(t, f.clock.Time, bet.CreatedAt)
		f.matcher.AssertCalled(t, "Match", ctx, bet)
	})

	t.Run("rejects an unknown game", func(t *testing.T) {
		f := newBettingServiceFixture()
		gameUUID := uuid.New()
		f.gameRepo.On("GetByUUID", ctx, gameUUID).Return(nil, nil)

		_, err := f.service.PlaceBet(ctx, uuid.New(), "alice", gameUUID, over, goodOdds, 100)
		require.Error(t, err)
		assert.True(t, entities.IsPreconditionError(err))
	})

	t.Run("rejects a finished game", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		game.Status = entities.GameStatusFinished
		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)

		_, err := f.service.PlaceBet(ctx, uuid.New(), "alice", game.UUID, over, goodOdds, 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not accept bets")
	})

	t.Run("rejects a wincase off the game's markets", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)

		_, err := f.service.PlaceBet(ctx, uuid.New(), "alice", game.UUID,
			entities.Wincase{Kind: entities.WincaseTotalOver, Threshold: 1000}, goodOdds, 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not tradable")
	})

	t.Run("rejects a wincase outside the catalogue", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)

		var err error
		require.NotPanics(t, func() {
			_, err = f.service.PlaceBet(ctx, uuid.New(), "alice", game.UUID,
				entities.Wincase{Kind: "result_home_maybe"}, goodOdds, 100)
		})
		require.Error(t, err)
		assert.True(t, entities.IsValidationError(err))
		assert.Contains(t, err.Error(), "unknown wincase kind")
	})

	t.Run("rejects odds at or below one", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)

		_, err := f.service.PlaceBet(ctx, uuid.New(), "alice", game.UUID, over,
			entities.Odds{Numerator: 1, Denominator: 1}, 100)
		require.Error(t, err)
		assert.True(t, entities.IsValidationError(err))
	})

	t.Run("rejects a non-positive stake", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)

		_, err := f.service.PlaceBet(ctx, uuid.New(), "alice", game.UUID, over, goodOdds, 0)
		require.Error(t, err)
		assert.True(t, entities.IsValidationError(err))
	})

	t.Run("rejects a stake whose payout target is out of range", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)

		// 18446744073709552 * 1000 exceeds the int64 payout range
		_, err := f.service.PlaceBet(ctx, uuid.New(), "alice", game.UUID, over,
			entities.Odds{Numerator: 1000, Denominator: 1}, 18446744073709552)
		require.Error(t, err)
		assert.True(t, entities.IsValidationError(err))
		f.betRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a replayed bet uuid", func(t *testing.T) {
		f := newBettingServiceFixture()
		game := liveGame()
		betUUID := uuid.New()
		f.gameRepo.On("GetByUUID", ctx, game.UUID).Return(game, nil)
		f.betRepo.On("ExistsByUUID", ctx, betUUID).Return(true, nil)

		_, err := f.service.PlaceBet(ctx, betUUID, "alice", game.UUID, over, goodOdds, 100)
		require.Error(t, err)
		assert.True(t, entities.IsReplayError(err))
		f.betRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCancelBetsByMarkets(t *testing.T) {
	ctx := context.Background()
	gameUUID := uuid.New()
	removed := []entities.Market{{Kind: entities.MarketTotal, Threshold: 500}}

	over := entities.Wincase{Kind: entities.WincaseTotalOver, Threshold: 500}
	under := entities.Wincase{Kind: entities.WincaseTotalUnder, Threshold: 500}
	unaffected := entities.Wincase{Kind: entities.WincaseResultHomeYes}

	t.Run("cancels both sides of the withdrawn market", func(t *testing.T) {
		f := newBettingServiceFixture()
		bets := []*entities.PendingBet{
			{ID: 1, UUID: uuid.New(), Better: "alice", GameUUID: gameUUID, Wincase: over, Stake: 100},
			{ID: 2, UUID: uuid.New(), Better: "bob", GameUUID: gameUUID, Wincase: unaffected, Stake: 50},
			{ID: 3, UUID: uuid.New(), Better: "carol", GameUUID: gameUUID, Wincase: under, Stake: 75},
		}
		f.betRepo.On("ListByGame", ctx, gameUUID).Return(bets, nil)
		f.betRepo.On("Delete", ctx, int64(1)).Return(nil)
		f.betRepo.On("Delete", ctx, int64(3)).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.BetsCancelledEvent")).Return(nil)

		require.NoError(t, f.service.CancelBetsByMarkets(ctx, gameUUID, removed))

		f.betRepo.AssertNotCalled(t, "Delete", ctx, int64(2))
		f.publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.Event) bool {
			cancelled, ok := e.(events.BetsCancelledEvent)
			return ok && len(cancelled.Bets) == 2 &&
				cancelled.Bets[0].Better == "alice" && cancelled.Bets[0].Stake == 100 &&
				cancelled.Bets[1].Better == "carol" && cancelled.Bets[1].Stake == 75
		}))
	})

	t.Run("empty sweep still announces itself", func(t *testing.T) {
		f := newBettingServiceFixture()
		f.betRepo.On("ListByGame", ctx, gameUUID).Return([]*entities.PendingBet{}, nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.BetsCancelledEvent")).Return(nil)

		require.NoError(t, f.service.CancelBetsByMarkets(ctx, gameUUID, nil))
		f.publisher.AssertNumberOfCalls(t, "Publish", 1)
	})
}

func TestCancelBetsByGame(t *testing.T) {
	ctx := context.Background()
	gameUUID := uuid.New()

	t.Run("cancels every pending bet", func(t *testing.T) {
		f := newBettingServiceFixture()
		bets := []*entities.PendingBet{
			{ID: 1, UUID: uuid.New(), Better: "alice", GameUUID: gameUUID, Stake: 100},
			{ID: 2, UUID: uuid.New(), Better: "bob", GameUUID: gameUUID, Stake: 50},
		}
		f.betRepo.On("ListByGame", ctx, gameUUID).Return(bets, nil)
		f.betRepo.On("Delete", ctx, mock.AnythingOfType("int64")).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.BetsCancelledEvent")).Return(nil)

		require.NoError(t, f.service.CancelBetsByGame(ctx, gameUUID))
		f.betRepo.AssertNumberOfCalls(t, "Delete", 2)
	})

	t.Run("no bets means no event", func(t *testing.T) {
		f := newBettingServiceFixture()
		f.betRepo.On("ListByGame", ctx, gameUUID).Return([]*entities.PendingBet{}, nil)

		require.NoError(t, f.service.CancelBetsByGame(ctx, gameUUID))
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything)
	})
}

func TestCancelPendingBets(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels the owner's bets grouped by game", func(t *testing.T) {
		f := newBettingServiceFixture()
		gameA := uuid.New()
		gameB := uuid.New()
		bets := []*entities.PendingBet{
			{ID: 1, UUID: uuid.New(), Better: "alice", GameUUID: gameA, Stake: 100},
			{ID: 2, UUID: uuid.New(), Better: "alice", GameUUID: gameB, Stake: 50},
			{ID: 3, UUID: uuid.New(), Better: "alice", GameUUID: gameA, Stake: 25},
		}
		for _, bet := range bets {
			f.betRepo.On("GetByUUID", ctx, bet.UUID).Return(bet, nil)
			f.betRepo.On("Delete", ctx, bet.ID).Return(nil)
		}
		f.publisher.On("Publish", mock.AnythingOfType("events.BetsCancelledEvent")).Return(nil)

		require.NoError(t, f.service.CancelPendingBets(ctx, "alice",
			[]uuid.UUID{bets[0].UUID, bets[1].UUID, bets[2].UUID}))

		// one event per touched game, first-seen order
		f.publisher.AssertNumberOfCalls(t, "Publish", 2)
		f.publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.Event) bool {
			cancelled, ok := e.(events.BetsCancelledEvent)
			return ok && cancelled.GameUUID == gameA && len(cancelled.Bets) == 2
		}))
	})

	t.Run("rejects a foreign bet", func(t *testing.T) {
		f := newBettingServiceFixture()
		bet := &entities.PendingBet{ID: 1, UUID: uuid.New(), Better: "bob", Stake: 100}
		f.betRepo.On("GetByUUID", ctx, bet.UUID).Return(bet, nil)

		err := f.service.CancelPendingBets(ctx, "alice", []uuid.UUID{bet.UUID})
		require.Error(t, err)
		assert.True(t, entities.IsPreconditionError(err))
		f.betRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown bet", func(t *testing.T) {
		f := newBettingServiceFixture()
		betUUID := uuid.New()
		f.betRepo.On("GetByUUID", ctx, betUUID).Return(nil, nil)

		err := f.service.CancelPendingBets(ctx, "alice", []uuid.UUID{betUUID})
		require.Error(t, err)
		assert.True(t, entities.IsPreconditionError(err))
	})
}
