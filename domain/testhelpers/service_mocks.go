package testhelpers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scorebet/domain/entities"
)

// FakeClock is a fixed-time Clock for tests
type FakeClock struct {
	Time time.Time
}

func (c *FakeClock) Now() time.Time {
	return c.Time
}

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CheckAccountExistence(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockAccountService) IsBettingModerator(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockBettingMatcher is a mock implementation of BettingMatcher
type MockBettingMatcher struct {
	mock.Mock
}

func (m *MockBettingMatcher) Match(ctx context.Context, bet *entities.PendingBet) ([]*entities.PendingBet, error) {
	args := m.Called(ctx, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PendingBet), args.Error(1)
}

// MockBettingService is a mock implementation of BettingService
type MockBettingService struct {
	mock.Mock
}

func (m *MockBettingService) PlaceBet(ctx context.Context, betUUID uuid.UUID, better string, gameUUID uuid.UUID,
	wincase entities.Wincase, odds entities.Odds, stake int64) (*entities.PendingBet, error) {
	args := m.Called(ctx, betUUID, better, gameUUID, wincase, odds, stake)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PendingBet), args.Error(1)
}

func (m *MockBettingService) CancelBetsByMarkets(ctx context.Context, gameUUID uuid.UUID, markets []entities.Market) error {
	args := m.Called(ctx, gameUUID, markets)
	return args.Error(0)
}

func (m *MockBettingService) CancelBetsByGame(ctx context.Context, gameUUID uuid.UUID) error {
	args := m.Called(ctx, gameUUID)
	return args.Error(0)
}

func (m *MockBettingService) CancelPendingBets(ctx context.Context, better string, betUUIDs []uuid.UUID) error {
	args := m.Called(ctx, better, betUUIDs)
	return args.Error(0)
}

// MockGameService is a mock implementation of GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) CreateGame(ctx context.Context, gameUUID uuid.UUID, moderator, jsonMetadata string,
	startTime time.Time, autoResolveDelay time.Duration, markets []entities.Market) (*entities.Game, error) {
	args := m.Called(ctx, gameUUID, moderator, jsonMetadata, startTime, autoResolveDelay, markets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameService) UpdateMarkets(ctx context.Context, game *entities.Game, markets []entities.Market) error {
	args := m.Called(ctx, game, markets)
	return args.Error(0)
}

func (m *MockGameService) UpdateStartTime(ctx context.Context, game *entities.Game, startTime time.Time) error {
	args := m.Called(ctx, game, startTime)
	return args.Error(0)
}

func (m *MockGameService) Finish(ctx context.Context, game *entities.Game, wincases []entities.Wincase) error {
	args := m.Called(ctx, game, wincases)
	return args.Error(0)
}

func (m *MockGameService) Cancel(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameService) StartDueGames(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

func (m *MockGameService) AutoResolve(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}
