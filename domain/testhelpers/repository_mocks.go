package testhelpers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scorebet/domain/entities"
	"scorebet/domain/events"
)

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByUUID(ctx context.Context, gameUUID uuid.UUID) (*entities.Game, error) {
	args := m.Called(ctx, gameUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) ExistsByUUID(ctx context.Context, gameUUID uuid.UUID) (bool, error) {
	args := m.Called(ctx, gameUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameRepository) Update(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) ListToStart(ctx context.Context, startTime time.Time) ([]*entities.Game, error) {
	args := m.Called(ctx, startTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Game), args.Error(1)
}

func (m *MockGameRepository) ListToAutoResolve(ctx context.Context, resolveTime time.Time) ([]*entities.Game, error) {
	args := m.Called(ctx, resolveTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Game), args.Error(1)
}

// MockGameUUIDHistoryRepository is a mock implementation of GameUUIDHistoryRepository
type MockGameUUIDHistoryRepository struct {
	mock.Mock
}

func (m *MockGameUUIDHistoryRepository) Contains(ctx context.Context, gameUUID uuid.UUID) (bool, error) {
	args := m.Called(ctx, gameUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameUUIDHistoryRepository) Add(ctx context.Context, gameUUID uuid.UUID) error {
	args := m.Called(ctx, gameUUID)
	return args.Error(0)
}

// MockPendingBetRepository is a mock implementation of PendingBetRepository
type MockPendingBetRepository struct {
	mock.Mock
}

func (m *MockPendingBetRepository) Create(ctx context.Context, bet *entities.PendingBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockPendingBetRepository) GetByUUID(ctx context.Context, betUUID uuid.UUID) (*entities.PendingBet, error) {
	args := m.Called(ctx, betUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PendingBet), args.Error(1)
}

func (m *MockPendingBetRepository) ExistsByUUID(ctx context.Context, betUUID uuid.UUID) (bool, error) {
	args := m.Called(ctx, betUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPendingBetRepository) Update(ctx context.Context, bet *entities.PendingBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockPendingBetRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPendingBetRepository) ListByGame(ctx context.Context, gameUUID uuid.UUID) ([]*entities.PendingBet, error) {
	args := m.Called(ctx, gameUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PendingBet), args.Error(1)
}

func (m *MockPendingBetRepository) ListByGameAndWincase(ctx context.Context, gameUUID uuid.UUID, wincase entities.Wincase) ([]*entities.PendingBet, error) {
	args := m.Called(ctx, gameUUID, wincase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PendingBet), args.Error(1)
}

// MockMatchedBetRepository is a mock implementation of MatchedBetRepository
type MockMatchedBetRepository struct {
	mock.Mock
}

func (m *MockMatchedBetRepository) Create(ctx context.Context, bet *entities.MatchedBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockMatchedBetRepository) GetByID(ctx context.Context, id int64) (*entities.MatchedBet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MatchedBet), args.Error(1)
}

func (m *MockMatchedBetRepository) ListByGame(ctx context.Context, gameUUID uuid.UUID) ([]*entities.MatchedBet, error) {
	args := m.Called(ctx, gameUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MatchedBet), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
