package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"scorebet/domain/entities"
	"scorebet/domain/events"
	"scorebet/domain/interfaces"
)

type gameService struct {
	gameRepo        interfaces.GameRepository
	uuidHistoryRepo interfaces.GameUUIDHistoryRepository
	betting         interfaces.BettingService
	clock           interfaces.Clock
	eventPublisher  interfaces.EventPublisher
}

// NewGameService creates a new game lifecycle service
func NewGameService(gameRepo interfaces.GameRepository, uuidHistoryRepo interfaces.GameUUIDHistoryRepository,
	betting interfaces.BettingService, clock interfaces.Clock,
	eventPublisher interfaces.EventPublisher) interfaces.GameService {
	return &gameService{
		gameRepo:        gameRepo,
		uuidHistoryRepo: uuidHistoryRepo,
		betting:         betting,
		clock:           clock,
		eventPublisher:  eventPublisher,
	}
}

// CreateGame registers a new game. The UUID history covers finished and
// cancelled games too, so an id can never be reused.
func (s *gameService) CreateGame(ctx context.Context, gameUUID uuid.UUID, moderator, jsonMetadata string,
	startTime time.Time, autoResolveDelay time.Duration, markets []entities.Market) (*entities.Game, error) {

	used, err := s.uuidHistoryRepo.Contains(ctx, gameUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check game uuid history: %w", err)
	}
	if used {
		return nil, entities.NewReplayErrorf("game with uuid '%s' already used", gameUUID)
	}
	if len(markets) == 0 {
		return nil, entities.NewValidationErrorf("initial market list is empty")
	}
	if err := entities.ValidateMarkets(markets); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sorted := make([]entities.Market, len(markets))
	copy(sorted, markets)
	entities.SortMarkets(sorted)

	game := &entities.Game{
		UUID:             gameUUID,
		Moderator:        moderator,
		JSONMetadata:     jsonMetadata,
		Status:           entities.GameStatusCreated,
		StartTime:        startTime,
		AutoResolveDelay: autoResolveDelay,
		Markets:          sorted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	if err := s.uuidHistoryRepo.Add(ctx, gameUUID); err != nil {
		return nil, fmt.Errorf("failed to record game uuid: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GameCreatedEvent{
		GameUUID:  gameUUID,
		Moderator: moderator,
		StartTime: startTime,
		Markets:   sorted,
	}); err != nil {
		log.WithError(err).Warn("failed to publish game created event")
	}
	log.WithFields(log.Fields{"game": gameUUID, "markets": len(sorted)}).Info("game created")

	return game, nil
}

// UpdateMarkets reconciles the game's market set with the proposed one.
// Duplicate and per-market validation happens before any cancellation; bets
// on withdrawn markets are cancelled before the set is replaced, so a
// failure leaves the old set in force.
func (s *gameService) UpdateMarkets(ctx context.Context, game *entities.Game, markets []entities.Market) error {
	if game.IsTerminal() {
		return entities.NewPreconditionErrorf("cannot update markets of a %s game", game.Status)
	}
	if len(markets) == 0 {
		return entities.NewValidationErrorf("market list is empty")
	}
	if err := entities.ValidateMarkets(markets); err != nil {
		return err
	}

	removed := entities.DiffMarkets(game.Markets, markets)
	if err := s.betting.CancelBetsByMarkets(ctx, game.UUID, removed); err != nil {
		return fmt.Errorf("failed to cancel bets on withdrawn markets: %w", err)
	}

	oldMarkets := game.Markets
	sorted := make([]entities.Market, len(markets))
	copy(sorted, markets)
	entities.SortMarkets(sorted)

	game.Markets = sorted
	game.UpdatedAt = s.clock.Now()
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GameMarketsUpdatedEvent{
		GameUUID:   game.UUID,
		OldMarkets: oldMarkets,
		NewMarkets: sorted,
	}); err != nil {
		log.WithError(err).Warn("failed to publish game markets updated event")
	}
	log.WithFields(log.Fields{
		"game":    game.UUID,
		"removed": len(removed),
		"markets": len(sorted),
	}).Info("game markets updated")

	return nil
}

// UpdateStartTime moves the scheduled start of a game that has not started
func (s *gameService) UpdateStartTime(ctx context.Context, game *entities.Game, startTime time.Time) error {
	if game.IsTerminal() {
		return entities.NewPreconditionErrorf("cannot move start time of a %s game", game.Status)
	}
	if !game.IsCreated() {
		return entities.NewPreconditionErrorf("game '%s' already started", game.UUID)
	}

	game.StartTime = startTime
	game.UpdatedAt = s.clock.Now()
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

// Finish posts results and fixes them permanently. Every posted wincase
// must belong to one of the game's markets, and no market may have both
// sides of its pair winning.
func (s *gameService) Finish(ctx context.Context, game *entities.Game, wincases []entities.Wincase) error {
	if !game.IsStarted() {
		return entities.NewPreconditionErrorf("cannot finish a %s game", game.Status)
	}

	seen := make(map[entities.Wincase]struct{}, len(wincases))
	for _, w := range wincases {
		if err := w.Validate(); err != nil {
			return err
		}
		if !game.HasWincase(w) {
			return entities.NewValidationErrorf("wincase '%s' does not belong to game '%s'", w, game.UUID)
		}
		if _, dup := seen[w]; dup {
			return entities.NewValidationErrorf("you provided duplicates in wincase list: '%s'", w)
		}
		if _, both := seen[w.Opposite()]; both {
			return entities.NewValidationErrorf("wincase '%s' and its opposite cannot both win", w)
		}
		seen[w] = struct{}{}
	}

	sorted := make([]entities.Wincase, len(wincases))
	copy(sorted, wincases)
	entities.SortWincases(sorted)

	game.Status = entities.GameStatusFinished
	game.Wincases = sorted
	game.UpdatedAt = s.clock.Now()
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GameFinishedEvent{
		GameUUID: game.UUID,
		Wincases: sorted,
	}); err != nil {
		log.WithError(err).Warn("failed to publish game finished event")
	}
	log.WithFields(log.Fields{"game": game.UUID, "wincases": len(sorted)}).Info("game finished")

	return nil
}

// Cancel withdraws a non-terminal game and every pending bet on it
func (s *gameService) Cancel(ctx context.Context, game *entities.Game) error {
	if game.IsTerminal() {
		return entities.NewPreconditionErrorf("cannot cancel a %s game", game.Status)
	}

	if err := s.betting.CancelBetsByGame(ctx, game.UUID); err != nil {
		return fmt.Errorf("failed to cancel pending bets: %w", err)
	}

	game.Status = entities.GameStatusCancelled
	game.UpdatedAt = s.clock.Now()
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GameCancelledEvent{GameUUID: game.UUID}); err != nil {
		log.WithError(err).Warn("failed to publish game cancelled event")
	}
	log.WithField("game", game.UUID).Info("game cancelled")

	return nil
}

// StartDueGames moves every created game whose scheduled start passed into
// the started state. Games go in play by head time, not by an operation.
func (s *gameService) StartDueGames(ctx context.Context, now time.Time) error {
	games, err := s.gameRepo.ListToStart(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list games to start: %w", err)
	}
	for _, game := range games {
		game.Status = entities.GameStatusStarted
		game.UpdatedAt = now
		if err := s.gameRepo.Update(ctx, game); err != nil {
			return fmt.Errorf("failed to start game '%s': %w", game.UUID, err)
		}
		if err := s.eventPublisher.Publish(events.GameStartedEvent{
			GameUUID:  game.UUID,
			StartTime: game.StartTime,
		}); err != nil {
			log.WithError(err).Warn("failed to publish game started event")
		}
		log.WithField("game", game.UUID).Info("game started")
	}
	return nil
}

// AutoResolve cancels every game whose auto-resolve deadline passed without
// results being posted.
func (s *gameService) AutoResolve(ctx context.Context, now time.Time) error {
	games, err := s.gameRepo.ListToAutoResolve(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list games to auto resolve: %w", err)
	}
	for _, game := range games {
		if err := s.Cancel(ctx, game); err != nil {
			return fmt.Errorf("failed to auto resolve game '%s': %w", game.UUID, err)
		}
		log.WithField("game", game.UUID).Info("game auto resolved by cancellation")
	}
	return nil
}
