package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"scorebet/domain/entities"
	"scorebet/domain/events"
	"scorebet/domain/interfaces"
)

type bettingService struct {
	gameRepo       interfaces.GameRepository
	pendingBetRepo interfaces.PendingBetRepository
	matcher        interfaces.BettingMatcher
	clock          interfaces.Clock
	eventPublisher interfaces.EventPublisher
}

// NewBettingService creates a new betting service
func NewBettingService(gameRepo interfaces.GameRepository, pendingBetRepo interfaces.PendingBetRepository,
	matcher interfaces.BettingMatcher, clock interfaces.Clock,
	eventPublisher interfaces.EventPublisher) interfaces.BettingService {
	return &bettingService{
		gameRepo:       gameRepo,
		pendingBetRepo: pendingBetRepo,
		matcher:        matcher,
		clock:          clock,
		eventPublisher: eventPublisher,
	}
}

// PlaceBet validates the bet against its game, inserts it into the pending
// collection and hands it to the matcher. Stake reservation and refunds are
// the external balance service's responsibility.
func (s *bettingService) PlaceBet(ctx context.Context, betUUID uuid.UUID, better string,
	gameUUID uuid.UUID, wincase entities.Wincase, odds entities.Odds, stake int64) (*entities.PendingBet, error) {

	game, err := s.gameRepo.GetByUUID(ctx, gameUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, entities.NewPreconditionErrorf("game '%s' does not exist", gameUUID)
	}
	if !game.AcceptsBets() {
		return nil, entities.NewPreconditionErrorf("game '%s' is %s and does not accept bets", gameUUID, game.Status)
	}
	if err := wincase.Validate(); err != nil {
		return nil, err
	}
	if !game.HasWincase(wincase) {
		return nil, entities.NewPreconditionErrorf("market '%s' is not tradable on game '%s'", wincase.Market(), gameUUID)
	}
	if err := odds.Validate(); err != nil {
		return nil, err
	}
	if stake <= 0 {
		return nil, entities.NewValidationErrorf("stake must be positive, got %d", stake)
	}
	if !odds.FitsPayout(stake) {
		return nil, entities.NewValidationErrorf("payout of stake %d at odds '%s' is out of range", stake, odds)
	}

	exists, err := s.pendingBetRepo.ExistsByUUID(ctx, betUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check bet uuid: %w", err)
	}
	if exists {
		return nil, entities.NewReplayErrorf("bet with uuid '%s' already exists", betUUID)
	}

	now := s.clock.Now()
	bet := &entities.PendingBet{
		UUID:      betUUID,
		Better:    better,
		GameUUID:  gameUUID,
		Wincase:   wincase,
		Odds:      odds,
		Stake:     stake,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.pendingBetRepo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create pending bet: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BetPlacedEvent{
		BetUUID:  bet.UUID,
		GameUUID: gameUUID,
		Better:   better,
		Wincase:  wincase,
		Odds:     odds,
		Stake:    stake,
	}); err != nil {
		log.WithError(err).Warn("failed to publish bet placed event")
	}

	fullyMatched, err := s.matcher.Match(ctx, bet)
	if err != nil {
		return nil, fmt.Errorf("failed to match bet: %w", err)
	}
	log.WithFields(log.Fields{
		"bet":           bet.UUID,
		"game":          gameUUID,
		"fully_matched": len(fullyMatched),
		"leftover":      bet.Stake,
	}).Debug("bet placed")

	return bet, nil
}

// CancelBetsByMarkets withdraws every pending bet on the game whose wincase
// belongs to the complementary pair of one of the given markets. It is
// called once per market update, so the bets-cancelled event fires even when
// the removed set is empty.
func (s *bettingService) CancelBetsByMarkets(ctx context.Context, gameUUID uuid.UUID, markets []entities.Market) error {
	withdrawn := make(map[entities.Wincase]struct{}, 2*len(markets))
	for _, m := range markets {
		first, second := entities.WincasesOf(m)
		withdrawn[first] = struct{}{}
		withdrawn[second] = struct{}{}
	}

	bets, err := s.pendingBetRepo.ListByGame(ctx, gameUUID)
	if err != nil {
		return fmt.Errorf("failed to list pending bets: %w", err)
	}

	var cancelled []events.CancelledBet
	for _, bet := range bets {
		if _, hit := withdrawn[bet.Wincase]; !hit {
			continue
		}
		if err := s.pendingBetRepo.Delete(ctx, bet.ID); err != nil {
			return fmt.Errorf("failed to delete pending bet: %w", err)
		}
		cancelled = append(cancelled, events.CancelledBet{
			BetUUID: bet.UUID,
			Better:  bet.Better,
			Stake:   bet.Stake,
		})
	}

	sorted := make([]entities.Market, len(markets))
	copy(sorted, markets)
	entities.SortMarkets(sorted)

	if err := s.eventPublisher.Publish(events.BetsCancelledEvent{
		GameUUID: gameUUID,
		Markets:  sorted,
		Bets:     cancelled,
	}); err != nil {
		log.WithError(err).Warn("failed to publish bets cancelled event")
	}
	if len(cancelled) > 0 {
		log.WithFields(log.Fields{
			"game":    gameUUID,
			"markets": len(sorted),
			"bets":    len(cancelled),
		}).Info("cancelled pending bets on withdrawn markets")
	}
	return nil
}

// CancelBetsByGame withdraws every pending bet on the game
func (s *bettingService) CancelBetsByGame(ctx context.Context, gameUUID uuid.UUID) error {
	bets, err := s.pendingBetRepo.ListByGame(ctx, gameUUID)
	if err != nil {
		return fmt.Errorf("failed to list pending bets: %w", err)
	}
	if len(bets) == 0 {
		return nil
	}

	cancelled := make([]events.CancelledBet, 0, len(bets))
	for _, bet := range bets {
		if err := s.pendingBetRepo.Delete(ctx, bet.ID); err != nil {
			return fmt.Errorf("failed to delete pending bet: %w", err)
		}
		cancelled = append(cancelled, events.CancelledBet{
			BetUUID: bet.UUID,
			Better:  bet.Better,
			Stake:   bet.Stake,
		})
	}

	if err := s.eventPublisher.Publish(events.BetsCancelledEvent{
		GameUUID: gameUUID,
		Bets:     cancelled,
	}); err != nil {
		log.WithError(err).Warn("failed to publish bets cancelled event")
	}
	return nil
}

// CancelPendingBets withdraws the given still-pending bets of one owner,
// refunding their remaining stake through the bets-cancelled event.
func (s *bettingService) CancelPendingBets(ctx context.Context, better string, betUUIDs []uuid.UUID) error {
	cancelledByGame := make(map[uuid.UUID][]events.CancelledBet)
	var gameOrder []uuid.UUID

	for _, betUUID := range betUUIDs {
		bet, err := s.pendingBetRepo.GetByUUID(ctx, betUUID)
		if err != nil {
			return fmt.Errorf("failed to get pending bet: %w", err)
		}
		if bet == nil {
			return entities.NewPreconditionErrorf("pending bet '%s' does not exist", betUUID)
		}
		if bet.Better != better {
			return entities.NewPreconditionErrorf("pending bet '%s' does not belong to '%s'", betUUID, better)
		}
		if err := s.pendingBetRepo.Delete(ctx, bet.ID); err != nil {
			return fmt.Errorf("failed to delete pending bet: %w", err)
		}
		if _, seen := cancelledByGame[bet.GameUUID]; !seen {
			gameOrder = append(gameOrder, bet.GameUUID)
		}
		cancelledByGame[bet.GameUUID] = append(cancelledByGame[bet.GameUUID], events.CancelledBet{
			BetUUID: bet.UUID,
			Better:  bet.Better,
			Stake:   bet.Stake,
		})
	}

	for _, gameUUID := range gameOrder {
		if err := s.eventPublisher.Publish(events.BetsCancelledEvent{
			GameUUID: gameUUID,
			Bets:     cancelledByGame[gameUUID],
		}); err != nil {
			log.WithError(err).Warn("failed to publish bets cancelled event")
		}
	}
	return nil
}
