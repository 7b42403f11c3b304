package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scorebet/domain/entities"
	"scorebet/domain/events"
	"scorebet/domain/interfaces"
)

type bettingMatcher struct {
	pendingBetRepo interfaces.PendingBetRepository
	matchedBetRepo interfaces.MatchedBetRepository
	clock          interfaces.Clock
	eventPublisher interfaces.EventPublisher
}

// NewBettingMatcher creates the matching engine over the pending and matched
// bet collections
func NewBettingMatcher(pendingBetRepo interfaces.PendingBetRepository, matchedBetRepo interfaces.MatchedBetRepository,
	clock interfaces.Clock, eventPublisher interfaces.EventPublisher) interfaces.BettingMatcher {
	return &bettingMatcher{
		pendingBetRepo: pendingBetRepo,
		matchedBetRepo: matchedBetRepo,
		clock:          clock,
		eventPublisher: eventPublisher,
	}
}

// Match pairs the incoming bet against compatible pending bets, oldest
// first, until its stake is exhausted or candidates run out. Candidates are
// returned by the repository in (created, id) order, which keeps the match
// sequence identical on every node. Finding no candidate is not an error;
// the bet simply stays pending with its leftover stake.
func (m *bettingMatcher) Match(ctx context.Context, bet *entities.PendingBet) ([]*entities.PendingBet, error) {
	candidates, err := m.pendingBetRepo.ListByGameAndWincase(ctx, bet.GameUUID, bet.Wincase.Opposite())
	if err != nil {
		return nil, fmt.Errorf("failed to list match candidates: %w", err)
	}

	now := m.clock.Now()
	var fullyMatched []*entities.PendingBet

	for _, candidate := range candidates {
		if bet.IsFullyMatched() {
			break
		}
		if !m.isMatchable(candidate, bet) {
			continue
		}

		// The resting candidate is side one of the trade, the incoming bet
		// side two, mirroring their arrival order.
		matched, err := entities.CalculateMatchedStake(candidate.Stake, bet.Stake, candidate.Odds, bet.Odds)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate matched stake: %w", err)
		}
		if matched.Bet1 <= 0 || matched.Bet2 <= 0 {
			// Too small to cover one unit of the opposite win part
			continue
		}

		candidate.Stake -= matched.Bet1
		candidate.UpdatedAt = now
		bet.Stake -= matched.Bet2
		bet.UpdatedAt = now

		matchedBetID, err := CreateMatchedBet(ctx, m.matchedBetRepo, candidate, bet, matched, now)
		if err != nil {
			return nil, err
		}

		if candidate.IsFullyMatched() {
			if err := m.pendingBetRepo.Delete(ctx, candidate.ID); err != nil {
				return nil, fmt.Errorf("failed to remove fully matched bet: %w", err)
			}
			fullyMatched = append(fullyMatched, candidate)
		} else {
			if err := m.pendingBetRepo.Update(ctx, candidate); err != nil {
				return nil, fmt.Errorf("failed to update partially matched bet: %w", err)
			}
		}

		if err := m.eventPublisher.Publish(events.BetMatchedEvent{
			MatchedBetID: matchedBetID,
			GameUUID:     bet.GameUUID,
			Market:       bet.Market(),
			Bet1UUID:     candidate.UUID,
			Bet1Better:   candidate.Better,
			Bet1Stake:    matched.Bet1,
			Bet2UUID:     bet.UUID,
			Bet2Better:   bet.Better,
			Bet2Stake:    matched.Bet2,
		}); err != nil {
			log.WithError(err).Warn("failed to publish bet matched event")
		}
	}

	if bet.IsFullyMatched() {
		if err := m.pendingBetRepo.Delete(ctx, bet.ID); err != nil {
			return nil, fmt.Errorf("failed to remove fully matched bet: %w", err)
		}
		fullyMatched = append(fullyMatched, bet)
	} else {
		if err := m.pendingBetRepo.Update(ctx, bet); err != nil {
			return nil, fmt.Errorf("failed to update incoming bet: %w", err)
		}
	}

	return fullyMatched, nil
}

// isMatchable is the compatibility predicate between a resting and an
// incoming bet. Game liveness is an evaluator invariant: pending bets exist
// only on games that are neither finished nor cancelled. The engine places
// no restriction on an account matching its own bet.
func (m *bettingMatcher) isMatchable(resting, incoming *entities.PendingBet) bool {
	if resting.GameUUID != incoming.GameUUID {
		return false
	}
	if resting.Wincase != incoming.Wincase.Opposite() {
		return false
	}
	if !resting.Odds.IsInversionOf(incoming.Odds) {
		return false
	}
	return resting.Stake > 0 && incoming.Stake > 0
}

// CreateMatchedBet snapshots the two paired bets into an immutable trade
// record and inserts it. Validity of the pairing is the caller's guarantee;
// the writer only records it.
func CreateMatchedBet(ctx context.Context, repo interfaces.MatchedBetRepository,
	bet1, bet2 *entities.PendingBet, matched entities.MatchedStake, now time.Time) (int64, error) {
	record := &entities.MatchedBet{
		GameUUID: bet1.GameUUID,
		Market:   bet1.Market(),
		Bet1: entities.MatchedBetSide{
			BetUUID: bet1.UUID,
			Better:  bet1.Better,
			Wincase: bet1.Wincase,
			Odds:    bet1.Odds,
			Stake:   matched.Bet1,
		},
		Bet2: entities.MatchedBetSide{
			BetUUID: bet2.UUID,
			Better:  bet2.Better,
			Wincase: bet2.Wincase,
			Odds:    bet2.Odds,
			Stake:   matched.Bet2,
		},
		CreatedAt: now,
	}
	if err := repo.Create(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to create matched bet: %w", err)
	}
	return record.ID, nil
}
