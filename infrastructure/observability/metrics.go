package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"scorebet/domain/events"
)

// Metrics counts core events for Prometheus. It hangs off the event bus as
// one more sink, so the deterministic core stays free of instrumentation.
type Metrics struct {
	gamesCreated   prometheus.Counter
	gamesFinished  prometheus.Counter
	gamesCancelled prometheus.Counter
	betsPlaced     prometheus.Counter
	betsMatched    prometheus.Counter
	betsCancelled  prometheus.Counter
	matchedStake   prometheus.Counter
}

// NewMetrics registers the betting counters on the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gamesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "scorebet_games_created_total",
			Help: "Number of games created",
		}),
		gamesFinished: factory.NewCounter(prometheus.CounterOpts{
			Name: "scorebet_games_finished_total",
			Help: "Number of games with posted results",
		}),
		gamesCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "scorebet_games_cancelled_total",
			Help: "Number of cancelled games",
		}),
		betsPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "scorebet_bets_placed_total",
			Help: "Number of pending bets placed",
		}),
		betsMatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "scorebet_bets_matched_total",
			Help: "Number of matched bet records created",
		}),
		betsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "scorebet_bets_cancelled_total",
			Help: "Number of pending bets cancelled",
		}),
		matchedStake: factory.NewCounter(prometheus.CounterOpts{
			Name: "scorebet_matched_stake_total",
			Help: "Total stake consumed by matched bets",
		}),
	}
}

// Publish updates counters from the event stream
func (m *Metrics) Publish(event events.Event) error {
	switch e := event.(type) {
	case events.GameCreatedEvent:
		m.gamesCreated.Inc()
	case events.GameFinishedEvent:
		m.gamesFinished.Inc()
	case events.GameCancelledEvent:
		m.gamesCancelled.Inc()
	case events.BetPlacedEvent:
		m.betsPlaced.Inc()
	case events.BetMatchedEvent:
		m.betsMatched.Inc()
		m.matchedStake.Add(float64(e.Bet1Stake + e.Bet2Stake))
	case events.BetsCancelledEvent:
		m.betsCancelled.Add(float64(len(e.Bets)))
	}
	return nil
}
