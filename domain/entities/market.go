package entities

import (
	"fmt"
	"sort"
)

// MarketKind identifies a family of betting propositions on a game
type MarketKind string

const (
	MarketResultHome       MarketKind = "result_home"
	MarketResultDraw       MarketKind = "result_draw"
	MarketResultAway       MarketKind = "result_away"
	MarketHandicap         MarketKind = "handicap"
	MarketCorrectScoreHome MarketKind = "correct_score_home"
	MarketCorrectScoreDraw MarketKind = "correct_score_draw"
	MarketCorrectScoreAway MarketKind = "correct_score_away"
	MarketGoalHome         MarketKind = "goal_home"
	MarketGoalBoth         MarketKind = "goal_both"
	MarketGoalAway         MarketKind = "goal_away"
	MarketTotal            MarketKind = "total"
	MarketTotalHome        MarketKind = "total_home"
	MarketTotalAway        MarketKind = "total_away"
)

// AllMarketKinds lists every market kind the chain understands.
// Tests iterate this list to keep WincasesOf total over the catalogue.
var AllMarketKinds = []MarketKind{
	MarketResultHome,
	MarketResultDraw,
	MarketResultAway,
	MarketHandicap,
	MarketCorrectScoreHome,
	MarketCorrectScoreDraw,
	MarketCorrectScoreAway,
	MarketGoalHome,
	MarketGoalBoth,
	MarketGoalAway,
	MarketTotal,
	MarketTotalHome,
	MarketTotalAway,
}

// Market is a tradable betting proposition. It is a comparable value type:
// two markets are the same proposition iff their kind and threshold are equal.
// Threshold is meaningful only for the handicap and total families and is
// expressed in thousandths of a goal (500 = half a goal).
type Market struct {
	Kind      MarketKind `json:"kind"`
	Threshold int32      `json:"threshold,omitempty"`
}

// HasThreshold reports whether this market kind carries a threshold parameter
func (m Market) HasThreshold() bool {
	switch m.Kind {
	case MarketHandicap, MarketTotal, MarketTotalHome, MarketTotalAway:
		return true
	}
	return false
}

func (m Market) String() string {
	if m.HasThreshold() {
		return fmt.Sprintf("%s:%d", m.Kind, m.Threshold)
	}
	return string(m.Kind)
}

// Validate rejects structurally nonsensical parameterizations. A market is
// invalid when either of its wincases cannot resolve, e.g. a total with a
// threshold of zero leaves the under side with no outcome space.
func (m Market) Validate() error {
	if !isKnownMarketKind(m.Kind) {
		return NewValidationErrorf("unknown market kind %q", m.Kind)
	}
	if !m.HasThreshold() && m.Threshold != 0 {
		return NewValidationErrorf("market '%s' does not take a threshold", m.Kind)
	}
	over, under := WincasesOf(m)
	for _, w := range []Wincase{over, under} {
		if !w.IsValid() {
			return NewValidationErrorf("wincase '%s' is invalid", w)
		}
	}
	return nil
}

func isKnownMarketKind(k MarketKind) bool {
	for _, known := range AllMarketKinds {
		if k == known {
			return true
		}
	}
	return false
}

// WincasesOf maps a market to its complementary pair of wincases. Exactly one
// side wins when the game resolves. The switch is exhaustive over
// AllMarketKinds; an unknown kind is a definition error, not user input.
func WincasesOf(m Market) (Wincase, Wincase) {
	switch m.Kind {
	case MarketResultHome:
		return Wincase{Kind: WincaseResultHomeYes}, Wincase{Kind: WincaseResultHomeNo}
	case MarketResultDraw:
		return Wincase{Kind: WincaseResultDrawYes}, Wincase{Kind: WincaseResultDrawNo}
	case MarketResultAway:
		return Wincase{Kind: WincaseResultAwayYes}, Wincase{Kind: WincaseResultAwayNo}
	case MarketHandicap:
		return Wincase{Kind: WincaseHandicapOver, Threshold: m.Threshold},
			Wincase{Kind: WincaseHandicapUnder, Threshold: m.Threshold}
	case MarketCorrectScoreHome:
		return Wincase{Kind: WincaseCorrectScoreHomeYes}, Wincase{Kind: WincaseCorrectScoreHomeNo}
	case MarketCorrectScoreDraw:
		return Wincase{Kind: WincaseCorrectScoreDrawYes}, Wincase{Kind: WincaseCorrectScoreDrawNo}
	case MarketCorrectScoreAway:
		return Wincase{Kind: WincaseCorrectScoreAwayYes}, Wincase{Kind: WincaseCorrectScoreAwayNo}
	case MarketGoalHome:
		return Wincase{Kind: WincaseGoalHomeYes}, Wincase{Kind: WincaseGoalHomeNo}
	case MarketGoalBoth:
		return Wincase{Kind: WincaseGoalBothYes}, Wincase{Kind: WincaseGoalBothNo}
	case MarketGoalAway:
		return Wincase{Kind: WincaseGoalAwayYes}, Wincase{Kind: WincaseGoalAwayNo}
	case MarketTotal:
		return Wincase{Kind: WincaseTotalOver, Threshold: m.Threshold},
			Wincase{Kind: WincaseTotalUnder, Threshold: m.Threshold}
	case MarketTotalHome:
		return Wincase{Kind: WincaseTotalHomeOver, Threshold: m.Threshold},
			Wincase{Kind: WincaseTotalHomeUnder, Threshold: m.Threshold}
	case MarketTotalAway:
		return Wincase{Kind: WincaseTotalAwayOver, Threshold: m.Threshold},
			Wincase{Kind: WincaseTotalAwayUnder, Threshold: m.Threshold}
	}
	panic(fmt.Sprintf("entities: no wincase mapping for market kind %q", m.Kind))
}

// ValidateMarkets validates a proposed market set: every member must be
// individually valid and the set must be free of duplicates. Duplicates are
// rejected independent of per-item validity.
func ValidateMarkets(markets []Market) error {
	seen := make(map[Market]struct{}, len(markets))
	for _, m := range markets {
		if _, ok := seen[m]; ok {
			return NewValidationErrorf("you provided duplicates in market list: '%s'", m)
		}
		seen[m] = struct{}{}
	}
	for _, m := range markets {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SortMarkets orders a market set canonically (kind, then threshold) so that
// every node iterates market sets in the same order.
func SortMarkets(markets []Market) {
	sort.Slice(markets, func(i, j int) bool {
		if markets[i].Kind != markets[j].Kind {
			return markets[i].Kind < markets[j].Kind
		}
		return markets[i].Threshold < markets[j].Threshold
	})
}

// ContainsMarket reports whether the set contains the given market by value
func ContainsMarket(markets []Market, m Market) bool {
	for _, member := range markets {
		if member == m {
			return true
		}
	}
	return false
}

// DiffMarkets returns the members of old that are absent from new, in
// canonical order. This is the set of markets withdrawn by a market update.
func DiffMarkets(old, new []Market) []Market {
	newSet := make(map[Market]struct{}, len(new))
	for _, m := range new {
		newSet[m] = struct{}{}
	}
	removed := make([]Market, 0)
	for _, m := range old {
		if _, kept := newSet[m]; !kept {
			removed = append(removed, m)
		}
	}
	SortMarkets(removed)
	return removed
}
