package entities

import (
	"fmt"
	"sort"
)

// WincaseKind identifies one concrete resolvable outcome of a market
type WincaseKind string

const (
	WincaseResultHomeYes       WincaseKind = "result_home_yes"
	WincaseResultHomeNo        WincaseKind = "result_home_no"
	WincaseResultDrawYes       WincaseKind = "result_draw_yes"
	WincaseResultDrawNo        WincaseKind = "result_draw_no"
	WincaseResultAwayYes       WincaseKind = "result_away_yes"
	WincaseResultAwayNo        WincaseKind = "result_away_no"
	WincaseHandicapOver        WincaseKind = "handicap_over"
	WincaseHandicapUnder       WincaseKind = "handicap_under"
	WincaseCorrectScoreHomeYes WincaseKind = "correct_score_home_yes"
	WincaseCorrectScoreHomeNo  WincaseKind = "correct_score_home_no"
	WincaseCorrectScoreDrawYes WincaseKind = "correct_score_draw_yes"
	WincaseCorrectScoreDrawNo  WincaseKind = "correct_score_draw_no"
	WincaseCorrectScoreAwayYes WincaseKind = "correct_score_away_yes"
	WincaseCorrectScoreAwayNo  WincaseKind = "correct_score_away_no"
	WincaseGoalHomeYes         WincaseKind = "goal_home_yes"
	WincaseGoalHomeNo          WincaseKind = "goal_home_no"
	WincaseGoalBothYes         WincaseKind = "goal_both_yes"
	WincaseGoalBothNo          WincaseKind = "goal_both_no"
	WincaseGoalAwayYes         WincaseKind = "goal_away_yes"
	WincaseGoalAwayNo          WincaseKind = "goal_away_no"
	WincaseTotalOver           WincaseKind = "total_over"
	WincaseTotalUnder          WincaseKind = "total_under"
	WincaseTotalHomeOver       WincaseKind = "total_home_over"
	WincaseTotalHomeUnder      WincaseKind = "total_home_under"
	WincaseTotalAwayOver       WincaseKind = "total_away_over"
	WincaseTotalAwayUnder      WincaseKind = "total_away_under"
)

// Wincase is one side of a market's complementary outcome pair. Like Market
// it is a comparable value type; the threshold mirrors the owning market's.
type Wincase struct {
	Kind      WincaseKind `json:"kind"`
	Threshold int32       `json:"threshold,omitempty"`
}

func (w Wincase) String() string {
	switch w.Kind {
	case WincaseHandicapOver, WincaseHandicapUnder,
		WincaseTotalOver, WincaseTotalUnder,
		WincaseTotalHomeOver, WincaseTotalHomeUnder,
		WincaseTotalAwayOver, WincaseTotalAwayUnder:
		return fmt.Sprintf("%s:%d", w.Kind, w.Threshold)
	}
	return string(w.Kind)
}

// Market returns the market this wincase belongs to
func (w Wincase) Market() Market {
	switch w.Kind {
	case WincaseResultHomeYes, WincaseResultHomeNo:
		return Market{Kind: MarketResultHome}
	case WincaseResultDrawYes, WincaseResultDrawNo:
		return Market{Kind: MarketResultDraw}
	case WincaseResultAwayYes, WincaseResultAwayNo:
		return Market{Kind: MarketResultAway}
	case WincaseHandicapOver, WincaseHandicapUnder:
		return Market{Kind: MarketHandicap, Threshold: w.Threshold}
	case WincaseCorrectScoreHomeYes, WincaseCorrectScoreHomeNo:
		return Market{Kind: MarketCorrectScoreHome}
	case WincaseCorrectScoreDrawYes, WincaseCorrectScoreDrawNo:
		return Market{Kind: MarketCorrectScoreDraw}
	case WincaseCorrectScoreAwayYes, WincaseCorrectScoreAwayNo:
		return Market{Kind: MarketCorrectScoreAway}
	case WincaseGoalHomeYes, WincaseGoalHomeNo:
		return Market{Kind: MarketGoalHome}
	case WincaseGoalBothYes, WincaseGoalBothNo:
		return Market{Kind: MarketGoalBoth}
	case WincaseGoalAwayYes, WincaseGoalAwayNo:
		return Market{Kind: MarketGoalAway}
	case WincaseTotalOver, WincaseTotalUnder:
		return Market{Kind: MarketTotal, Threshold: w.Threshold}
	case WincaseTotalHomeOver, WincaseTotalHomeUnder:
		return Market{Kind: MarketTotalHome, Threshold: w.Threshold}
	case WincaseTotalAwayOver, WincaseTotalAwayUnder:
		return Market{Kind: MarketTotalAway, Threshold: w.Threshold}
	}
	panic(fmt.Sprintf("entities: no market mapping for wincase kind %q", w.Kind))
}

// Opposite returns the other side of this wincase's complementary pair
func (w Wincase) Opposite() Wincase {
	first, second := WincasesOf(w.Market())
	if w == first {
		return second
	}
	return first
}

// SortWincases orders a wincase set canonically (kind, then threshold)
func SortWincases(wincases []Wincase) {
	sort.Slice(wincases, func(i, j int) bool {
		if wincases[i].Kind != wincases[j].Kind {
			return wincases[i].Kind < wincases[j].Kind
		}
		return wincases[i].Threshold < wincases[j].Threshold
	})
}

// ContainsWincase reports whether the set contains the given wincase by value
func ContainsWincase(wincases []Wincase, w Wincase) bool {
	for _, member := range wincases {
		if member == w {
			return true
		}
	}
	return false
}

// Validate rejects wincases outside the catalogue or carrying an
// unresolvable threshold. Operation payloads decode permissively, so the
// services call this before deriving the owning market from user input.
func (w Wincase) Validate() error {
	if !isKnownWincaseKind(w.Kind) {
		return NewValidationErrorf("unknown wincase kind %q", w.Kind)
	}
	if !w.IsValid() {
		return NewValidationErrorf("wincase '%s' is invalid", w)
	}
	return nil
}

func isKnownWincaseKind(k WincaseKind) bool {
	switch k {
	case WincaseResultHomeYes, WincaseResultHomeNo,
		WincaseResultDrawYes, WincaseResultDrawNo,
		WincaseResultAwayYes, WincaseResultAwayNo,
		WincaseHandicapOver, WincaseHandicapUnder,
		WincaseCorrectScoreHomeYes, WincaseCorrectScoreHomeNo,
		WincaseCorrectScoreDrawYes, WincaseCorrectScoreDrawNo,
		WincaseCorrectScoreAwayYes, WincaseCorrectScoreAwayNo,
		WincaseGoalHomeYes, WincaseGoalHomeNo,
		WincaseGoalBothYes, WincaseGoalBothNo,
		WincaseGoalAwayYes, WincaseGoalAwayNo,
		WincaseTotalOver, WincaseTotalUnder,
		WincaseTotalHomeOver, WincaseTotalHomeUnder,
		WincaseTotalAwayOver, WincaseTotalAwayUnder:
		return true
	}
	return false
}

// IsValid reports whether the wincase is resolvable. A total-family line at
// zero or below cannot split the outcome space, so it can never resolve.
func (w Wincase) IsValid() bool {
	switch w.Kind {
	case WincaseTotalOver, WincaseTotalUnder,
		WincaseTotalHomeOver, WincaseTotalHomeUnder,
		WincaseTotalAwayOver, WincaseTotalAwayUnder:
		return w.Threshold > 0
	}
	return true
}
