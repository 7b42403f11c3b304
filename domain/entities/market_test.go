package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thresholdFor(k MarketKind) int32 {
	m := Market{Kind: k}
	if m.HasThreshold() {
		return 500
	}
	return 0
}

func TestWincasesOf_CoversEveryKind(t *testing.T) {
	seen := make(map[Wincase]struct{})

	for _, kind := range AllMarketKinds {
		market := Market{Kind: kind, Threshold: thresholdFor(kind)}

		require.NotPanics(t, func() {
			WincasesOf(market)
		}, "market kind %s has no wincase pair", kind)

		first, second := WincasesOf(market)
		assert.NotEqual(t, first, second, "pair of %s collapsed", market)

		// both sides map back to their owning market
		assert.Equal(t, market, first.Market())
		assert.Equal(t, market, second.Market())

		// and each side is the other's opposite
		assert.Equal(t, second, first.Opposite())
		assert.Equal(t, first, second.Opposite())

		for _, w := range []Wincase{first, second} {
			_, dup := seen[w]
			assert.False(t, dup, "wincase %s belongs to two markets", w)
			seen[w] = struct{}{}
		}
	}

	assert.Len(t, seen, 2*len(AllMarketKinds))
}

func TestMarketValidate(t *testing.T) {
	tests := []struct {
		name    string
		market  Market
		wantErr string
	}{
		{
			name:   "plain result market",
			market: Market{Kind: MarketResultHome},
		},
		{
			name:   "total with positive threshold",
			market: Market{Kind: MarketTotal, Threshold: 1000},
		},
		{
			name:   "handicap at zero line",
			market: Market{Kind: MarketHandicap, Threshold: 0},
		},
		{
			name:   "negative handicap line",
			market: Market{Kind: MarketHandicap, Threshold: -500},
		},
		{
			name:    "total at zero",
			market:  Market{Kind: MarketTotal, Threshold: 0},
			wantErr: "wincase 'total_over:0' is invalid",
		},
		{
			name:    "total_home below zero",
			market:  Market{Kind: MarketTotalHome, Threshold: -500},
			wantErr: "wincase 'total_home_over:-500' is invalid",
		},
		{
			name:    "threshold on plain market",
			market:  Market{Kind: MarketResultDraw, Threshold: 500},
			wantErr: "does not take a threshold",
		},
		{
			name:    "unknown kind",
			market:  Market{Kind: "result_both"},
			wantErr: "unknown market kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.market.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateMarkets(t *testing.T) {
	t.Run("accepts a mixed valid set", func(t *testing.T) {
		err := ValidateMarkets([]Market{
			{Kind: MarketResultHome},
			{Kind: MarketTotal, Threshold: 500},
			{Kind: MarketTotal, Threshold: 1000},
			{Kind: MarketHandicap, Threshold: -500},
		})
		assert.NoError(t, err)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		err := ValidateMarkets([]Market{
			{Kind: MarketTotal, Threshold: 500},
			{Kind: MarketResultHome},
			{Kind: MarketTotal, Threshold: 500},
		})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "you provided duplicates in market list: 'total:500'")
	})

	t.Run("rejects duplicates before member validity", func(t *testing.T) {
		// two invalid duplicates: the duplicate wins
		err := ValidateMarkets([]Market{
			{Kind: MarketTotal, Threshold: 0},
			{Kind: MarketTotal, Threshold: 0},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicates")
	})

	t.Run("rejects invalid member", func(t *testing.T) {
		err := ValidateMarkets([]Market{
			{Kind: MarketResultHome},
			{Kind: MarketTotal, Threshold: 0},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wincase 'total_over:0' is invalid")
	})

	t.Run("same kind different thresholds is not a duplicate", func(t *testing.T) {
		err := ValidateMarkets([]Market{
			{Kind: MarketTotal, Threshold: 500},
			{Kind: MarketTotal, Threshold: 1000},
		})
		assert.NoError(t, err)
	})
}

func TestSortMarkets(t *testing.T) {
	markets := []Market{
		{Kind: MarketTotal, Threshold: 1000},
		{Kind: MarketHandicap, Threshold: -500},
		{Kind: MarketTotal, Threshold: 500},
		{Kind: MarketResultHome},
	}

	SortMarkets(markets)

	assert.Equal(t, []Market{
		{Kind: MarketHandicap, Threshold: -500},
		{Kind: MarketResultHome},
		{Kind: MarketTotal, Threshold: 500},
		{Kind: MarketTotal, Threshold: 1000},
	}, markets)
}

func TestDiffMarkets(t *testing.T) {
	old := []Market{
		{Kind: MarketResultHome},
		{Kind: MarketTotal, Threshold: 500},
		{Kind: MarketTotal, Threshold: 1000},
	}

	t.Run("superset removes nothing", func(t *testing.T) {
		removed := DiffMarkets(old, append([]Market{{Kind: MarketResultDraw}}, old...))
		assert.Empty(t, removed)
	})

	t.Run("subset removes the withdrawn markets", func(t *testing.T) {
		removed := DiffMarkets(old, []Market{{Kind: MarketTotal, Threshold: 1000}})
		assert.Equal(t, []Market{
			{Kind: MarketResultHome},
			{Kind: MarketTotal, Threshold: 500},
		}, removed)
	})

	t.Run("overlapping replacement removes only the missing ones", func(t *testing.T) {
		removed := DiffMarkets(old, []Market{
			{Kind: MarketResultHome},
			{Kind: MarketTotal, Threshold: 1000},
			{Kind: MarketHandicap, Threshold: 500},
		})
		assert.Equal(t, []Market{{Kind: MarketTotal, Threshold: 500}}, removed)
	})

	t.Run("identical sets remove nothing", func(t *testing.T) {
		assert.Empty(t, DiffMarkets(old, old))
	})
}

func TestWincaseString(t *testing.T) {
	assert.Equal(t, "total_over:1000", Wincase{Kind: WincaseTotalOver, Threshold: 1000}.String())
	assert.Equal(t, "result_home_yes", Wincase{Kind: WincaseResultHomeYes}.String())
	assert.Equal(t, "handicap_under:-500", Wincase{Kind: WincaseHandicapUnder, Threshold: -500}.String())
}

func TestMarketString(t *testing.T) {
	assert.Equal(t, "total:1000", Market{Kind: MarketTotal, Threshold: 1000}.String())
	assert.Equal(t, "result_away", Market{Kind: MarketResultAway}.String())
}
