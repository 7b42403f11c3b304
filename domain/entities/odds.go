package entities

import (
	"fmt"
	"math"
	"math/bits"
)

// Odds is a rational betting coefficient greater than one, European style:
// a winning stake s pays out floor(s * Numerator / Denominator). Odds are
// stored simplified so that structural equality compares the ratio itself.
type Odds struct {
	Numerator   int32 `json:"numerator"`
	Denominator int32 `json:"denominator"`
}

// NewOdds builds simplified odds and validates them
func NewOdds(numerator, denominator int32) (Odds, error) {
	o := Odds{Numerator: numerator, Denominator: denominator}
	if err := o.Validate(); err != nil {
		return Odds{}, err
	}
	return o.simplified(), nil
}

// Validate rejects odds that are not a finite ratio greater than one
func (o Odds) Validate() error {
	if o.Denominator <= 0 {
		return NewValidationErrorf("odds denominator must be positive, got %d", o.Denominator)
	}
	if o.Numerator <= o.Denominator {
		return NewValidationErrorf("odds '%s' must be greater than one", o)
	}
	return nil
}

func (o Odds) simplified() Odds {
	d := gcd32(o.Numerator, o.Denominator)
	return Odds{Numerator: o.Numerator / d, Denominator: o.Denominator / d}
}

func gcd32(a, b int32) int32 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func (o Odds) String() string {
	return fmt.Sprintf("%d/%d", o.Numerator, o.Denominator)
}

// Inverted returns the complementary odds n/(n-d). Two opposing bets form a
// consistent book exactly when each side's odds are the other's inversion;
// inversion is an involution on valid odds.
func (o Odds) Inverted() Odds {
	return Odds{Numerator: o.Numerator, Denominator: o.Numerator - o.Denominator}.simplified()
}

// IsInversionOf reports whether o and other are a complementary odds pair
func (o Odds) IsInversionOf(other Odds) bool {
	return o.simplified().Inverted() == other.simplified()
}

// Payout returns the full payout of a winning stake at these odds, rounded
// down. Flooring never manufactures value for either side. The product is
// taken in 128 bits, so a large stake never wraps; a payout beyond the
// int64 range saturates at MaxInt64. The stake must be non-negative.
func (o Odds) Payout(stake int64) int64 {
	target, ok := o.payout(stake)
	if !ok {
		return math.MaxInt64
	}
	return target
}

// FitsPayout reports whether the stake's payout target is representable as
// an int64. Bets whose target is not are rejected at placement.
func (o Odds) FitsPayout(stake int64) bool {
	_, ok := o.payout(stake)
	return ok
}

func (o Odds) payout(stake int64) (int64, bool) {
	hi, lo := bits.Mul64(uint64(stake), uint64(o.Numerator))
	den := uint64(o.Denominator)
	if hi >= den {
		return 0, false
	}
	quo, _ := bits.Div64(hi, lo, den)
	if quo > math.MaxInt64 {
		return 0, false
	}
	return int64(quo), true
}

// MatchedStake records how much of each side's stake a single pairing
// consumed. The amounts debited from the two pending bets are exactly these,
// so stake is conserved by construction.
type MatchedStake struct {
	Bet1 int64
	Bet2 int64
}

// CalculateMatchedStake computes the fill between two opposing bets. Each
// side's payout target is its stake times its odds, floored. The side with
// the smaller target is consumed in full; the other side contributes exactly
// the smaller side's win part (target minus stake), so both sides' payout
// obligations settle against the same pool and no residual value appears.
//
// A contribution can round to zero when a stake is too small to cover one
// unit of the opposite win part; such a pairing produces no trade.
func CalculateMatchedStake(stake1, stake2 int64, odds1, odds2 Odds) (MatchedStake, error) {
	if !odds1.IsInversionOf(odds2) {
		return MatchedStake{}, NewValidationErrorf(
			"odds '%s' and '%s' are not a complementary pair", odds1, odds2)
	}

	target1, ok := odds1.payout(stake1)
	if !ok {
		return MatchedStake{}, NewValidationErrorf(
			"payout of stake %d at odds '%s' is out of range", stake1, odds1)
	}
	target2, ok := odds2.payout(stake2)
	if !ok {
		return MatchedStake{}, NewValidationErrorf(
			"payout of stake %d at odds '%s' is out of range", stake2, odds2)
	}

	switch {
	case target1 > target2:
		return MatchedStake{Bet1: target2 - stake2, Bet2: stake2}, nil
	case target1 < target2:
		return MatchedStake{Bet1: stake1, Bet2: target1 - stake1}, nil
	default:
		return MatchedStake{Bet1: stake1, Bet2: stake2}, nil
	}
}
