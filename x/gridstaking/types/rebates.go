package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// RebatePool is the per-epoch pool of collected query fees and effective
// allocation weights. Redemption is exact-settlement: every claim takes its
// Cobb-Douglas share of the remaining pool against the remaining totals, so
// sequential claims sum exactly to the pool's fees; integer-division dust
// accrues to the pool and is swept by the final claim.
type RebatePool struct {
	Epoch                     uint64   `json:"epoch"`
	Fees                      math.Int `json:"fees"`
	EffectiveAllocationTotal  math.Int `json:"effective_allocation_total"`
	ClaimedRewards            math.Int `json:"claimed_rewards"`
	ClaimedFees               math.Int `json:"claimed_fees"`
	ClaimedEffectiveAllocation math.Int `json:"claimed_effective_allocation"`
	UnclaimedAllocationsCount uint64   `json:"unclaimed_allocations_count"`
}

// NewRebatePool creates an empty rebate pool for a settlement epoch
func NewRebatePool(epoch uint64) RebatePool {
	return RebatePool{
		Epoch:                      epoch,
		Fees:                       math.ZeroInt(),
		EffectiveAllocationTotal:   math.ZeroInt(),
		ClaimedRewards:             math.ZeroInt(),
		ClaimedFees:                math.ZeroInt(),
		ClaimedEffectiveAllocation: math.ZeroInt(),
	}
}

// Validate checks the pool is internally consistent.
func (p RebatePool) Validate() error {
	for _, amt := range []math.Int{
		p.Fees, p.EffectiveAllocationTotal,
		p.ClaimedRewards, p.ClaimedFees, p.ClaimedEffectiveAllocation,
	} {
		if amt.IsNil() || amt.IsNegative() {
			return fmt.Errorf("rebate pool amounts cannot be nil or negative")
		}
	}
	if p.ClaimedRewards.GT(p.Fees) {
		return fmt.Errorf("claimed rewards %s exceed pool fees %s", p.ClaimedRewards, p.Fees)
	}
	if p.ClaimedFees.GT(p.Fees) {
		return fmt.Errorf("claimed fees %s exceed pool fees %s", p.ClaimedFees, p.Fees)
	}
	if p.ClaimedEffectiveAllocation.GT(p.EffectiveAllocationTotal) {
		return fmt.Errorf("claimed effective allocation exceeds total")
	}
	return nil
}

// AddAllocation folds a settling allocation's fees and effective allocation
// into the pool.
func (p *RebatePool) AddAllocation(fees, effectiveAllocation math.Int) {
	p.Fees = p.Fees.Add(fees)
	p.EffectiveAllocationTotal = p.EffectiveAllocationTotal.Add(effectiveAllocation)
	p.UnclaimedAllocationsCount++
}

// AddFees folds late fees (collected after close, before claim) into the pool
// without registering another claimant.
func (p *RebatePool) AddFees(fees math.Int) {
	p.Fees = p.Fees.Add(fees)
}

// Redeem settles one allocation's share and mutates the pool accounting. The
// final claim sweeps everything left, including rounding dust.
func (p *RebatePool) Redeem(fees, effectiveAllocation math.Int, alphaNumerator, alphaDenominator uint64) (math.Int, error) {
	if p.UnclaimedAllocationsCount == 0 {
		return math.ZeroInt(), fmt.Errorf("pool has no unclaimed allocations")
	}

	remainingRewards := p.Fees.Sub(p.ClaimedRewards)
	remainingFees := p.Fees.Sub(p.ClaimedFees)
	remainingEffective := p.EffectiveAllocationTotal.Sub(p.ClaimedEffectiveAllocation)

	var rebate math.Int
	if p.UnclaimedAllocationsCount == 1 {
		rebate = remainingRewards
	} else {
		var err error
		rebate, err = CobbDouglas(remainingRewards, fees, remainingFees,
			effectiveAllocation, remainingEffective, alphaNumerator, alphaDenominator)
		if err != nil {
			return math.ZeroInt(), err
		}
		if rebate.GT(remainingRewards) {
			rebate = remainingRewards
		}
	}

	p.ClaimedRewards = p.ClaimedRewards.Add(rebate)
	p.ClaimedFees = p.ClaimedFees.Add(fees)
	p.ClaimedEffectiveAllocation = p.ClaimedEffectiveAllocation.Add(effectiveAllocation)
	p.UnclaimedAllocationsCount--

	return rebate, nil
}

// CobbDouglas computes total * (fees/totalFees)^alpha *
// (eff/totalEff)^(1-alpha) with alpha = alphaNumerator/alphaDenominator.
// The fractional exponents are evaluated as integer powers under a single
// alphaDenominator-th root. Rounding truncates in the pool's favor.
func CobbDouglas(total, fees, totalFees, eff, totalEff math.Int, alphaNumerator, alphaDenominator uint64) (math.Int, error) {
	if alphaDenominator == 0 {
		return math.ZeroInt(), fmt.Errorf("alpha denominator cannot be zero")
	}
	if alphaNumerator > alphaDenominator {
		return math.ZeroInt(), fmt.Errorf("alpha cannot exceed 1")
	}
	if total.IsZero() {
		return math.ZeroInt(), nil
	}

	// alpha = 1 degenerates to a fee-proportional split.
	if alphaNumerator == alphaDenominator {
		if totalFees.IsZero() {
			return math.ZeroInt(), nil
		}
		return math.LegacyNewDecFromInt(total).
			MulInt(fees).QuoInt(totalFees).TruncateInt(), nil
	}

	feeFactor, err := fraction(fees, totalFees).Power(alphaNumerator).ApproxRoot(alphaDenominator)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("fee factor root: %w", err)
	}
	effFactor, err := fraction(eff, totalEff).Power(alphaDenominator - alphaNumerator).ApproxRoot(alphaDenominator)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("effective allocation factor root: %w", err)
	}

	return math.LegacyNewDecFromInt(total).Mul(feeFactor).Mul(effFactor).TruncateInt(), nil
}

// fraction returns num/den in [0,1], with 0/0 treated as zero weight.
func fraction(num, den math.Int) math.LegacyDec {
	if den.IsZero() || num.IsZero() {
		return math.LegacyZeroDec()
	}
	ratio := math.LegacyNewDecFromInt(num).QuoInt(den)
	if ratio.GT(math.LegacyOneDec()) {
		return math.LegacyOneDec()
	}
	return ratio
}
