package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params defines the parameters for the staking module.
type Params struct {
	// StakeDenom is the denom staked, delegated and collected as fees.
	StakeDenom string `json:"stake_denom"`
	// MinimumIndexerStake is the smallest first deposit accepted.
	MinimumIndexerStake math.Int `json:"minimum_indexer_stake"`
	// ThawingPeriodBlocks is the withdrawal thawing period for indexer stake.
	ThawingPeriodBlocks uint64 `json:"thawing_period_blocks"`
	// DelegationRatio caps usable delegated capacity at a multiple of self-stake.
	DelegationRatio uint64 `json:"delegation_ratio"`
	// DelegationUnbondingEpochs is the undelegation lock measured in epochs.
	DelegationUnbondingEpochs uint64 `json:"delegation_unbonding_epochs"`
	// DelegationParamsCooldownBlocks rate-limits delegation cut changes.
	DelegationParamsCooldownBlocks uint64 `json:"delegation_params_cooldown_blocks"`
	// MinimumDelegation is the smallest delegation deposit accepted.
	MinimumDelegation math.Int `json:"minimum_delegation"`
	// MaxAllocationEpochs caps the effective duration of an allocation.
	MaxAllocationEpochs uint64 `json:"max_allocation_epochs"`
	// RebateDisputeEpochs is the window between close and claim.
	RebateDisputeEpochs uint64 `json:"rebate_dispute_epochs"`
	// ProtocolFeeCut is the fraction of collected query fees burned.
	ProtocolFeeCut math.LegacyDec `json:"protocol_fee_cut"`
	// CurationFeeCut is the fraction of collected query fees forwarded to the
	// curation pool when the subgraph is curated.
	CurationFeeCut math.LegacyDec `json:"curation_fee_cut"`
	// AlphaNumerator/AlphaDenominator tune the Cobb-Douglas rebate blend.
	AlphaNumerator   uint64 `json:"alpha_numerator"`
	AlphaDenominator uint64 `json:"alpha_denominator"`
}

// DefaultParams returns default staking parameters
func DefaultParams() Params {
	return Params{
		StakeDenom:                     "ugrid",
		MinimumIndexerStake:            math.NewInt(100_000),
		ThawingPeriodBlocks:            40_320,
		DelegationRatio:                16,
		DelegationUnbondingEpochs:      28,
		DelegationParamsCooldownBlocks: 7_200,
		MinimumDelegation:              math.NewInt(1_000),
		MaxAllocationEpochs:            28,
		RebateDisputeEpochs:            7,
		ProtocolFeeCut:                 math.LegacyNewDecWithPrec(1, 2),  // 1%
		CurationFeeCut:                 math.LegacyNewDecWithPrec(10, 2), // 10%
		AlphaNumerator:                 77,
		AlphaDenominator:               100,
	}
}

// Validate validates the parameter set
func (p Params) Validate() error {
	if p.StakeDenom == "" {
		return fmt.Errorf("stake denom cannot be empty")
	}
	if p.MinimumIndexerStake.IsNil() || p.MinimumIndexerStake.IsNegative() {
		return fmt.Errorf("minimum indexer stake cannot be negative")
	}
	if p.ThawingPeriodBlocks == 0 {
		return fmt.Errorf("thawing period must be positive")
	}
	if p.DelegationUnbondingEpochs == 0 {
		return fmt.Errorf("delegation unbonding period must be positive")
	}
	if p.MinimumDelegation.IsNil() || p.MinimumDelegation.IsNegative() {
		return fmt.Errorf("minimum delegation cannot be negative")
	}
	if p.MaxAllocationEpochs == 0 {
		return fmt.Errorf("max allocation epochs must be positive")
	}
	if err := validateCut(p.ProtocolFeeCut); err != nil {
		return fmt.Errorf("protocol fee cut: %w", err)
	}
	if err := validateCut(p.CurationFeeCut); err != nil {
		return fmt.Errorf("curation fee cut: %w", err)
	}
	if !p.ProtocolFeeCut.Add(p.CurationFeeCut).LTE(math.LegacyOneDec()) {
		return fmt.Errorf("protocol and curation cuts cannot sum above 1")
	}
	if p.AlphaDenominator == 0 {
		return fmt.Errorf("alpha denominator must be positive")
	}
	if p.AlphaNumerator > p.AlphaDenominator {
		return fmt.Errorf("alpha cannot exceed 1")
	}
	return nil
}

func validateCut(cut math.LegacyDec) error {
	if cut.IsNil() {
		return fmt.Errorf("cut is nil")
	}
	if cut.IsNegative() || cut.GT(math.LegacyOneDec()) {
		return fmt.Errorf("cut %s outside [0,1]", cut)
	}
	return nil
}
