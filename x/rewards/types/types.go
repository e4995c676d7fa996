package types

import (
	"fmt"

	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "rewards"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// StakingModuleName is the module account distributed rewards are sent to.
	StakingModuleName = "gridstaking"
)

// Settlement outcomes. Reclaim outcomes name the condition that voided the
// accrued value; deferred outcomes leave it on the allocation.
const (
	OutcomeDistributed = "distributed"
	OutcomeNoRewards   = "no_rewards"

	OutcomeReclaimNoSignal           = "reclaim_no_signal"
	OutcomeReclaimBelowMinimumSignal = "reclaim_below_minimum_signal"
	OutcomeReclaimSubgraphDenied     = "reclaim_subgraph_denied"
	OutcomeReclaimNoAllocatedTokens  = "reclaim_no_allocated_tokens"
	OutcomeReclaimZeroPoi            = "reclaim_zero_poi"
	OutcomeReclaimStalePoi           = "reclaim_stale_poi"
	OutcomeReclaimCloseAllocation    = "reclaim_close_allocation"
	OutcomeReclaimIndexerIneligible  = "reclaim_indexer_ineligible"

	OutcomeDeferredTooYoung       = "deferred_allocation_too_young"
	OutcomeDeferredSubgraphDenied = "deferred_subgraph_denied"
)

// GlobalRewardsState is the issuance accumulator. Issuance accrues lazily:
// AccRewardsPerSignal advances by issuance-per-block over total signal on
// first touch of any block.
type GlobalRewardsState struct {
	AccRewardsPerSignal math.LegacyDec `json:"acc_rewards_per_signal"`
	LastUpdatedBlock    int64          `json:"last_updated_block"`
}

// NewGlobalRewardsState creates a zeroed issuance accumulator
func NewGlobalRewardsState() GlobalRewardsState {
	return GlobalRewardsState{
		AccRewardsPerSignal: math.LegacyZeroDec(),
	}
}

// Validate checks the state is well-formed.
func (s GlobalRewardsState) Validate() error {
	if s.AccRewardsPerSignal.IsNil() || s.AccRewardsPerSignal.IsNegative() {
		return fmt.Errorf("acc rewards per signal cannot be nil or negative")
	}
	if s.LastUpdatedBlock < 0 {
		return fmt.Errorf("last updated block cannot be negative")
	}
	return nil
}

// SubgraphRewardsState carries a subgraph's two-level reward accumulators.
// The first level folds the subgraph's signal share of global issuance into
// AccRewardsForSubgraph; the second spreads the delta over the subgraph's
// allocated tokens.
type SubgraphRewardsState struct {
	SubgraphID string `json:"subgraph_id"`

	// AccRewardsForSubgraph is the total rewards ever accrued to the
	// subgraph, folded up to AccRewardsPerSignalSnapshot.
	AccRewardsForSubgraph       math.LegacyDec `json:"acc_rewards_for_subgraph"`
	AccRewardsPerSignalSnapshot math.LegacyDec `json:"acc_rewards_per_signal_snapshot"`

	// AccRewardsPerAllocatedToken spreads subgraph rewards over allocated
	// stake, folded up to AccRewardsForSubgraphSnapshot.
	AccRewardsPerAllocatedToken   math.LegacyDec `json:"acc_rewards_per_allocated_token"`
	AccRewardsForSubgraphSnapshot math.LegacyDec `json:"acc_rewards_for_subgraph_snapshot"`
}

// NewSubgraphRewardsState creates a zeroed accumulator state for a subgraph
func NewSubgraphRewardsState(subgraphID string) SubgraphRewardsState {
	return SubgraphRewardsState{
		SubgraphID:                    subgraphID,
		AccRewardsForSubgraph:         math.LegacyZeroDec(),
		AccRewardsPerSignalSnapshot:   math.LegacyZeroDec(),
		AccRewardsPerAllocatedToken:   math.LegacyZeroDec(),
		AccRewardsForSubgraphSnapshot: math.LegacyZeroDec(),
	}
}

// Validate checks the state is well-formed.
func (s SubgraphRewardsState) Validate() error {
	if s.SubgraphID == "" {
		return fmt.Errorf("subgraph id cannot be empty")
	}
	for _, dec := range []math.LegacyDec{
		s.AccRewardsForSubgraph, s.AccRewardsPerSignalSnapshot,
		s.AccRewardsPerAllocatedToken, s.AccRewardsForSubgraphSnapshot,
	} {
		if dec.IsNil() || dec.IsNegative() {
			return fmt.Errorf("subgraph accumulators cannot be nil or negative")
		}
	}
	return nil
}

// ReclaimTotal is the cumulative reclaimed amount for one settlement outcome.
type ReclaimTotal struct {
	Outcome string   `json:"outcome"`
	Tokens  math.Int `json:"tokens"`
}
