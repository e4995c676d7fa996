package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// AllocationState is the lifecycle state of an allocation. Closed, Stale and
// Finalized are derived from epochs rather than stored, so no background
// transition is ever needed.
type AllocationState int

const (
	AllocationNull AllocationState = iota
	AllocationActive
	AllocationStale
	AllocationClosed
	AllocationFinalized
)

// String returns the state name
func (s AllocationState) String() string {
	switch s {
	case AllocationNull:
		return "Null"
	case AllocationActive:
		return "Active"
	case AllocationStale:
		return "Stale"
	case AllocationClosed:
		return "Closed"
	case AllocationFinalized:
		return "Finalized"
	default:
		return fmt.Sprintf("AllocationState(%d)", int(s))
	}
}

// Allocation is a time-bounded commitment of stake and delegated capacity to
// indexing one subgraph. The record is never deleted: a claimed allocation
// keeps its indexer and subgraph for later dispute reference, and record
// existence doubles as the allocation-id replay check.
type Allocation struct {
	ID         string   `json:"id"`
	Indexer    string   `json:"indexer"`
	SubgraphID string   `json:"subgraph_id"`
	Tokens     math.Int `json:"tokens"`

	CreatedAtEpoch uint64 `json:"created_at_epoch"`
	// ClosedAtEpoch is zero while the allocation is open.
	ClosedAtEpoch uint64 `json:"closed_at_epoch"`

	// CollectedFees are query fees collected while Active, net of protocol
	// and curation cuts.
	CollectedFees math.Int `json:"collected_fees"`
	// EffectiveAllocation is tokens scaled by capped duration, set at close.
	EffectiveAllocation math.Int `json:"effective_allocation"`

	// AccRewardsPerAllocatedToken is the rewards accumulator snapshot taken
	// at creation and advanced at each successful rewards settlement.
	AccRewardsPerAllocatedToken math.LegacyDec `json:"acc_rewards_per_allocated_token"`
	// LastPoiEpoch is the epoch of the last accepted POI; creation starts the
	// staleness clock.
	LastPoiEpoch uint64 `json:"last_poi_epoch"`

	// Claimed is set once the rebate has been redeemed and the transient
	// fields purged.
	Claimed bool `json:"claimed"`
}

// NewAllocation creates an Active allocation.
func NewAllocation(id, indexer, subgraphID string, tokens math.Int, createdAtEpoch uint64, accRewardsSnapshot math.LegacyDec) Allocation {
	return Allocation{
		ID:                          id,
		Indexer:                     indexer,
		SubgraphID:                  subgraphID,
		Tokens:                      tokens,
		CreatedAtEpoch:              createdAtEpoch,
		CollectedFees:               math.ZeroInt(),
		EffectiveAllocation:         math.ZeroInt(),
		AccRewardsPerAllocatedToken: accRewardsSnapshot,
		LastPoiEpoch:                createdAtEpoch,
	}
}

// Validate checks the allocation record is well-formed.
func (a Allocation) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("allocation id cannot be empty")
	}
	if a.Indexer == "" {
		return fmt.Errorf("indexer address cannot be empty")
	}
	if a.SubgraphID == "" {
		return fmt.Errorf("subgraph id cannot be empty")
	}
	for _, amt := range []math.Int{a.Tokens, a.CollectedFees, a.EffectiveAllocation} {
		if amt.IsNil() || amt.IsNegative() {
			return fmt.Errorf("allocation amounts cannot be nil or negative")
		}
	}
	if a.AccRewardsPerAllocatedToken.IsNil() || a.AccRewardsPerAllocatedToken.IsNegative() {
		return fmt.Errorf("rewards snapshot cannot be nil or negative")
	}
	if a.ClosedAtEpoch != 0 && a.ClosedAtEpoch < a.CreatedAtEpoch {
		return fmt.Errorf("closed epoch %d before created epoch %d", a.ClosedAtEpoch, a.CreatedAtEpoch)
	}
	return nil
}

// State derives the lifecycle state at the given epoch.
func (a Allocation) State(currentEpoch, maxAllocationEpochs, disputeEpochs uint64) AllocationState {
	if a.Indexer == "" {
		return AllocationNull
	}
	if a.ClosedAtEpoch == 0 {
		if currentEpoch > a.CreatedAtEpoch && currentEpoch-a.CreatedAtEpoch > maxAllocationEpochs {
			return AllocationStale
		}
		return AllocationActive
	}
	if currentEpoch >= a.ClosedAtEpoch && currentEpoch-a.ClosedAtEpoch >= disputeEpochs {
		return AllocationFinalized
	}
	return AllocationClosed
}

// EpochsOpen returns the number of whole epochs the allocation has been open.
func (a Allocation) EpochsOpen(currentEpoch uint64) uint64 {
	if currentEpoch <= a.CreatedAtEpoch {
		return 0
	}
	return currentEpoch - a.CreatedAtEpoch
}

// ComputeEffectiveAllocation scales tokens by capped duration. The cap keeps
// indefinitely long-lived allocations from dominating the rebate pool.
func (a Allocation) ComputeEffectiveAllocation(epochsOpen, maxAllocationEpochs uint64) math.Int {
	duration := epochsOpen
	if duration > maxAllocationEpochs {
		duration = maxAllocationEpochs
	}
	return a.Tokens.Mul(math.NewIntFromUint64(duration))
}
