package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SubgraphAllocation records the total tokens allocated towards a subgraph
// deployment across all open allocations.
type SubgraphAllocation struct {
	SubgraphID string   `json:"subgraph_id"`
	Tokens     math.Int `json:"tokens"`
}

// GenesisState defines the staking module's genesis state
type GenesisState struct {
	Params              Params               `json:"params"`
	Slashers            []string             `json:"slashers,omitempty"`
	FeeSources          []string             `json:"fee_sources,omitempty"`
	Indexers            []IndexerStake       `json:"indexers,omitempty"`
	DelegationPools     []DelegationPool     `json:"delegation_pools,omitempty"`
	Delegations         []Delegation         `json:"delegations,omitempty"`
	Allocations         []Allocation         `json:"allocations,omitempty"`
	SubgraphAllocations []SubgraphAllocation `json:"subgraph_allocations,omitempty"`
	RebatePools         []RebatePool         `json:"rebate_pools,omitempty"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	for _, addr := range gs.Slashers {
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return fmt.Errorf("invalid slasher address %s: %w", addr, err)
		}
	}
	for _, addr := range gs.FeeSources {
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return fmt.Errorf("invalid fee source address %s: %w", addr, err)
		}
	}
	seenIndexers := make(map[string]bool)
	for _, stake := range gs.Indexers {
		if err := stake.Validate(); err != nil {
			return err
		}
		if seenIndexers[stake.Indexer] {
			return fmt.Errorf("duplicate indexer %s", stake.Indexer)
		}
		seenIndexers[stake.Indexer] = true
	}
	for _, pool := range gs.DelegationPools {
		if !seenIndexers[pool.Indexer] {
			return fmt.Errorf("delegation pool for unknown indexer %s", pool.Indexer)
		}
		if pool.TotalTokens.IsNegative() || pool.TotalShares.IsNegative() {
			return fmt.Errorf("negative delegation pool for indexer %s", pool.Indexer)
		}
	}
	seenAllocations := make(map[string]bool)
	for _, alloc := range gs.Allocations {
		if seenAllocations[alloc.ID] {
			return fmt.Errorf("duplicate allocation %s", alloc.ID)
		}
		seenAllocations[alloc.ID] = true
		if _, err := sdk.AccAddressFromBech32(alloc.Indexer); err != nil {
			return fmt.Errorf("invalid allocation indexer %s: %w", alloc.Indexer, err)
		}
	}
	return nil
}
