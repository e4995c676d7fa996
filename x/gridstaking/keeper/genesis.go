package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// InitGenesis initializes the module's state from a genesis state.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(fmt.Sprintf("failed to set staking params: %s", err))
	}

	for _, addr := range genState.Slashers {
		k.SetSlasher(ctx, sdk.MustAccAddressFromBech32(addr), true)
	}
	for _, addr := range genState.FeeSources {
		k.SetFeeSource(ctx, sdk.MustAccAddressFromBech32(addr), true)
	}

	for _, stake := range genState.Indexers {
		k.SetIndexerStake(ctx, stake)
	}
	for _, pool := range genState.DelegationPools {
		k.SetDelegationPool(ctx, pool)
	}
	for _, delegation := range genState.Delegations {
		k.SetDelegation(ctx, delegation)
	}
	for _, alloc := range genState.Allocations {
		k.SetAllocation(ctx, alloc)
	}
	for _, sa := range genState.SubgraphAllocations {
		k.SetSubgraphAllocatedTokens(ctx, sa.SubgraphID, sa.Tokens)
	}
	for _, pool := range genState.RebatePools {
		k.SetRebatePool(ctx, pool)
	}
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	genState := types.GenesisState{
		Params:     k.GetParams(ctx),
		Slashers:   k.GetSlashers(ctx),
		FeeSources: k.GetFeeSources(ctx),
	}

	k.IterateIndexerStakes(ctx, func(stake types.IndexerStake) bool {
		genState.Indexers = append(genState.Indexers, stake)
		return false
	})
	k.IterateDelegations(ctx, func(delegation types.Delegation) bool {
		genState.Delegations = append(genState.Delegations, delegation)
		return false
	})
	k.IterateAllocations(ctx, func(alloc types.Allocation) bool {
		genState.Allocations = append(genState.Allocations, alloc)
		return false
	})
	k.IterateSubgraphAllocations(ctx, func(subgraphID string, tokens math.Int) bool {
		genState.SubgraphAllocations = append(genState.SubgraphAllocations, types.SubgraphAllocation{
			SubgraphID: subgraphID,
			Tokens:     tokens,
		})
		return false
	})
	k.IterateRebatePools(ctx, func(pool types.RebatePool) bool {
		genState.RebatePools = append(genState.RebatePools, pool)
		return false
	})

	for _, stake := range genState.Indexers {
		indexer := sdk.MustAccAddressFromBech32(stake.Indexer)
		if pool, found := k.GetDelegationPool(ctx, indexer); found {
			genState.DelegationPools = append(genState.DelegationPools, pool)
		}
	}

	return &genState
}
