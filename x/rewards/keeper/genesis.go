package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

// InitGenesis initializes the rewards module state from a genesis state
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(err)
	}

	k.SetGlobalState(ctx, genState.GlobalState)

	for _, state := range genState.SubgraphStates {
		k.SetSubgraphState(ctx, state)
	}

	for _, id := range genState.DeniedSubgraphs {
		k.SetDenied(ctx, id, true)
	}

	for _, addr := range genState.IneligibleIndexers {
		k.SetIndexerEligible(ctx, sdk.MustAccAddressFromBech32(addr), false)
	}

	if genState.DefaultReclaimAddress != "" {
		k.SetDefaultReclaimAddress(ctx, genState.DefaultReclaimAddress)
	}

	for _, ra := range genState.ReclaimAddresses {
		if err := k.SetReclaimAddress(ctx, ra.Outcome, ra.Address); err != nil {
			panic(err)
		}
	}

	for _, rt := range genState.ReclaimTotals {
		k.SetReclaimTotal(ctx, rt.Outcome, rt.Tokens)
	}
}

// ExportGenesis returns the rewards module's exported genesis state
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	genesis := types.DefaultGenesis()
	genesis.Params = k.GetParams(ctx)
	genesis.GlobalState = k.GetGlobalState(ctx)

	k.IterateSubgraphStates(ctx, func(state types.SubgraphRewardsState) bool {
		genesis.SubgraphStates = append(genesis.SubgraphStates, state)
		return false
	})

	genesis.DeniedSubgraphs = k.GetDeniedSubgraphs(ctx)
	genesis.IneligibleIndexers = k.GetIneligibleIndexers(ctx)
	genesis.DefaultReclaimAddress = k.GetDefaultReclaimAddress(ctx)
	genesis.ReclaimAddresses = k.GetReclaimAddressOverrides(ctx)
	genesis.ReclaimTotals = k.GetReclaimTotals(ctx)

	return genesis
}
