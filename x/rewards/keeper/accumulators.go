package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

// UpdateAccRewardsPerSignal folds issuance accrued since the last update into
// the global accumulator. Blocks with zero total signal lapse: their issuance
// is never minted.
func (k Keeper) UpdateAccRewardsPerSignal(ctx sdk.Context) types.GlobalRewardsState {
	state := k.GetGlobalState(ctx)
	height := ctx.BlockHeight()
	if height <= state.LastUpdatedBlock {
		return state
	}

	params := k.GetParams(ctx)
	issuance := params.IssuancePerBlock.MulRaw(height - state.LastUpdatedBlock)

	totalSignal := k.curationKeeper.GetTotalSignal(ctx)
	if totalSignal.IsPositive() && issuance.IsPositive() {
		state.AccRewardsPerSignal = state.AccRewardsPerSignal.Add(
			math.LegacyNewDecFromInt(issuance).QuoInt(totalSignal))
	}

	state.LastUpdatedBlock = height
	k.SetGlobalState(ctx, state)
	return state
}

// AccRewardsForSubgraph returns a subgraph's total accrued rewards including
// the unfolded signal share since its last snapshot.
func (k Keeper) AccRewardsForSubgraph(ctx sdk.Context, state types.SubgraphRewardsState, global types.GlobalRewardsState) math.LegacyDec {
	signal := k.curationKeeper.GetSubgraphSignal(ctx, state.SubgraphID)
	if !signal.IsPositive() {
		return state.AccRewardsForSubgraph
	}
	delta := global.AccRewardsPerSignal.Sub(state.AccRewardsPerSignalSnapshot)
	return state.AccRewardsForSubgraph.Add(delta.MulInt(signal))
}

// OnSubgraphAllocationUpdate folds accrued rewards down both accumulator
// levels and returns the updated per-allocated-token value. Callers invoke it
// before a subgraph's allocated token total changes so the pre-change total
// prices the accrued delta. Rewards accrued while the subgraph had no
// allocated stake are reclaimed.
func (k *Keeper) OnSubgraphAllocationUpdate(ctx sdk.Context, subgraphID string) (math.LegacyDec, error) {
	global := k.UpdateAccRewardsPerSignal(ctx)

	state, found := k.GetSubgraphState(ctx, subgraphID)
	if !found {
		state = types.NewSubgraphRewardsState(subgraphID)
	}

	accForSubgraph := k.AccRewardsForSubgraph(ctx, state, global)
	newRewards := accForSubgraph.Sub(state.AccRewardsForSubgraphSnapshot)

	if newRewards.IsPositive() {
		allocated := k.stakingKeeper.GetSubgraphAllocatedTokens(ctx, subgraphID)
		if allocated.IsPositive() {
			state.AccRewardsPerAllocatedToken = state.AccRewardsPerAllocatedToken.Add(
				newRewards.QuoInt(allocated))
		} else if err := k.reclaim(ctx, types.OutcomeReclaimNoAllocatedTokens,
			subgraphID, "", newRewards.TruncateInt()); err != nil {
			return math.LegacyDec{}, err
		}
	}

	state.AccRewardsForSubgraph = accForSubgraph
	state.AccRewardsPerSignalSnapshot = global.AccRewardsPerSignal
	state.AccRewardsForSubgraphSnapshot = accForSubgraph
	k.SetSubgraphState(ctx, state)

	return state.AccRewardsPerAllocatedToken, nil
}
