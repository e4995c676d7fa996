package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

// RegisterInvariants registers the rewards module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "accumulator-monotonicity", AccumulatorMonotonicityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "reclaim-totals", ReclaimTotalsInvariant(k))
}

// AllInvariants runs all invariants of the rewards module
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if msg, broken := AccumulatorMonotonicityInvariant(k)(ctx); broken {
			return msg, broken
		}
		return ReclaimTotalsInvariant(k)(ctx)
	}
}

// AccumulatorMonotonicityInvariant checks that no subgraph snapshot runs
// ahead of the accumulator it snapshots and that no accumulator is negative.
func AccumulatorMonotonicityInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)

		global := k.GetGlobalState(ctx)
		if global.AccRewardsPerSignal.IsNegative() {
			broken = true
			msg += fmt.Sprintf("negative global accumulator %s\n", global.AccRewardsPerSignal)
		}

		k.IterateSubgraphStates(ctx, func(state types.SubgraphRewardsState) bool {
			if state.AccRewardsForSubgraph.IsNegative() ||
				state.AccRewardsPerAllocatedToken.IsNegative() {
				broken = true
				msg += fmt.Sprintf("negative accumulator for subgraph %s\n", state.SubgraphID)
			}
			if state.AccRewardsPerSignalSnapshot.GT(global.AccRewardsPerSignal) {
				broken = true
				msg += fmt.Sprintf(
					"subgraph %s per-signal snapshot %s exceeds global accumulator %s\n",
					state.SubgraphID, state.AccRewardsPerSignalSnapshot, global.AccRewardsPerSignal)
			}
			if state.AccRewardsForSubgraphSnapshot.GT(state.AccRewardsForSubgraph) {
				broken = true
				msg += fmt.Sprintf(
					"subgraph %s rewards snapshot %s exceeds accrued rewards %s\n",
					state.SubgraphID, state.AccRewardsForSubgraphSnapshot, state.AccRewardsForSubgraph)
			}
			return false
		})

		return sdk.FormatInvariant(types.ModuleName, "accumulator-monotonicity", msg), broken
	}
}

// ReclaimTotalsInvariant checks that cumulative reclaim totals never go
// negative.
func ReclaimTotalsInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)

		for _, total := range k.GetReclaimTotals(ctx) {
			if total.Tokens.IsNegative() {
				broken = true
				msg += fmt.Sprintf("negative reclaim total %s for outcome %s\n",
					total.Tokens, total.Outcome)
			}
		}

		return sdk.FormatInvariant(types.ModuleName, "reclaim-totals", msg), broken
	}
}
