package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
	"github.com/grid-protocol/grid/x/rewards/types"
)

var _ gridstakingtypes.RewardsKeeper = (*Keeper)(nil)

// SettleAllocationRewards routes an allocation's accrued indexing rewards.
// The accumulators are folded first so the accrued value is current, then the
// freeze and reclaim policy decides: distribute to the staking module,
// reclaim to the configured sink, or defer by leaving the allocation's
// snapshot untouched.
//
// Precedence: a denied subgraph defers on interim settlement (the denial may
// be reversed before close) and reclaims at close; denial outranks indexer
// ineligibility. Signal conditions are judged at settlement time, not
// accrual time.
func (k *Keeper) SettleAllocationRewards(ctx sdk.Context, view gridstakingtypes.AllocationRewardsView) (gridstakingtypes.RewardsSettlement, error) {
	perToken, err := k.OnSubgraphAllocationUpdate(ctx, view.SubgraphID)
	if err != nil {
		return gridstakingtypes.RewardsSettlement{}, err
	}

	accrued := math.ZeroInt()
	if view.Tokens.IsPositive() {
		accrued = perToken.Sub(view.SnapshotPerToken).MulInt(view.Tokens).TruncateInt()
		if accrued.IsNegative() {
			accrued = math.ZeroInt()
		}
	}

	deferred := func(outcome string) (gridstakingtypes.RewardsSettlement, error) {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRewardsDeferred,
				sdk.NewAttribute(types.AttributeKeyAllocationID, view.ID),
				sdk.NewAttribute(types.AttributeKeySubgraphID, view.SubgraphID),
				sdk.NewAttribute(types.AttributeKeyOutcome, outcome),
			),
		)
		return gridstakingtypes.RewardsSettlement{
			Rewards:     math.ZeroInt(),
			Outcome:     outcome,
			NewSnapshot: view.SnapshotPerToken,
			Deferred:    true,
		}, nil
	}
	reclaimed := func(outcome string) (gridstakingtypes.RewardsSettlement, error) {
		if err := k.reclaim(ctx, outcome, view.SubgraphID, view.ID, accrued); err != nil {
			return gridstakingtypes.RewardsSettlement{}, err
		}
		return gridstakingtypes.RewardsSettlement{
			Rewards:     math.ZeroInt(),
			Outcome:     outcome,
			NewSnapshot: perToken,
		}, nil
	}

	if k.IsDenied(ctx, view.SubgraphID) {
		if !view.Closing {
			return deferred(types.OutcomeDeferredSubgraphDenied)
		}
		return reclaimed(types.OutcomeReclaimSubgraphDenied)
	}

	if !view.Closing && k.epochsKeeper.CurrentEpoch(ctx) == view.CreatedAtEpoch {
		return deferred(types.OutcomeDeferredTooYoung)
	}

	if accrued.IsZero() {
		return gridstakingtypes.RewardsSettlement{
			Rewards:     math.ZeroInt(),
			Outcome:     types.OutcomeNoRewards,
			NewSnapshot: perToken,
		}, nil
	}

	indexer := sdk.MustAccAddressFromBech32(view.Indexer)
	if !k.IsIndexerEligible(ctx, indexer) {
		return reclaimed(types.OutcomeReclaimIndexerIneligible)
	}

	params := k.GetParams(ctx)
	signal := k.curationKeeper.GetSubgraphSignal(ctx, view.SubgraphID)
	if signal.IsZero() {
		return reclaimed(types.OutcomeReclaimNoSignal)
	}
	if signal.LT(params.MinimumSubgraphSignal) {
		return reclaimed(types.OutcomeReclaimBelowMinimumSignal)
	}

	if view.ForcedClose {
		return reclaimed(types.OutcomeReclaimCloseAllocation)
	}
	if !view.PoiPresented {
		return reclaimed(types.OutcomeReclaimZeroPoi)
	}
	if staleness := k.epochsKeeper.CurrentEpoch(ctx) - view.LastPoiEpoch; staleness > params.MaxPoiStalenessEpochs {
		return reclaimed(types.OutcomeReclaimStalePoi)
	}

	coins := sdk.NewCoins(sdk.NewCoin(k.stakingKeeper.StakeDenom(ctx), accrued))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
		return gridstakingtypes.RewardsSettlement{}, err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToModule(ctx, types.ModuleName, types.StakingModuleName, coins); err != nil {
		return gridstakingtypes.RewardsSettlement{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRewardsDistributed,
			sdk.NewAttribute(types.AttributeKeyIndexer, view.Indexer),
			sdk.NewAttribute(types.AttributeKeyAllocationID, view.ID),
			sdk.NewAttribute(types.AttributeKeySubgraphID, view.SubgraphID),
			sdk.NewAttribute(types.AttributeKeyTokens, accrued.String()),
		),
	)

	return gridstakingtypes.RewardsSettlement{
		Rewards:     accrued,
		Outcome:     types.OutcomeDistributed,
		NewSnapshot: perToken,
	}, nil
}
