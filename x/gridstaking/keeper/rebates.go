package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// GetRebatePool returns the rebate pool for a settlement epoch
func (k Keeper) GetRebatePool(ctx sdk.Context, epoch uint64) (types.RebatePool, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(RebatePoolKey(epoch))
	if bz == nil {
		return types.RebatePool{}, false
	}

	var pool types.RebatePool
	k.cdc.MustUnmarshal(bz, &pool)
	return pool, true
}

// SetRebatePool stores a rebate pool
func (k Keeper) SetRebatePool(ctx sdk.Context, pool types.RebatePool) {
	store := ctx.KVStore(k.storeKey)
	store.Set(RebatePoolKey(pool.Epoch), k.cdc.MustMarshal(&pool))
}

// IterateRebatePools calls fn for every rebate pool until fn returns true.
func (k Keeper) IterateRebatePools(ctx sdk.Context, fn func(pool types.RebatePool) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, RebatePoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.RebatePool
		k.cdc.MustUnmarshal(iterator.Value(), &pool)
		if fn(pool) {
			break
		}
	}
}

// CollectFees credits query fees against an allocation. The protocol cut is
// burned and the curation cut forwarded before the remainder is credited; an
// open allocation accrues the net on its record, a closed one adds it
// directly to its settlement epoch's rebate pool without registering another
// claimant.
func (k Keeper) CollectFees(ctx sdk.Context, source, allocationID sdk.AccAddress, tokens math.Int) (math.Int, error) {
	params := k.GetParams(ctx)

	alloc, found := k.GetAllocation(ctx, allocationID)
	if !found {
		return math.Int{}, types.ErrAllocationNotFound.Wrap(allocationID.String())
	}
	if alloc.Claimed {
		return math.Int{}, types.ErrInvalidAllocationState.Wrapf(
			"allocation %s already claimed", alloc.ID)
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(
		ctx, source, types.ModuleName, k.stakeCoins(ctx, tokens),
	); err != nil {
		return math.Int{}, err
	}

	protocolFee := params.ProtocolFeeCut.MulInt(tokens).TruncateInt()
	if protocolFee.IsPositive() {
		if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, k.stakeCoins(ctx, protocolFee)); err != nil {
			return math.Int{}, err
		}
	}

	curationFee := params.CurationFeeCut.MulInt(tokens).TruncateInt()
	if curationFee.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToModule(
			ctx, types.ModuleName, types.CurationPoolName, k.stakeCoins(ctx, curationFee),
		); err != nil {
			return math.Int{}, err
		}
		if err := k.curationKeeper.Collect(ctx, alloc.SubgraphID, curationFee); err != nil {
			return math.Int{}, err
		}
	}

	net := tokens.Sub(protocolFee).Sub(curationFee)

	if alloc.ClosedAtEpoch == 0 {
		alloc.CollectedFees = alloc.CollectedFees.Add(net)
		k.SetAllocation(ctx, alloc)
	} else {
		pool, found := k.GetRebatePool(ctx, alloc.ClosedAtEpoch)
		if !found {
			return math.Int{}, types.ErrRebatePoolNotFound.Wrapf("epoch %d", alloc.ClosedAtEpoch)
		}
		pool.AddFees(net)
		k.SetRebatePool(ctx, pool)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAllocationCollected,
			sdk.NewAttribute(types.AttributeKeyAllocationID, alloc.ID),
			sdk.NewAttribute(types.AttributeKeySubgraphID, alloc.SubgraphID),
			sdk.NewAttribute(types.AttributeKeyFees, net.String()),
			sdk.NewAttribute(types.AttributeKeyProtocolFee, protocolFee.String()),
			sdk.NewAttribute(types.AttributeKeyCurationFee, curationFee.String()),
		),
	)

	return net, nil
}

// Claim redeems the query fee rebate for a closed allocation once the dispute
// window has elapsed. The rebate is split with the delegation pool by the
// query fee cut; the indexer's share is restaked or paid out.
func (k Keeper) Claim(ctx sdk.Context, indexer, allocationID sdk.AccAddress, restake bool) (math.Int, error) {
	params := k.GetParams(ctx)
	currentEpoch := k.epochsKeeper.CurrentEpoch(ctx)

	alloc, found := k.GetAllocation(ctx, allocationID)
	if !found {
		return math.Int{}, types.ErrAllocationNotFound.Wrap(allocationID.String())
	}
	if alloc.Indexer != indexer.String() {
		return math.Int{}, types.ErrUnauthorized.Wrap("only the indexer can claim")
	}
	if alloc.Claimed {
		return math.Int{}, types.ErrAlreadyClaimed.Wrap(alloc.ID)
	}

	switch state := alloc.State(currentEpoch, params.MaxAllocationEpochs, params.RebateDisputeEpochs); state {
	case types.AllocationFinalized:
	case types.AllocationClosed:
		return math.Int{}, types.ErrDisputeWindowOpen.Wrapf(
			"closed at epoch %d, dispute window %d epochs", alloc.ClosedAtEpoch, params.RebateDisputeEpochs)
	default:
		return math.Int{}, types.ErrInvalidAllocationState.Wrapf(
			"allocation %s is %s", alloc.ID, state)
	}

	pool, found := k.GetRebatePool(ctx, alloc.ClosedAtEpoch)
	if !found {
		return math.Int{}, types.ErrRebatePoolNotFound.Wrapf("epoch %d", alloc.ClosedAtEpoch)
	}

	rebate, err := pool.Redeem(alloc.CollectedFees, alloc.EffectiveAllocation,
		params.AlphaNumerator, params.AlphaDenominator)
	if err != nil {
		return math.Int{}, types.ErrRebatePoolEmpty.Wrap(err.Error())
	}
	k.SetRebatePool(ctx, pool)

	// Purge the transient settlement fields; the record itself stays as the
	// replay check and dispute reference.
	alloc.Claimed = true
	alloc.CollectedFees = math.ZeroInt()
	alloc.EffectiveAllocation = math.ZeroInt()
	k.SetAllocation(ctx, alloc)

	if rebate.IsPositive() {
		if err := k.distributeRebate(ctx, indexer, rebate, restake); err != nil {
			return math.Int{}, err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRebateClaimed,
			sdk.NewAttribute(types.AttributeKeyIndexer, alloc.Indexer),
			sdk.NewAttribute(types.AttributeKeyAllocationID, alloc.ID),
			sdk.NewAttribute(types.AttributeKeyEpoch, fmt.Sprintf("%d", alloc.ClosedAtEpoch)),
			sdk.NewAttribute(types.AttributeKeyRebate, rebate.String()),
		),
	)

	return rebate, nil
}

// distributeRebate splits a redeemed rebate between the indexer and its
// delegation pool by the query fee cut.
func (k Keeper) distributeRebate(ctx sdk.Context, indexer sdk.AccAddress, rebate math.Int, restake bool) error {
	cut := math.LegacyOneDec()
	if pool, found := k.GetDelegationPool(ctx, indexer); found {
		cut = pool.QueryFeeCut
	}

	indexerShare := cut.MulInt(rebate).TruncateInt()
	delegationShare := rebate.Sub(indexerShare)

	if delegationShare.IsPositive() && !k.creditDelegationPool(ctx, indexer, delegationShare) {
		indexerShare = indexerShare.Add(delegationShare)
	}

	if !indexerShare.IsPositive() {
		return nil
	}

	if restake {
		stake, found := k.GetIndexerStake(ctx, indexer)
		if !found {
			return types.ErrIndexerNotFound.Wrap(indexer.String())
		}
		stake.TokensStaked = stake.TokensStaked.Add(indexerShare)
		k.SetIndexerStake(ctx, stake)
		return nil
	}

	return k.payoutToIndexer(ctx, indexer, indexerShare)
}
