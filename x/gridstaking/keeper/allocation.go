package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// GetAllocation returns an allocation record by id
func (k Keeper) GetAllocation(ctx sdk.Context, id sdk.AccAddress) (types.Allocation, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(AllocationKey(id))
	if bz == nil {
		return types.Allocation{}, false
	}

	var alloc types.Allocation
	k.cdc.MustUnmarshal(bz, &alloc)
	return alloc, true
}

// SetAllocation stores an allocation record and maintains the per-indexer
// index.
func (k Keeper) SetAllocation(ctx sdk.Context, alloc types.Allocation) {
	id := sdk.MustAccAddressFromBech32(alloc.ID)
	indexer := sdk.MustAccAddressFromBech32(alloc.Indexer)

	store := ctx.KVStore(k.storeKey)
	store.Set(AllocationKey(id), k.cdc.MustMarshal(&alloc))
	store.Set(AllocationByIndexerKey(indexer, id), []byte{})
}

// IterateIndexerAllocations calls fn for every allocation of an indexer until
// fn returns true.
func (k Keeper) IterateIndexerAllocations(ctx sdk.Context, indexer sdk.AccAddress, fn func(alloc types.Allocation) bool) {
	store := ctx.KVStore(k.storeKey)
	prefix := append(AllocationByIndexerPrefix, address.MustLengthPrefix(indexer)...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		id := sdk.AccAddress(iterator.Key()[len(prefix):])
		alloc, found := k.GetAllocation(ctx, id)
		if !found {
			continue
		}
		if fn(alloc) {
			break
		}
	}
}

// IterateAllocations calls fn for every allocation record until fn returns
// true.
func (k Keeper) IterateAllocations(ctx sdk.Context, fn func(alloc types.Allocation) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, AllocationKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var alloc types.Allocation
		k.cdc.MustUnmarshal(iterator.Value(), &alloc)
		if fn(alloc) {
			break
		}
	}
}

// GetSubgraphAllocatedTokens returns the total tokens currently allocated
// towards a subgraph deployment.
func (k Keeper) GetSubgraphAllocatedTokens(ctx sdk.Context, subgraphID string) math.Int {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(SubgraphAllocationKey(subgraphID))
	if bz == nil {
		return math.ZeroInt()
	}

	var tokens math.Int
	k.cdc.MustUnmarshal(bz, &tokens)
	return tokens
}

// SetSubgraphAllocatedTokens stores a subgraph's allocated token total
func (k Keeper) SetSubgraphAllocatedTokens(ctx sdk.Context, subgraphID string, tokens math.Int) {
	store := ctx.KVStore(k.storeKey)
	if tokens.IsZero() {
		store.Delete(SubgraphAllocationKey(subgraphID))
		return
	}
	store.Set(SubgraphAllocationKey(subgraphID), k.cdc.MustMarshal(&tokens))
}

// IterateSubgraphAllocations calls fn for every subgraph with allocated
// tokens until fn returns true.
func (k Keeper) IterateSubgraphAllocations(ctx sdk.Context, fn func(subgraphID string, tokens math.Int) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, SubgraphAllocationKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var tokens math.Int
		k.cdc.MustUnmarshal(iterator.Value(), &tokens)
		if fn(string(iterator.Key()[len(SubgraphAllocationKeyPrefix):]), tokens) {
			break
		}
	}
}

// Allocate opens an allocation of stake towards a subgraph deployment. The
// allocation id is the address of a one-time key and the proof is that key's
// signature over indexer||id, so ids cannot be squatted or replayed: the
// record is never deleted and its existence is the replay check.
func (k Keeper) Allocate(
	ctx sdk.Context,
	indexer sdk.AccAddress,
	subgraphID string,
	tokens math.Int,
	allocationID sdk.AccAddress,
	pubkey, proof []byte,
) error {
	if _, found := k.GetIndexerStake(ctx, indexer); !found {
		return types.ErrIndexerNotFound.Wrap(indexer.String())
	}
	if _, exists := k.GetAllocation(ctx, allocationID); exists {
		return types.ErrAllocationExists.Wrap(allocationID.String())
	}
	if err := verifyAllocationProof(indexer, allocationID, pubkey, proof); err != nil {
		return err
	}

	if tokens.IsPositive() {
		capacity := k.IndexerCapacity(ctx, indexer)
		if tokens.GT(capacity) {
			return types.ErrInsufficientCapacity.Wrapf(
				"requested %s, capacity %s", tokens, capacity)
		}
	}

	// Fold accrued rewards into the subgraph accumulator before its
	// allocated total changes, and snapshot the result.
	snapshot, err := k.rewardsKeeper.OnSubgraphAllocationUpdate(ctx, subgraphID)
	if err != nil {
		return err
	}

	currentEpoch := k.epochsKeeper.CurrentEpoch(ctx)
	alloc := types.NewAllocation(
		allocationID.String(), indexer.String(), subgraphID, tokens, currentEpoch, snapshot)
	k.SetAllocation(ctx, alloc)

	stake, _ := k.GetIndexerStake(ctx, indexer)
	stake.TokensAllocated = stake.TokensAllocated.Add(tokens)
	k.SetIndexerStake(ctx, stake)

	k.SetSubgraphAllocatedTokens(ctx, subgraphID,
		k.GetSubgraphAllocatedTokens(ctx, subgraphID).Add(tokens))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAllocationCreated,
			sdk.NewAttribute(types.AttributeKeyIndexer, alloc.Indexer),
			sdk.NewAttribute(types.AttributeKeyAllocationID, alloc.ID),
			sdk.NewAttribute(types.AttributeKeySubgraphID, subgraphID),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
			sdk.NewAttribute(types.AttributeKeyEpoch, fmt.Sprintf("%d", currentEpoch)),
		),
	)

	return nil
}

// CloseAllocation closes an open allocation: accrued indexing rewards are
// settled, the capped effective allocation is fixed, and collected fees move
// into the current epoch's rebate pool. The indexer closes with a poi; once
// the allocation is stale anyone may close it, which forfeits its rewards.
func (k Keeper) CloseAllocation(ctx sdk.Context, sender, allocationID sdk.AccAddress, poi []byte) (string, error) {
	params := k.GetParams(ctx)
	currentEpoch := k.epochsKeeper.CurrentEpoch(ctx)

	alloc, found := k.GetAllocation(ctx, allocationID)
	if !found {
		return "", types.ErrAllocationNotFound.Wrap(allocationID.String())
	}

	state := alloc.State(currentEpoch, params.MaxAllocationEpochs, params.RebateDisputeEpochs)
	if state != types.AllocationActive && state != types.AllocationStale {
		return "", types.ErrInvalidAllocationState.Wrapf(
			"allocation %s is %s", alloc.ID, state)
	}
	if alloc.EpochsOpen(currentEpoch) == 0 {
		return "", types.ErrAllocationNotMature.Wrap(alloc.ID)
	}

	forced := sender.String() != alloc.Indexer
	if forced && state != types.AllocationStale {
		return "", types.ErrUnauthorized.Wrap("only the indexer can close an active allocation")
	}

	settlement, err := k.rewardsKeeper.SettleAllocationRewards(ctx, types.AllocationRewardsView{
		ID:               alloc.ID,
		Indexer:          alloc.Indexer,
		SubgraphID:       alloc.SubgraphID,
		Tokens:           alloc.Tokens,
		SnapshotPerToken: alloc.AccRewardsPerAllocatedToken,
		CreatedAtEpoch:   alloc.CreatedAtEpoch,
		LastPoiEpoch:     alloc.LastPoiEpoch,
		PoiPresented:     len(poi) > 0,
		Closing:          true,
		ForcedClose:      forced,
	})
	if err != nil {
		return "", err
	}
	if settlement.Rewards.IsPositive() {
		if err := k.distributeIndexingRewards(ctx, alloc, settlement.Rewards); err != nil {
			return "", err
		}
	}

	alloc.AccRewardsPerAllocatedToken = settlement.NewSnapshot
	alloc.ClosedAtEpoch = currentEpoch
	alloc.EffectiveAllocation = alloc.ComputeEffectiveAllocation(
		alloc.EpochsOpen(currentEpoch), params.MaxAllocationEpochs)
	k.SetAllocation(ctx, alloc)

	indexer := sdk.MustAccAddressFromBech32(alloc.Indexer)
	stake, _ := k.GetIndexerStake(ctx, indexer)
	stake.TokensAllocated = stake.TokensAllocated.Sub(alloc.Tokens)
	if stake.TokensAllocated.IsNegative() {
		stake.TokensAllocated = math.ZeroInt()
	}
	k.SetIndexerStake(ctx, stake)

	k.SetSubgraphAllocatedTokens(ctx, alloc.SubgraphID,
		k.GetSubgraphAllocatedTokens(ctx, alloc.SubgraphID).Sub(alloc.Tokens))

	pool, found := k.GetRebatePool(ctx, currentEpoch)
	if !found {
		pool = types.NewRebatePool(currentEpoch)
	}
	pool.AddAllocation(alloc.CollectedFees, alloc.EffectiveAllocation)
	k.SetRebatePool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAllocationClosed,
			sdk.NewAttribute(types.AttributeKeyIndexer, alloc.Indexer),
			sdk.NewAttribute(types.AttributeKeyAllocationID, alloc.ID),
			sdk.NewAttribute(types.AttributeKeySubgraphID, alloc.SubgraphID),
			sdk.NewAttribute(types.AttributeKeyEpoch, fmt.Sprintf("%d", currentEpoch)),
			sdk.NewAttribute(types.AttributeKeyFees, alloc.CollectedFees.String()),
			sdk.NewAttribute(types.AttributeKeyEffectiveAllocation, alloc.EffectiveAllocation.String()),
			sdk.NewAttribute(types.AttributeKeyRewards, settlement.Rewards.String()),
			sdk.NewAttribute(types.AttributeKeyOutcome, settlement.Outcome),
		),
	)

	return settlement.Outcome, nil
}

// PresentPoi settles accrued indexing rewards on an open allocation without
// closing it, restarting the staleness clock on success.
func (k Keeper) PresentPoi(ctx sdk.Context, indexer, allocationID sdk.AccAddress, poi []byte) (types.RewardsSettlement, error) {
	params := k.GetParams(ctx)
	currentEpoch := k.epochsKeeper.CurrentEpoch(ctx)

	alloc, found := k.GetAllocation(ctx, allocationID)
	if !found {
		return types.RewardsSettlement{}, types.ErrAllocationNotFound.Wrap(allocationID.String())
	}
	if alloc.Indexer != indexer.String() {
		return types.RewardsSettlement{}, types.ErrUnauthorized.Wrap("only the indexer can present a poi")
	}

	state := alloc.State(currentEpoch, params.MaxAllocationEpochs, params.RebateDisputeEpochs)
	if state != types.AllocationActive && state != types.AllocationStale {
		return types.RewardsSettlement{}, types.ErrInvalidAllocationState.Wrapf(
			"allocation %s is %s", alloc.ID, state)
	}

	settlement, err := k.rewardsKeeper.SettleAllocationRewards(ctx, types.AllocationRewardsView{
		ID:               alloc.ID,
		Indexer:          alloc.Indexer,
		SubgraphID:       alloc.SubgraphID,
		Tokens:           alloc.Tokens,
		SnapshotPerToken: alloc.AccRewardsPerAllocatedToken,
		CreatedAtEpoch:   alloc.CreatedAtEpoch,
		LastPoiEpoch:     alloc.LastPoiEpoch,
		PoiPresented:     len(poi) > 0,
	})
	if err != nil {
		return types.RewardsSettlement{}, err
	}
	if settlement.Rewards.IsPositive() {
		if err := k.distributeIndexingRewards(ctx, alloc, settlement.Rewards); err != nil {
			return types.RewardsSettlement{}, err
		}
	}

	alloc.AccRewardsPerAllocatedToken = settlement.NewSnapshot
	if len(poi) > 0 && !settlement.Deferred {
		alloc.LastPoiEpoch = currentEpoch
	}
	k.SetAllocation(ctx, alloc)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoiPresented,
			sdk.NewAttribute(types.AttributeKeyIndexer, alloc.Indexer),
			sdk.NewAttribute(types.AttributeKeyAllocationID, alloc.ID),
			sdk.NewAttribute(types.AttributeKeyEpoch, fmt.Sprintf("%d", currentEpoch)),
			sdk.NewAttribute(types.AttributeKeyRewards, settlement.Rewards.String()),
			sdk.NewAttribute(types.AttributeKeyOutcome, settlement.Outcome),
		),
	)

	return settlement, nil
}

// distributeIndexingRewards splits minted rewards between the indexer and its
// delegation pool by the indexing reward cut. The rewards have already been
// transferred to the module account by the rewards keeper.
func (k Keeper) distributeIndexingRewards(ctx sdk.Context, alloc types.Allocation, rewards math.Int) error {
	indexer := sdk.MustAccAddressFromBech32(alloc.Indexer)

	cut := math.LegacyOneDec()
	if pool, found := k.GetDelegationPool(ctx, indexer); found {
		cut = pool.IndexingRewardCut
	}

	indexerShare := cut.MulInt(rewards).TruncateInt()
	delegationShare := rewards.Sub(indexerShare)

	if delegationShare.IsPositive() && !k.creditDelegationPool(ctx, indexer, delegationShare) {
		indexerShare = indexerShare.Add(delegationShare)
		delegationShare = math.ZeroInt()
	}

	if indexerShare.IsPositive() {
		if err := k.payoutToIndexer(ctx, indexer, indexerShare); err != nil {
			return err
		}
	}

	if delegationShare.IsPositive() {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeDelegated,
				sdk.NewAttribute(types.AttributeKeyIndexer, alloc.Indexer),
				sdk.NewAttribute(types.AttributeKeyDelegationRewards, delegationShare.String()),
			),
		)
	}

	return nil
}

// payoutToIndexer routes proceeds to the indexer's rewards destination, or
// restakes them when none is set.
func (k Keeper) payoutToIndexer(ctx sdk.Context, indexer sdk.AccAddress, tokens math.Int) error {
	stake, found := k.GetIndexerStake(ctx, indexer)
	if !found {
		return types.ErrIndexerNotFound.Wrap(indexer.String())
	}

	if stake.RewardsDestination != "" {
		destination := sdk.MustAccAddressFromBech32(stake.RewardsDestination)
		return k.bankKeeper.SendCoinsFromModuleToAccount(
			ctx, types.ModuleName, destination, k.stakeCoins(ctx, tokens))
	}

	stake.TokensStaked = stake.TokensStaked.Add(tokens)
	k.SetIndexerStake(ctx, stake)
	return nil
}

// verifyAllocationProof checks that the pubkey hashes to the allocation id
// and that the proof is the one-time key's signature over indexer||id.
func verifyAllocationProof(indexer, allocationID sdk.AccAddress, pubkey, proof []byte) error {
	if len(pubkey) != secp256k1.PubKeySize {
		return types.ErrInvalidAllocationProof.Wrapf("pubkey must be %d bytes", secp256k1.PubKeySize)
	}

	pk := &secp256k1.PubKey{Key: pubkey}
	if !allocationID.Equals(sdk.AccAddress(pk.Address())) {
		return types.ErrInvalidAllocationProof.Wrap("pubkey does not match allocation id")
	}

	message := append(indexer.Bytes(), allocationID.Bytes()...)
	if !pk.VerifySignature(message, proof) {
		return types.ErrInvalidAllocationProof.Wrap("signature verification failed")
	}
	return nil
}
