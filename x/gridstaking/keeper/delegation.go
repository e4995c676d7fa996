package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// GetDelegationPool returns an indexer's delegation pool
func (k Keeper) GetDelegationPool(ctx sdk.Context, indexer sdk.AccAddress) (types.DelegationPool, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(DelegationPoolKey(indexer))
	if bz == nil {
		return types.DelegationPool{}, false
	}

	var pool types.DelegationPool
	k.cdc.MustUnmarshal(bz, &pool)
	return pool, true
}

// SetDelegationPool stores an indexer's delegation pool
func (k Keeper) SetDelegationPool(ctx sdk.Context, pool types.DelegationPool) {
	indexer := sdk.MustAccAddressFromBech32(pool.Indexer)
	store := ctx.KVStore(k.storeKey)
	store.Set(DelegationPoolKey(indexer), k.cdc.MustMarshal(&pool))
}

// GetDelegation returns a delegator's position with an indexer
func (k Keeper) GetDelegation(ctx sdk.Context, indexer, delegator sdk.AccAddress) (types.Delegation, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(DelegationKey(indexer, delegator))
	if bz == nil {
		return types.Delegation{}, false
	}

	var delegation types.Delegation
	k.cdc.MustUnmarshal(bz, &delegation)
	return delegation, true
}

// SetDelegation stores a delegator's position
func (k Keeper) SetDelegation(ctx sdk.Context, delegation types.Delegation) {
	indexer := sdk.MustAccAddressFromBech32(delegation.Indexer)
	delegator := sdk.MustAccAddressFromBech32(delegation.Delegator)
	store := ctx.KVStore(k.storeKey)
	store.Set(DelegationKey(indexer, delegator), k.cdc.MustMarshal(&delegation))
}

// DeleteDelegation removes a fully exited delegation record
func (k Keeper) DeleteDelegation(ctx sdk.Context, indexer, delegator sdk.AccAddress) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(DelegationKey(indexer, delegator))
}

// IterateDelegations calls fn for every delegation record until fn returns
// true.
func (k Keeper) IterateDelegations(ctx sdk.Context, fn func(delegation types.Delegation) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, DelegationKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var delegation types.Delegation
		k.cdc.MustUnmarshal(iterator.Value(), &delegation)
		if fn(delegation) {
			break
		}
	}
}

// Delegate transfers tokens into an indexer's delegation pool and mints
// shares at the current share price.
func (k Keeper) Delegate(ctx sdk.Context, delegator, indexer sdk.AccAddress, tokens math.Int) (math.Int, error) {
	if err := k.bankKeeper.SendCoinsFromAccountToModule(
		ctx, delegator, types.ModuleName, k.stakeCoins(ctx, tokens),
	); err != nil {
		return math.Int{}, err
	}
	return k.delegateTokens(ctx, delegator, indexer, tokens)
}

// delegateTokens credits tokens already held by the module to a delegation
// pool. Shared by Delegate and redelegation on withdrawal.
func (k Keeper) delegateTokens(ctx sdk.Context, delegator, indexer sdk.AccAddress, tokens math.Int) (math.Int, error) {
	params := k.GetParams(ctx)

	if _, found := k.GetIndexerStake(ctx, indexer); !found {
		return math.Int{}, types.ErrIndexerNotFound.Wrap(indexer.String())
	}
	if tokens.LT(params.MinimumDelegation) {
		return math.Int{}, types.ErrBelowMinimumDelegation.Wrapf(
			"deposit %s, minimum %s", tokens, params.MinimumDelegation)
	}

	pool, found := k.GetDelegationPool(ctx, indexer)
	if !found {
		pool = types.NewDelegationPool(indexer.String())
	}

	shares, err := pool.SharesForTokens(tokens)
	if err != nil {
		return math.Int{}, types.ErrInvalidAmount.Wrap(err.Error())
	}
	if !shares.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("deposit too small at current share price")
	}

	pool.TotalTokens = pool.TotalTokens.Add(tokens)
	pool.TotalShares = pool.TotalShares.Add(shares)
	k.SetDelegationPool(ctx, pool)

	delegation, found := k.GetDelegation(ctx, indexer, delegator)
	if !found {
		delegation = types.NewDelegation(delegator.String(), indexer.String())
	}
	delegation.Shares = delegation.Shares.Add(shares)
	k.SetDelegation(ctx, delegation)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDelegated,
			sdk.NewAttribute(types.AttributeKeyDelegator, delegation.Delegator),
			sdk.NewAttribute(types.AttributeKeyIndexer, delegation.Indexer),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	return shares, nil
}

// Undelegate burns shares at the current share price and locks the released
// tokens until the unbonding epoch passes. Locked tokens leave the pool and
// stop counting towards the indexer's capacity immediately.
func (k Keeper) Undelegate(ctx sdk.Context, delegator, indexer sdk.AccAddress, shares math.Int) (math.Int, uint64, error) {
	params := k.GetParams(ctx)

	delegation, found := k.GetDelegation(ctx, indexer, delegator)
	if !found {
		return math.Int{}, 0, types.ErrDelegationNotFound.Wrapf(
			"delegator %s, indexer %s", delegator, indexer)
	}
	if shares.GT(delegation.Shares) {
		return math.Int{}, 0, types.ErrInsufficientShares.Wrapf(
			"requested %s, held %s", shares, delegation.Shares)
	}

	pool, found := k.GetDelegationPool(ctx, indexer)
	if !found {
		return math.Int{}, 0, types.ErrDelegationNotFound.Wrapf("no pool for indexer %s", indexer)
	}

	tokens := pool.TokensForShares(shares)
	pool.TotalTokens = pool.TotalTokens.Sub(tokens)
	pool.TotalShares = pool.TotalShares.Sub(shares)
	k.SetDelegationPool(ctx, pool)

	unlockEpoch := k.epochsKeeper.CurrentEpoch(ctx) + params.DelegationUnbondingEpochs
	delegation.Shares = delegation.Shares.Sub(shares)
	delegation.TokensLocked = delegation.TokensLocked.Add(tokens)
	delegation.TokensLockedUntilEpoch = unlockEpoch
	k.SetDelegation(ctx, delegation)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUndelegated,
			sdk.NewAttribute(types.AttributeKeyDelegator, delegation.Delegator),
			sdk.NewAttribute(types.AttributeKeyIndexer, delegation.Indexer),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			sdk.NewAttribute(types.AttributeKeyEpoch, fmt.Sprintf("%d", unlockEpoch)),
		),
	)

	return tokens, unlockEpoch, nil
}

// WithdrawDelegated releases unbonded delegation tokens to the delegator, or
// redelegates them to newIndexer without the funds leaving the module.
func (k Keeper) WithdrawDelegated(ctx sdk.Context, delegator, indexer, newIndexer sdk.AccAddress) (math.Int, error) {
	delegation, found := k.GetDelegation(ctx, indexer, delegator)
	if !found {
		return math.Int{}, types.ErrDelegationNotFound.Wrapf(
			"delegator %s, indexer %s", delegator, indexer)
	}

	tokens := delegation.WithdrawableTokens(k.epochsKeeper.CurrentEpoch(ctx))
	if !tokens.IsPositive() {
		return math.Int{}, types.ErrNothingToWithdraw.Wrap(delegator.String())
	}

	delegation.TokensLocked = math.ZeroInt()
	delegation.TokensLockedUntilEpoch = 0
	if delegation.Shares.IsZero() {
		k.DeleteDelegation(ctx, indexer, delegator)
	} else {
		k.SetDelegation(ctx, delegation)
	}

	if newIndexer != nil {
		if _, err := k.delegateTokens(ctx, delegator, newIndexer, tokens); err != nil {
			return math.Int{}, err
		}
	} else {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(
			ctx, types.ModuleName, delegator, k.stakeCoins(ctx, tokens),
		); err != nil {
			return math.Int{}, err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDelegationWithdrawn,
			sdk.NewAttribute(types.AttributeKeyDelegator, delegation.Delegator),
			sdk.NewAttribute(types.AttributeKeyIndexer, delegation.Indexer),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
		),
	)

	return tokens, nil
}

// SetDelegationParameters updates the cuts an indexer keeps from rewards and
// fees. Changes are rate-limited so delegators can react before their terms
// worsen.
func (k Keeper) SetDelegationParameters(
	ctx sdk.Context,
	indexer sdk.AccAddress,
	indexingRewardCut, queryFeeCut math.LegacyDec,
) error {
	params := k.GetParams(ctx)

	if _, found := k.GetIndexerStake(ctx, indexer); !found {
		return types.ErrIndexerNotFound.Wrap(indexer.String())
	}

	pool, found := k.GetDelegationPool(ctx, indexer)
	if !found {
		pool = types.NewDelegationPool(indexer.String())
	}

	if pool.UpdatedAtBlock != 0 {
		elapsed := ctx.BlockHeight() - pool.UpdatedAtBlock
		if elapsed < int64(params.DelegationParamsCooldownBlocks) {
			return types.ErrCooldownNotElapsed.Wrapf(
				"%d blocks since last update, cooldown %d",
				elapsed, params.DelegationParamsCooldownBlocks)
		}
	}

	pool.IndexingRewardCut = indexingRewardCut
	pool.QueryFeeCut = queryFeeCut
	pool.UpdatedAtBlock = ctx.BlockHeight()
	k.SetDelegationPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDelegationParams,
			sdk.NewAttribute(types.AttributeKeyIndexer, pool.Indexer),
			sdk.NewAttribute(types.AttributeKeyIndexingRewardCut, indexingRewardCut.String()),
			sdk.NewAttribute(types.AttributeKeyQueryFeeCut, queryFeeCut.String()),
		),
	)

	return nil
}

// creditDelegationPool adds reward or fee tokens to a pool without minting
// shares, raising the share price. Returns false when the pool has no shares
// to credit, in which case the caller keeps the tokens with the indexer.
func (k Keeper) creditDelegationPool(ctx sdk.Context, indexer sdk.AccAddress, tokens math.Int) bool {
	pool, found := k.GetDelegationPool(ctx, indexer)
	if !found || !pool.TotalShares.IsPositive() {
		return false
	}

	pool.TotalTokens = pool.TotalTokens.Add(tokens)
	k.SetDelegationPool(ctx, pool)
	return true
}

// IndexerCapacity returns the stake an indexer can still allocate: free own
// stake plus delegated tokens capped at the delegation ratio, minus tokens
// already allocated.
func (k Keeper) IndexerCapacity(ctx sdk.Context, indexer sdk.AccAddress) math.Int {
	stake, found := k.GetIndexerStake(ctx, indexer)
	if !found {
		return math.ZeroInt()
	}
	params := k.GetParams(ctx)

	ownFree := stake.TokensStaked.Sub(stake.TokensLocked)
	if ownFree.IsNegative() {
		ownFree = math.ZeroInt()
	}

	delegated := math.ZeroInt()
	if pool, ok := k.GetDelegationPool(ctx, indexer); ok {
		delegated = pool.TotalTokens
	}
	maxDelegated := ownFree.Mul(math.NewIntFromUint64(params.DelegationRatio))
	if delegated.GT(maxDelegated) {
		delegated = maxDelegated
	}

	capacity := ownFree.Add(delegated).Sub(stake.TokensAllocated)
	if capacity.IsNegative() {
		return math.ZeroInt()
	}
	return capacity
}
