package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// GetIndexerStake returns an indexer's stake record
func (k Keeper) GetIndexerStake(ctx sdk.Context, indexer sdk.AccAddress) (types.IndexerStake, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(IndexerStakeKey(indexer))
	if bz == nil {
		return types.IndexerStake{}, false
	}

	var stake types.IndexerStake
	k.cdc.MustUnmarshal(bz, &stake)
	return stake, true
}

// SetIndexerStake stores an indexer's stake record
func (k Keeper) SetIndexerStake(ctx sdk.Context, stake types.IndexerStake) {
	indexer := sdk.MustAccAddressFromBech32(stake.Indexer)
	store := ctx.KVStore(k.storeKey)
	store.Set(IndexerStakeKey(indexer), k.cdc.MustMarshal(&stake))
}

// IterateIndexerStakes calls fn for every indexer stake record until fn
// returns true.
func (k Keeper) IterateIndexerStakes(ctx sdk.Context, fn func(stake types.IndexerStake) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, IndexerStakeKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var stake types.IndexerStake
		k.cdc.MustUnmarshal(iterator.Value(), &stake)
		if fn(stake) {
			break
		}
	}
}

// Stake transfers tokens from the indexer to the module and credits its own
// stake. The first deposit must meet the protocol minimum.
func (k Keeper) Stake(ctx sdk.Context, indexer sdk.AccAddress, tokens math.Int) (math.Int, error) {
	params := k.GetParams(ctx)

	stake, found := k.GetIndexerStake(ctx, indexer)
	if !found {
		if tokens.LT(params.MinimumIndexerStake) {
			return math.Int{}, types.ErrBelowMinimumStake.Wrapf(
				"deposit %s, minimum %s", tokens, params.MinimumIndexerStake)
		}
		stake = types.NewIndexerStake(indexer.String())
	}

	if err := k.bankKeeper.SendCoinsFromAccountToModule(
		ctx, indexer, types.ModuleName, k.stakeCoins(ctx, tokens),
	); err != nil {
		return math.Int{}, err
	}

	stake.TokensStaked = stake.TokensStaked.Add(tokens)
	k.SetIndexerStake(ctx, stake)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStakeDeposited,
			sdk.NewAttribute(types.AttributeKeyIndexer, stake.Indexer),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
		),
	)

	return stake.TokensStaked, nil
}

// Unstake moves free stake into the thawing state. The remaining non-thawing
// stake must stay at zero or above the protocol minimum so an indexer cannot
// operate below it.
func (k Keeper) Unstake(ctx sdk.Context, indexer sdk.AccAddress, tokens math.Int) (int64, error) {
	params := k.GetParams(ctx)

	stake, found := k.GetIndexerStake(ctx, indexer)
	if !found {
		return 0, types.ErrIndexerNotFound.Wrap(indexer.String())
	}
	if tokens.GT(stake.TokensAvailable()) {
		return 0, types.ErrInsufficientStake.Wrapf(
			"requested %s, available %s", tokens, stake.TokensAvailable())
	}

	remaining := stake.TokensStaked.Sub(stake.TokensLocked).Sub(tokens)
	if !remaining.IsZero() && remaining.LT(params.MinimumIndexerStake) {
		return 0, types.ErrBelowMinimumStake.Wrapf(
			"remaining %s, minimum %s", remaining, params.MinimumIndexerStake)
	}

	until := ctx.BlockHeight() + int64(params.ThawingPeriodBlocks)
	stake.LockTokens(tokens, until)
	k.SetIndexerStake(ctx, stake)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStakeLocked,
			sdk.NewAttribute(types.AttributeKeyIndexer, stake.Indexer),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
			sdk.NewAttribute(types.AttributeKeyLockedUntil, fmt.Sprintf("%d", until)),
		),
	)

	return until, nil
}

// Withdraw releases thawed stake back to the indexer's account.
func (k Keeper) Withdraw(ctx sdk.Context, indexer sdk.AccAddress) (math.Int, error) {
	stake, found := k.GetIndexerStake(ctx, indexer)
	if !found {
		return math.Int{}, types.ErrIndexerNotFound.Wrap(indexer.String())
	}

	tokens := stake.WithdrawableTokens(ctx.BlockHeight())
	if !tokens.IsPositive() {
		return math.Int{}, types.ErrNothingToWithdraw.Wrap(indexer.String())
	}

	stake.UnlockTokens(tokens)
	stake.TokensStaked = stake.TokensStaked.Sub(tokens)
	k.SetIndexerStake(ctx, stake)

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(
		ctx, types.ModuleName, indexer, k.stakeCoins(ctx, tokens),
	); err != nil {
		return math.Int{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStakeWithdrawn,
			sdk.NewAttribute(types.AttributeKeyIndexer, stake.Indexer),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
		),
	)

	return tokens, nil
}

// Slash debits an indexer's own stake, burns the slashed amount net of the
// reward and pays the reward to the beneficiary. Thawing tokens are pulled
// back first so a pending withdrawal cannot shield stake from slashing.
func (k Keeper) Slash(
	ctx sdk.Context,
	indexer sdk.AccAddress,
	tokens, reward math.Int,
	beneficiary sdk.AccAddress,
) (math.Int, error) {
	stake, found := k.GetIndexerStake(ctx, indexer)
	if !found {
		return math.Int{}, types.ErrIndexerNotFound.Wrap(indexer.String())
	}
	if tokens.GT(stake.TokensStaked) {
		return math.Int{}, types.ErrSlashOverStake.Wrapf(
			"slash %s, staked %s", tokens, stake.TokensStaked)
	}
	if reward.GT(tokens) {
		return math.Int{}, types.ErrRewardOverSlash.Wrapf(
			"reward %s, slash %s", reward, tokens)
	}

	stake.TokensStaked = stake.TokensStaked.Sub(tokens)

	// Pull back thawing tokens that are no longer covered.
	if stake.TokensLocked.GT(stake.TokensStaked) {
		stake.UnlockTokens(stake.TokensLocked.Sub(stake.TokensStaked))
	}
	k.SetIndexerStake(ctx, stake)

	burned := tokens.Sub(reward)
	if burned.IsPositive() {
		if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, k.stakeCoins(ctx, burned)); err != nil {
			return math.Int{}, err
		}
	}
	if reward.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(
			ctx, types.ModuleName, beneficiary, k.stakeCoins(ctx, reward),
		); err != nil {
			return math.Int{}, err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStakeSlashed,
			sdk.NewAttribute(types.AttributeKeyIndexer, stake.Indexer),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
			sdk.NewAttribute(types.AttributeKeyRewards, reward.String()),
			sdk.NewAttribute(types.AttributeKeyBeneficiary, beneficiary.String()),
		),
	)

	return burned, nil
}

// SetRewardsDestination records where an indexer's claim and reward proceeds
// are sent. An empty destination restakes proceeds.
func (k Keeper) SetRewardsDestination(ctx sdk.Context, indexer sdk.AccAddress, destination string) error {
	stake, found := k.GetIndexerStake(ctx, indexer)
	if !found {
		return types.ErrIndexerNotFound.Wrap(indexer.String())
	}

	stake.RewardsDestination = destination
	k.SetIndexerStake(ctx, stake)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRewardsDestination,
			sdk.NewAttribute(types.AttributeKeyIndexer, stake.Indexer),
			sdk.NewAttribute(types.AttributeKeyDestination, destination),
		),
	)

	return nil
}
