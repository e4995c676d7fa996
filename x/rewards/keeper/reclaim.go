package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

// SetDefaultReclaimAddress sets the sink for reclaimed rewards without a
// per-outcome override. Empty means reclaimed value is dropped unminted.
func (k Keeper) SetDefaultReclaimAddress(ctx sdk.Context, address string) {
	store := ctx.KVStore(k.storeKey)
	if address == "" {
		store.Delete(DefaultReclaimAddressKey)
		return
	}
	store.Set(DefaultReclaimAddressKey, []byte(address))
}

// GetDefaultReclaimAddress returns the default reclaim sink, empty when
// reclaimed value is dropped.
func (k Keeper) GetDefaultReclaimAddress(ctx sdk.Context) string {
	return string(ctx.KVStore(k.storeKey).Get(DefaultReclaimAddressKey))
}

// SetReclaimAddress sets a per-outcome reclaim sink override. Empty reverts
// the outcome to the default sink.
func (k Keeper) SetReclaimAddress(ctx sdk.Context, outcome, address string) error {
	if !types.IsReclaimOutcome(outcome) {
		return types.ErrUnknownOutcome.Wrap(outcome)
	}

	store := ctx.KVStore(k.storeKey)
	if address == "" {
		store.Delete(ReclaimAddressKey(outcome))
		return nil
	}
	store.Set(ReclaimAddressKey(outcome), []byte(address))
	return nil
}

// GetReclaimAddress resolves the sink for one outcome: the per-outcome
// override when set, the default otherwise.
func (k Keeper) GetReclaimAddress(ctx sdk.Context, outcome string) string {
	if bz := ctx.KVStore(k.storeKey).Get(ReclaimAddressKey(outcome)); bz != nil {
		return string(bz)
	}
	return k.GetDefaultReclaimAddress(ctx)
}

// GetReclaimAddressOverrides returns all per-outcome sink overrides
func (k Keeper) GetReclaimAddressOverrides(ctx sdk.Context) []types.ReclaimAddress {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, ReclaimAddressKeyPrefix)
	defer iterator.Close()

	var overrides []types.ReclaimAddress
	for ; iterator.Valid(); iterator.Next() {
		overrides = append(overrides, types.ReclaimAddress{
			Outcome: string(iterator.Key()[len(ReclaimAddressKeyPrefix):]),
			Address: string(iterator.Value()),
		})
	}
	return overrides
}

// GetReclaimTotal returns the cumulative reclaimed amount for one outcome
func (k Keeper) GetReclaimTotal(ctx sdk.Context, outcome string) math.Int {
	bz := ctx.KVStore(k.storeKey).Get(ReclaimTotalKey(outcome))
	if bz == nil {
		return math.ZeroInt()
	}

	var total math.Int
	k.cdc.MustUnmarshal(bz, &total)
	return total
}

// SetReclaimTotal stores the cumulative reclaimed amount for one outcome
func (k Keeper) SetReclaimTotal(ctx sdk.Context, outcome string, total math.Int) {
	store := ctx.KVStore(k.storeKey)
	store.Set(ReclaimTotalKey(outcome), k.cdc.MustMarshal(&total))
}

// GetReclaimTotals returns the cumulative reclaimed amounts per outcome
func (k Keeper) GetReclaimTotals(ctx sdk.Context) []types.ReclaimTotal {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, ReclaimTotalKeyPrefix)
	defer iterator.Close()

	var totals []types.ReclaimTotal
	for ; iterator.Valid(); iterator.Next() {
		var tokens math.Int
		k.cdc.MustUnmarshal(iterator.Value(), &tokens)
		totals = append(totals, types.ReclaimTotal{
			Outcome: string(iterator.Key()[len(ReclaimTotalKeyPrefix):]),
			Tokens:  tokens,
		})
	}
	return totals
}

// reclaim routes voided reward value. With a sink address the amount is
// minted and sent there; without one it is dropped, never minted. Either way
// the cumulative total advances and an event records the decision.
func (k Keeper) reclaim(ctx sdk.Context, outcome, subgraphID, allocationID string, tokens math.Int) error {
	if !tokens.IsPositive() {
		return nil
	}

	address := k.GetReclaimAddress(ctx, outcome)
	dropped := address == ""
	if !dropped {
		coins := sdk.NewCoins(sdk.NewCoin(k.stakingKeeper.StakeDenom(ctx), tokens))
		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
			return err
		}
		recipient := sdk.MustAccAddressFromBech32(address)
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
			return err
		}
	}

	k.SetReclaimTotal(ctx, outcome, k.GetReclaimTotal(ctx, outcome).Add(tokens))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRewardsReclaimed,
			sdk.NewAttribute(types.AttributeKeyOutcome, outcome),
			sdk.NewAttribute(types.AttributeKeySubgraphID, subgraphID),
			sdk.NewAttribute(types.AttributeKeyAllocationID, allocationID),
			sdk.NewAttribute(types.AttributeKeyTokens, tokens.String()),
			sdk.NewAttribute(types.AttributeKeyDropped, strconv.FormatBool(dropped)),
		),
	)

	return nil
}
