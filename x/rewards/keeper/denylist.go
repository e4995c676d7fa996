package keeper

import (
	"strconv"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

// SetDenied adds or removes a subgraph deployment from the rewards denylist.
// Idempotent: setting the current value changes nothing and emits no event.
func (k Keeper) SetDenied(ctx sdk.Context, subgraphID string, denied bool) {
	if k.IsDenied(ctx, subgraphID) == denied {
		return
	}

	store := ctx.KVStore(k.storeKey)
	if denied {
		store.Set(DeniedKey(subgraphID), []byte{1})
	} else {
		store.Delete(DeniedKey(subgraphID))
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubgraphDenied,
			sdk.NewAttribute(types.AttributeKeySubgraphID, subgraphID),
			sdk.NewAttribute(types.AttributeKeyDenied, strconv.FormatBool(denied)),
		),
	)
}

// IsDenied reports whether a subgraph deployment is on the denylist
func (k Keeper) IsDenied(ctx sdk.Context, subgraphID string) bool {
	return ctx.KVStore(k.storeKey).Has(DeniedKey(subgraphID))
}

// GetDeniedSubgraphs returns all denylisted subgraph deployments
func (k Keeper) GetDeniedSubgraphs(ctx sdk.Context) []string {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, DeniedKeyPrefix)
	defer iterator.Close()

	var ids []string
	for ; iterator.Valid(); iterator.Next() {
		ids = append(ids, string(iterator.Key()[len(DeniedKeyPrefix):]))
	}
	return ids
}

// SetIndexerEligible flips an indexer's reward eligibility. Indexers are
// eligible by default; only ineligibility is stored. Idempotent like
// SetDenied.
func (k Keeper) SetIndexerEligible(ctx sdk.Context, indexer sdk.AccAddress, eligible bool) {
	if k.IsIndexerEligible(ctx, indexer) == eligible {
		return
	}

	store := ctx.KVStore(k.storeKey)
	if eligible {
		store.Delete(IneligibleKey(indexer))
	} else {
		store.Set(IneligibleKey(indexer), []byte{1})
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeIndexerEligibility,
			sdk.NewAttribute(types.AttributeKeyIndexer, indexer.String()),
			sdk.NewAttribute(types.AttributeKeyEligible, strconv.FormatBool(eligible)),
		),
	)
}

// IsIndexerEligible reports whether an indexer may receive indexing rewards
func (k Keeper) IsIndexerEligible(ctx sdk.Context, indexer sdk.AccAddress) bool {
	return !ctx.KVStore(k.storeKey).Has(IneligibleKey(indexer))
}

// GetIneligibleIndexers returns all reward-ineligible indexers
func (k Keeper) GetIneligibleIndexers(ctx sdk.Context) []string {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, IneligibleKeyPrefix)
	defer iterator.Close()

	var addrs []string
	for ; iterator.Valid(); iterator.Next() {
		addr := sdk.AccAddress(iterator.Key()[len(IneligibleKeyPrefix):])
		addrs = append(addrs, addr.String())
	}
	return addrs
}
