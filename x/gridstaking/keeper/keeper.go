package keeper

import (
	"encoding/binary"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// Store key prefixes for the staking module
var (
	ParamsKey = []byte{0x01}

	SlasherKeyPrefix   = []byte{0x02}
	FeeSourceKeyPrefix = []byte{0x03}

	IndexerStakeKeyPrefix   = []byte{0x10}
	DelegationPoolKeyPrefix = []byte{0x11}
	DelegationKeyPrefix     = []byte{0x12}

	AllocationKeyPrefix         = []byte{0x20}
	AllocationByIndexerPrefix   = []byte{0x21}
	SubgraphAllocationKeyPrefix = []byte{0x22}

	RebatePoolKeyPrefix = []byte{0x30}
)

// IndexerStakeKey returns the store key for an indexer's stake record
func IndexerStakeKey(indexer sdk.AccAddress) []byte {
	return append(IndexerStakeKeyPrefix, indexer.Bytes()...)
}

// DelegationPoolKey returns the store key for an indexer's delegation pool
func DelegationPoolKey(indexer sdk.AccAddress) []byte {
	return append(DelegationPoolKeyPrefix, indexer.Bytes()...)
}

// DelegationKey returns the store key for a delegator's position with an indexer
func DelegationKey(indexer, delegator sdk.AccAddress) []byte {
	key := append(DelegationKeyPrefix, address.MustLengthPrefix(indexer)...)
	return append(key, delegator.Bytes()...)
}

// AllocationKey returns the store key for an allocation record
func AllocationKey(id sdk.AccAddress) []byte {
	return append(AllocationKeyPrefix, id.Bytes()...)
}

// AllocationByIndexerKey returns the secondary index key for an indexer's allocation
func AllocationByIndexerKey(indexer, id sdk.AccAddress) []byte {
	key := append(AllocationByIndexerPrefix, address.MustLengthPrefix(indexer)...)
	return append(key, id.Bytes()...)
}

// SubgraphAllocationKey returns the store key for a subgraph's allocated token total
func SubgraphAllocationKey(subgraphID string) []byte {
	return append(SubgraphAllocationKeyPrefix, []byte(subgraphID)...)
}

// RebatePoolKey returns the store key for an epoch's rebate pool
func RebatePoolKey(epoch uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, epoch)
	return append(RebatePoolKeyPrefix, bz...)
}

// Keeper manages indexer stake, delegation pools, allocations and query fee
// rebate pools.
type Keeper struct {
	cdc       *codec.LegacyAmino
	storeKey  storetypes.StoreKey
	authority string

	accountKeeper  types.AccountKeeper
	bankKeeper     types.BankKeeper
	epochsKeeper   types.EpochsKeeper
	curationKeeper types.CurationKeeper

	// rewardsKeeper is set after construction; the rewards keeper also
	// depends on this keeper.
	rewardsKeeper types.RewardsKeeper
}

// NewKeeper creates a new staking Keeper instance
func NewKeeper(
	cdc *codec.LegacyAmino,
	storeKey storetypes.StoreKey,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	epochsKeeper types.EpochsKeeper,
	curationKeeper types.CurationKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		authority:      authority,
		accountKeeper:  accountKeeper,
		bankKeeper:     bankKeeper,
		epochsKeeper:   epochsKeeper,
		curationKeeper: curationKeeper,
	}
}

// SetRewardsKeeper wires the rewards keeper after both keepers are
// constructed.
func (k *Keeper) SetRewardsKeeper(rk types.RewardsKeeper) {
	k.rewardsKeeper = rk
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetAuthority returns the module's authority account address
func (k Keeper) GetAuthority() string {
	return k.authority
}

// GetParams gets the module parameters from the store
func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	k.cdc.MustUnmarshal(bz, &params)
	return params
}

// SetParams sets the module parameters
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(ParamsKey, k.cdc.MustMarshal(&params))
	return nil
}

// SetSlasher adds or removes an address from the slasher allow-list
func (k Keeper) SetSlasher(ctx sdk.Context, slasher sdk.AccAddress, enabled bool) {
	store := ctx.KVStore(k.storeKey)
	key := append(SlasherKeyPrefix, slasher.Bytes()...)
	if enabled {
		store.Set(key, []byte{1})
	} else {
		store.Delete(key)
	}
}

// IsSlasher reports whether an address is on the slasher allow-list
func (k Keeper) IsSlasher(ctx sdk.Context, slasher sdk.AccAddress) bool {
	return ctx.KVStore(k.storeKey).Has(append(SlasherKeyPrefix, slasher.Bytes()...))
}

// GetSlashers returns all addresses on the slasher allow-list
func (k Keeper) GetSlashers(ctx sdk.Context) []string {
	return k.allowList(ctx, SlasherKeyPrefix)
}

// SetFeeSource adds or removes an address from the fee source allow-list
func (k Keeper) SetFeeSource(ctx sdk.Context, source sdk.AccAddress, enabled bool) {
	store := ctx.KVStore(k.storeKey)
	key := append(FeeSourceKeyPrefix, source.Bytes()...)
	if enabled {
		store.Set(key, []byte{1})
	} else {
		store.Delete(key)
	}
}

// IsFeeSource reports whether an address is on the fee source allow-list
func (k Keeper) IsFeeSource(ctx sdk.Context, source sdk.AccAddress) bool {
	return ctx.KVStore(k.storeKey).Has(append(FeeSourceKeyPrefix, source.Bytes()...))
}

// GetFeeSources returns all addresses on the fee source allow-list
func (k Keeper) GetFeeSources(ctx sdk.Context) []string {
	return k.allowList(ctx, FeeSourceKeyPrefix)
}

func (k Keeper) allowList(ctx sdk.Context, prefix []byte) []string {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var addrs []string
	for ; iterator.Valid(); iterator.Next() {
		addr := sdk.AccAddress(iterator.Key()[len(prefix):])
		addrs = append(addrs, addr.String())
	}
	return addrs
}

// StakeDenom returns the configured staking denom
func (k Keeper) StakeDenom(ctx sdk.Context) string {
	return k.GetParams(ctx).StakeDenom
}

// stakeCoins wraps a token amount in the staking denom
func (k Keeper) stakeCoins(ctx sdk.Context, amount math.Int) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(k.GetParams(ctx).StakeDenom, amount))
}
