package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

// Store key prefixes for the rewards module
var (
	ParamsKey      = []byte{0x01}
	GlobalStateKey = []byte{0x02}

	SubgraphStateKeyPrefix = []byte{0x10}
	DeniedKeyPrefix        = []byte{0x11}
	IneligibleKeyPrefix    = []byte{0x12}

	DefaultReclaimAddressKey = []byte{0x20}
	ReclaimAddressKeyPrefix  = []byte{0x21}
	ReclaimTotalKeyPrefix    = []byte{0x22}
)

// SubgraphStateKey returns the store key for a subgraph's accumulator state
func SubgraphStateKey(subgraphID string) []byte {
	return append(SubgraphStateKeyPrefix, []byte(subgraphID)...)
}

// DeniedKey returns the denylist store key for a subgraph
func DeniedKey(subgraphID string) []byte {
	return append(DeniedKeyPrefix, []byte(subgraphID)...)
}

// IneligibleKey returns the ineligibility store key for an indexer
func IneligibleKey(indexer sdk.AccAddress) []byte {
	return append(IneligibleKeyPrefix, indexer.Bytes()...)
}

// ReclaimAddressKey returns the store key for a per-outcome reclaim sink
func ReclaimAddressKey(outcome string) []byte {
	return append(ReclaimAddressKeyPrefix, []byte(outcome)...)
}

// ReclaimTotalKey returns the store key for a per-outcome reclaimed total
func ReclaimTotalKey(outcome string) []byte {
	return append(ReclaimTotalKeyPrefix, []byte(outcome)...)
}

// Keeper manages indexing reward issuance, the per-subgraph accumulators and
// the freeze and reclaim policy applied at settlement.
type Keeper struct {
	cdc       *codec.LegacyAmino
	storeKey  storetypes.StoreKey
	authority string

	bankKeeper     types.BankKeeper
	epochsKeeper   types.EpochsKeeper
	curationKeeper types.CurationKeeper
	stakingKeeper  types.StakingKeeper
}

// NewKeeper creates a new rewards Keeper instance
func NewKeeper(
	cdc *codec.LegacyAmino,
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	epochsKeeper types.EpochsKeeper,
	curationKeeper types.CurationKeeper,
	stakingKeeper types.StakingKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		authority:      authority,
		bankKeeper:     bankKeeper,
		epochsKeeper:   epochsKeeper,
		curationKeeper: curationKeeper,
		stakingKeeper:  stakingKeeper,
	}
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
		return types.ErrInvalidParams.Wrap(err.Error())
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(ParamsKey, k.cdc.MustMarshal(&params))
	return nil
}

// GetGlobalState returns the issuance accumulator
func (k Keeper) GetGlobalState(ctx sdk.Context) types.GlobalRewardsState {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(GlobalStateKey)
	if bz == nil {
		return types.NewGlobalRewardsState()
	}

	var state types.GlobalRewardsState
	k.cdc.MustUnmarshal(bz, &state)
	return state
}

// SetGlobalState stores the issuance accumulator
func (k Keeper) SetGlobalState(ctx sdk.Context, state types.GlobalRewardsState) {
	store := ctx.KVStore(k.storeKey)
	store.Set(GlobalStateKey, k.cdc.MustMarshal(&state))
}

// GetSubgraphState returns a subgraph's accumulator state
func (k Keeper) GetSubgraphState(ctx sdk.Context, subgraphID string) (types.SubgraphRewardsState, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(SubgraphStateKey(subgraphID))
	if bz == nil {
		return types.SubgraphRewardsState{}, false
	}

	var state types.SubgraphRewardsState
	k.cdc.MustUnmarshal(bz, &state)
	return state, true
}

// SetSubgraphState stores a subgraph's accumulator state
func (k Keeper) SetSubgraphState(ctx sdk.Context, state types.SubgraphRewardsState) {
	store := ctx.KVStore(k.storeKey)
	store.Set(SubgraphStateKey(state.SubgraphID), k.cdc.MustMarshal(&state))
}

// IterateSubgraphStates calls fn for every subgraph accumulator state until
// fn returns true.
func (k Keeper) IterateSubgraphStates(ctx sdk.Context, fn func(state types.SubgraphRewardsState) bool) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, SubgraphStateKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var state types.SubgraphRewardsState
		k.cdc.MustUnmarshal(iterator.Value(), &state)
		if fn(state) {
			break
		}
	}
}
