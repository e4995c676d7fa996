package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/epochs/types"
)

// Store keys for the epochs module
var (
	ParamsKey     = []byte{0x01, 0x01}
	EpochStateKey = []byte{0x01, 0x02}
)

// Keeper maintains the epoch clock. Epoch numbers are derived from block
// heights against a stored anchor, so no per-block writes are needed.
type Keeper struct {
	cdc       *codec.LegacyAmino
	storeKey  storetypes.StoreKey
	authority string
}

// NewKeeper creates a new epochs Keeper instance
func NewKeeper(cdc *codec.LegacyAmino, storeKey storetypes.StoreKey, authority string) *Keeper {
	return &Keeper{
		cdc:       cdc,
		storeKey:  storeKey,
		authority: authority,
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
		return types.ErrInvalidEpochLength.Wrap(err.Error())
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(ParamsKey, k.cdc.MustMarshal(&params))
	return nil
}

// GetEpochState returns the current epoch anchor. A missing anchor means the
// run started at genesis with the configured epoch length.
func (k Keeper) GetEpochState(ctx sdk.Context) types.EpochState {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(EpochStateKey)
	if bz == nil {
		return types.EpochState{EpochLength: k.GetParams(ctx).EpochLength}
	}

	var state types.EpochState
	k.cdc.MustUnmarshal(bz, &state)
	return state
}

// SetEpochState stores the epoch anchor
func (k Keeper) SetEpochState(ctx sdk.Context, state types.EpochState) error {
	if err := state.Validate(); err != nil {
		return err
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(EpochStateKey, k.cdc.MustMarshal(&state))
	return nil
}

// CurrentEpoch returns the epoch number at the current block height.
func (k Keeper) CurrentEpoch(ctx sdk.Context) uint64 {
	return k.GetEpochState(ctx).EpochAtHeight(ctx.BlockHeight())
}

// CurrentEpochStartHeight returns the first block of the current epoch.
func (k Keeper) CurrentEpochStartHeight(ctx sdk.Context) int64 {
	return k.GetEpochState(ctx).EpochStartHeight(ctx.BlockHeight())
}

// EpochsSince returns the number of whole epochs elapsed since the given
// epoch. Returns an error if the epoch is in the future.
func (k Keeper) EpochsSince(ctx sdk.Context, epoch uint64) (uint64, error) {
	current := k.CurrentEpoch(ctx)
	if epoch > current {
		return 0, types.ErrFutureEpoch.Wrapf("epoch %d, current %d", epoch, current)
	}
	return current - epoch, nil
}

// UpdateEpochLength re-anchors the epoch run at the current epoch and applies
// the new length going forward. Epoch numbers never move backwards.
func (k Keeper) UpdateEpochLength(ctx sdk.Context, epochLength uint64) (uint64, error) {
	if epochLength == 0 {
		return 0, types.ErrInvalidEpochLength.Wrap("epoch length must be positive")
	}

	current := k.CurrentEpoch(ctx)
	state := types.EpochState{
		EpochLength:           epochLength,
		LastLengthUpdateEpoch: current,
		LastLengthUpdateBlock: ctx.BlockHeight(),
	}
	if err := k.SetEpochState(ctx, state); err != nil {
		return 0, err
	}

	params := k.GetParams(ctx)
	params.EpochLength = epochLength
	if err := k.SetParams(ctx, params); err != nil {
		return 0, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEpochLengthUpdated,
			sdk.NewAttribute(types.AttributeKeyEpoch, fmt.Sprintf("%d", current)),
			sdk.NewAttribute(types.AttributeKeyEpochLength, fmt.Sprintf("%d", epochLength)),
			sdk.NewAttribute(types.AttributeKeyBlockHeight, fmt.Sprintf("%d", ctx.BlockHeight())),
		),
	)

	return current, nil
}

// InitGenesis initializes the module's state from a genesis state.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(fmt.Sprintf("failed to set epochs params: %s", err))
	}
	if err := k.SetEpochState(ctx, genState.State); err != nil {
		panic(fmt.Sprintf("failed to set epoch state: %s", err))
	}
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	return &types.GenesisState{
		Params: k.GetParams(ctx),
		State:  k.GetEpochState(ctx),
	}
}
