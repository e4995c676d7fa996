package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	epochskeeper "github.com/grid-protocol/grid/x/epochs/keeper"
	epochstypes "github.com/grid-protocol/grid/x/epochs/types"
)

// EpochsKeeper creates a standalone epochs keeper over a fresh MemDB store.
func EpochsKeeper(t testing.TB) (*epochskeeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(epochstypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	amino := codec.NewLegacyAmino()
	epochstypes.RegisterLegacyAminoCodec(amino)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	k := epochskeeper.NewKeeper(amino, storeKey, authority.String())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())
	k.InitGenesis(ctx, *epochstypes.DefaultGenesis())

	return k, ctx
}

// AdvanceEpochs returns a context whose block height is n epochs past the
// given context's height.
func AdvanceEpochs(ctx sdk.Context, k *epochskeeper.Keeper, n uint64) sdk.Context {
	length := k.GetEpochState(ctx).EpochLength
	return ctx.WithBlockHeight(ctx.BlockHeight() + int64(n*length))
}

// AdvanceBlocks returns a context whose block height is n blocks later.
func AdvanceBlocks(ctx sdk.Context, n int64) sdk.Context {
	return ctx.WithBlockHeight(ctx.BlockHeight() + n)
}
