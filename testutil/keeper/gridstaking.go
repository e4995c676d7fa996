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
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdkstd "github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	epochskeeper "github.com/grid-protocol/grid/x/epochs/keeper"
	epochstypes "github.com/grid-protocol/grid/x/epochs/types"
	gridstakingkeeper "github.com/grid-protocol/grid/x/gridstaking/keeper"
	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
	rewardskeeper "github.com/grid-protocol/grid/x/rewards/keeper"
	rewardstypes "github.com/grid-protocol/grid/x/rewards/types"
)

// Keepers bundles the module keepers a staking or rewards test needs,
// wired against an in-memory multistore with real auth and bank keepers.
type Keepers struct {
	Staking  *gridstakingkeeper.Keeper
	Rewards  *rewardskeeper.Keeper
	Epochs   *epochskeeper.Keeper
	Account  authkeeper.AccountKeeper
	Bank     bankkeeper.Keeper
	Curation *MockCurationKeeper
	Ctx      sdk.Context
}

// StakingKeepers creates the full keeper wiring for staking and rewards
// tests: epochs, staking, and rewards keepers over a fresh MemDB store, with
// a mock curation keeper holding the signal registry.
func StakingKeepers(t testing.TB) Keepers {
	stakingStoreKey := storetypes.NewKVStoreKey(gridstakingtypes.StoreKey)
	rewardsStoreKey := storetypes.NewKVStoreKey(rewardstypes.StoreKey)
	epochsStoreKey := storetypes.NewKVStoreKey(epochstypes.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(stakingStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(rewardsStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(epochsStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	sdkstd.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	amino := codec.NewLegacyAmino()
	gridstakingtypes.RegisterLegacyAminoCodec(amino)
	rewardstypes.RegisterLegacyAminoCodec(amino)
	epochstypes.RegisterLegacyAminoCodec(amino)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		authtypes.FeeCollectorName:        nil,
		gridstakingtypes.ModuleName:       {authtypes.Burner},
		rewardstypes.ModuleName:           {authtypes.Minter},
		gridstakingtypes.CurationPoolName: nil,
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	curationKeeper := NewMockCurationKeeper()

	epochsKeeper := epochskeeper.NewKeeper(amino, epochsStoreKey, authority.String())

	sk := gridstakingkeeper.NewKeeper(
		amino,
		stakingStoreKey,
		accountKeeper,
		bankKeeper,
		epochsKeeper,
		curationKeeper,
		authority.String(),
	)

	rk := rewardskeeper.NewKeeper(
		amino,
		rewardsStoreKey,
		bankKeeper,
		epochsKeeper,
		curationKeeper,
		sk,
		authority.String(),
	)
	sk.SetRewardsKeeper(rk)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())
	epochsKeeper.InitGenesis(ctx, *epochstypes.DefaultGenesis())
	require.NoError(t, sk.SetParams(ctx, gridstakingtypes.DefaultParams()))
	require.NoError(t, rk.SetParams(ctx, rewardstypes.DefaultParams()))

	return Keepers{
		Staking:  sk,
		Rewards:  rk,
		Epochs:   epochsKeeper,
		Account:  accountKeeper,
		Bank:     bankKeeper,
		Curation: curationKeeper,
		Ctx:      ctx,
	}
}

// FundAccount mints coins to the rewards module and releases them to addr.
func FundAccount(t testing.TB, ctx sdk.Context, bk bankkeeper.Keeper, addr sdk.AccAddress, coins sdk.Coins) {
	require.NoError(t, bk.MintCoins(ctx, rewardstypes.ModuleName, coins))
	require.NoError(t, bk.SendCoinsFromModuleToAccount(ctx, rewardstypes.ModuleName, addr, coins))
}
