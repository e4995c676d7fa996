package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	"github.com/grid-protocol/grid/x/gridstaking/types"
)

func testAddr(name string) sdk.AccAddress {
	addr := make([]byte, 20)
	copy(addr, name)
	return sdk.AccAddress(addr)
}

// fundedIndexer creates an account holding the given amount of the stake
// denom.
func fundedIndexer(t *testing.T, ks keepertest.Keepers, name string, tokens int64) sdk.AccAddress {
	t.Helper()
	addr := testAddr(name)
	denom := ks.Staking.StakeDenom(ks.Ctx)
	keepertest.FundAccount(t, ks.Ctx, ks.Bank, addr,
		sdk.NewCoins(sdk.NewCoin(denom, math.NewInt(tokens))))
	return addr
}

func TestStake_FirstDeposit(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)

	total, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(500_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500_000), total)

	stake, found := ks.Staking.GetIndexerStake(ks.Ctx, indexer)
	require.True(t, found)
	require.Equal(t, math.NewInt(500_000), stake.TokensStaked)
	require.True(t, stake.TokensAllocated.IsZero())
	require.True(t, stake.TokensLocked.IsZero())

	// Tokens moved into the module account.
	denom := ks.Staking.StakeDenom(ks.Ctx)
	moduleAddr := ks.Account.GetModuleAddress(types.ModuleName)
	require.Equal(t, math.NewInt(500_000), ks.Bank.GetBalance(ks.Ctx, moduleAddr, denom).Amount)
}

func TestStake_FirstDepositBelowMinimum(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)

	_, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(99_999))
	require.ErrorIs(t, err, types.ErrBelowMinimumStake)
}

func TestStake_TopUpBelowMinimumAllowed(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)

	_, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(100_000))
	require.NoError(t, err)

	// Once above the minimum, any top-up amount is accepted.
	total, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100_001), total)
}

func TestUnstake_ThawingAndWithdraw(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)

	_, err := ks.Staking.Stake(ctx, indexer, math.NewInt(300_000))
	require.NoError(t, err)

	until, err := ks.Staking.Unstake(ctx, indexer, math.NewInt(150_000))
	require.NoError(t, err)
	params := ks.Staking.GetParams(ctx)
	require.Equal(t, ctx.BlockHeight()+int64(params.ThawingPeriodBlocks), until)

	// Nothing withdrawable before the thawing period elapses.
	_, err = ks.Staking.Withdraw(ctx, indexer)
	require.ErrorIs(t, err, types.ErrNothingToWithdraw)

	ctx = ctx.WithBlockHeight(until)
	withdrawn, err := ks.Staking.Withdraw(ctx, indexer)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(150_000), withdrawn)

	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	require.Equal(t, math.NewInt(150_000), stake.TokensStaked)
	require.True(t, stake.TokensLocked.IsZero())
}

func TestUnstake_RemainingBelowMinimumRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)

	_, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(150_000))
	require.NoError(t, err)

	// Would leave 50_000 non-thawing stake, below the 100_000 minimum.
	_, err = ks.Staking.Unstake(ks.Ctx, indexer, math.NewInt(100_000))
	require.ErrorIs(t, err, types.ErrBelowMinimumStake)

	// Unstaking everything is allowed.
	_, err = ks.Staking.Unstake(ks.Ctx, indexer, math.NewInt(150_000))
	require.NoError(t, err)
}

func TestUnstake_AllocatedTokensNotAvailable(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)

	_, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(200_000))
	require.NoError(t, err)

	stake, _ := ks.Staking.GetIndexerStake(ks.Ctx, indexer)
	stake.TokensAllocated = math.NewInt(150_000)
	ks.Staking.SetIndexerStake(ks.Ctx, stake)

	_, err = ks.Staking.Unstake(ks.Ctx, indexer, math.NewInt(100_000))
	require.ErrorIs(t, err, types.ErrInsufficientStake)
}

func TestSlash_BurnsAndRewards(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)
	beneficiary := testAddr("fisherman-1")

	_, err := ks.Staking.Stake(ctx, indexer, math.NewInt(400_000))
	require.NoError(t, err)

	burned, err := ks.Staking.Slash(ctx, indexer, math.NewInt(100_000), math.NewInt(10_000), beneficiary)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90_000), burned)

	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	require.Equal(t, math.NewInt(300_000), stake.TokensStaked)

	denom := ks.Staking.StakeDenom(ctx)
	require.Equal(t, math.NewInt(10_000), ks.Bank.GetBalance(ctx, beneficiary, denom).Amount)

	moduleAddr := ks.Account.GetModuleAddress(types.ModuleName)
	require.Equal(t, math.NewInt(300_000), ks.Bank.GetBalance(ctx, moduleAddr, denom).Amount)
}

func TestSlash_PullsBackThawingTokens(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)
	beneficiary := testAddr("fisherman-1")

	_, err := ks.Staking.Stake(ctx, indexer, math.NewInt(200_000))
	require.NoError(t, err)
	_, err = ks.Staking.Unstake(ctx, indexer, math.NewInt(200_000))
	require.NoError(t, err)

	// Slashing 150_000 leaves 50_000 staked; the 200_000 thawing lock must
	// shrink to match so the pending withdrawal cannot shield stake.
	_, err = ks.Staking.Slash(ctx, indexer, math.NewInt(150_000), math.ZeroInt(), beneficiary)
	require.NoError(t, err)

	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	require.Equal(t, math.NewInt(50_000), stake.TokensStaked)
	require.Equal(t, math.NewInt(50_000), stake.TokensLocked)
}

func TestSlash_OverStakeRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)
	beneficiary := testAddr("fisherman-1")

	_, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(100_000))
	require.NoError(t, err)

	_, err = ks.Staking.Slash(ks.Ctx, indexer, math.NewInt(100_001), math.ZeroInt(), beneficiary)
	require.ErrorIs(t, err, types.ErrSlashOverStake)

	_, err = ks.Staking.Slash(ks.Ctx, indexer, math.NewInt(50_000), math.NewInt(60_000), beneficiary)
	require.ErrorIs(t, err, types.ErrRewardOverSlash)
}

func TestSetRewardsDestination(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := fundedIndexer(t, ks, "indexer-1", 1_000_000)
	destination := testAddr("destination-1")

	_, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(100_000))
	require.NoError(t, err)

	require.NoError(t, ks.Staking.SetRewardsDestination(ks.Ctx, indexer, destination.String()))

	stake, _ := ks.Staking.GetIndexerStake(ks.Ctx, indexer)
	require.Equal(t, destination.String(), stake.RewardsDestination)

	// Clearing reverts proceeds to restaking.
	require.NoError(t, ks.Staking.SetRewardsDestination(ks.Ctx, indexer, ""))
	stake, _ = ks.Staking.GetIndexerStake(ks.Ctx, indexer)
	require.Empty(t, stake.RewardsDestination)
}
