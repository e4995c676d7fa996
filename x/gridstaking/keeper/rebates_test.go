package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	"github.com/grid-protocol/grid/x/gridstaking/types"
)

func fundedFeeSource(t *testing.T, ks keepertest.Keepers, tokens int64) sdk.AccAddress {
	t.Helper()
	source := testAddr("fee-source-1")
	denom := ks.Staking.StakeDenom(ks.Ctx)
	keepertest.FundAccount(t, ks.Ctx, ks.Bank, source,
		sdk.NewCoins(sdk.NewCoin(denom, math.NewInt(tokens))))
	return source
}

func TestCollectFees_Splits(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	source := fundedFeeSource(t, ks, 10_000)

	allocationID := openAllocation(t, ks, ks.Ctx, indexer, "subgraph-1", 100_000)

	net, err := ks.Staking.CollectFees(ks.Ctx, source, allocationID, math.NewInt(10_000))
	require.NoError(t, err)
	// 1% protocol burn, 10% to curation.
	require.Equal(t, math.NewInt(8_900), net)

	alloc, _ := ks.Staking.GetAllocation(ks.Ctx, allocationID)
	require.Equal(t, math.NewInt(8_900), alloc.CollectedFees)

	denom := ks.Staking.StakeDenom(ks.Ctx)
	curationAddr := ks.Account.GetModuleAddress(types.CurationPoolName)
	require.Equal(t, math.NewInt(1_000), ks.Bank.GetBalance(ks.Ctx, curationAddr, denom).Amount)
	require.Equal(t, math.NewInt(1_000), ks.Curation.Collected("subgraph-1"))

	moduleAddr := ks.Account.GetModuleAddress(types.ModuleName)
	require.Equal(t, math.NewInt(100_000+8_900), ks.Bank.GetBalance(ks.Ctx, moduleAddr, denom).Amount)
}

func TestCollectFees_UnknownAllocation(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	source := fundedFeeSource(t, ks, 10_000)

	_, err := ks.Staking.CollectFees(ks.Ctx, source, testAddr("no-allocation"), math.NewInt(10_000))
	require.ErrorIs(t, err, types.ErrAllocationNotFound)
}

func TestCollectFees_AfterCloseGoesToPool(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	source := fundedFeeSource(t, ks, 20_000)

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err := ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)

	closedEpoch := ks.Epochs.CurrentEpoch(ctx)
	pool, _ := ks.Staking.GetRebatePool(ctx, closedEpoch)
	before := pool.UnclaimedAllocationsCount

	// Late fees land in the settlement epoch's pool without registering a
	// new claimant.
	net, err := ks.Staking.CollectFees(ctx, source, allocationID, math.NewInt(10_000))
	require.NoError(t, err)

	pool, _ = ks.Staking.GetRebatePool(ctx, closedEpoch)
	require.Equal(t, net, pool.Fees)
	require.Equal(t, before, pool.UnclaimedAllocationsCount)
}

func TestClaim_DisputeWindow(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	source := fundedFeeSource(t, ks, 10_000)

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)
	_, err := ks.Staking.CollectFees(ctx, source, allocationID, math.NewInt(10_000))
	require.NoError(t, err)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err = ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)

	// Claims inside the dispute window are refused.
	_, err = ks.Staking.Claim(ctx, indexer, allocationID, true)
	require.ErrorIs(t, err, types.ErrDisputeWindowOpen)

	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.RebateDisputeEpochs)

	rebate, err := ks.Staking.Claim(ctx, indexer, allocationID, true)
	require.NoError(t, err)
	// Sole claimant sweeps the whole pool.
	require.Equal(t, math.NewInt(8_900), rebate)

	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	require.Equal(t, math.NewInt(100_000+8_900), stake.TokensStaked)

	// The transient settlement fields are purged; the record stays.
	alloc, found := ks.Staking.GetAllocation(ctx, allocationID)
	require.True(t, found)
	require.True(t, alloc.Claimed)
	require.True(t, alloc.CollectedFees.IsZero())
	require.True(t, alloc.EffectiveAllocation.IsZero())

	// Claiming twice is refused.
	_, err = ks.Staking.Claim(ctx, indexer, allocationID, true)
	require.ErrorIs(t, err, types.ErrAlreadyClaimed)
}

func TestClaim_PaysRewardsDestination(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	source := fundedFeeSource(t, ks, 10_000)
	destination := testAddr("destination-1")
	require.NoError(t, ks.Staking.SetRewardsDestination(ctx, indexer, destination.String()))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)
	_, err := ks.Staking.CollectFees(ctx, source, allocationID, math.NewInt(10_000))
	require.NoError(t, err)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err = ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)

	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.RebateDisputeEpochs)

	rebate, err := ks.Staking.Claim(ctx, indexer, allocationID, false)
	require.NoError(t, err)

	denom := ks.Staking.StakeDenom(ctx)
	require.Equal(t, rebate, ks.Bank.GetBalance(ctx, destination, denom).Amount)
}

func TestClaim_ExactSettlementAcrossClaims(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	first := stakedIndexer(t, ks, "indexer-1", 300_000)
	second := stakedIndexer(t, ks, "indexer-2", 100_000)
	source := fundedFeeSource(t, ks, 100_000)

	firstAlloc := openAllocation(t, ks, ctx, first, "subgraph-1", 300_000)
	secondAlloc := openAllocation(t, ks, ctx, second, "subgraph-2", 100_000)

	_, err := ks.Staking.CollectFees(ctx, source, firstAlloc, math.NewInt(70_000))
	require.NoError(t, err)
	_, err = ks.Staking.CollectFees(ctx, source, secondAlloc, math.NewInt(30_000))
	require.NoError(t, err)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err = ks.Staking.CloseAllocation(ctx, first, firstAlloc, []byte("poi"))
	require.NoError(t, err)
	_, err = ks.Staking.CloseAllocation(ctx, second, secondAlloc, []byte("poi"))
	require.NoError(t, err)

	closedEpoch := ks.Epochs.CurrentEpoch(ctx)
	pool, _ := ks.Staking.GetRebatePool(ctx, closedEpoch)
	totalFees := pool.Fees

	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.RebateDisputeEpochs)

	firstRebate, err := ks.Staking.Claim(ctx, first, firstAlloc, true)
	require.NoError(t, err)
	secondRebate, err := ks.Staking.Claim(ctx, second, secondAlloc, true)
	require.NoError(t, err)

	// Sequential claims settle the pool exactly: the final claim sweeps
	// the rounding dust.
	require.Equal(t, totalFees, firstRebate.Add(secondRebate))

	pool, _ = ks.Staking.GetRebatePool(ctx, closedEpoch)
	require.Equal(t, totalFees, pool.ClaimedRewards)
	require.Equal(t, uint64(0), pool.UnclaimedAllocationsCount)

	// The bigger fee volume on equal footing earns the bigger rebate.
	require.True(t, firstRebate.GT(secondRebate))
}

func TestClaim_OnlyIndexer(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	other := stakedIndexer(t, ks, "indexer-2", 100_000)

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err := ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)

	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.RebateDisputeEpochs)

	_, err = ks.Staking.Claim(ctx, other, allocationID, true)
	require.ErrorIs(t, err, types.ErrUnauthorized)
}
