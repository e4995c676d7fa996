package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
	"github.com/grid-protocol/grid/x/rewards/types"
)

// settlementFixture accrues one epoch of issuance against a single subgraph
// with allocated stake and returns a view over the accruing allocation.
func settlementFixture(t *testing.T, ks keepertest.Keepers) (sdk.Context, gridstakingtypes.AllocationRewardsView) {
	t.Helper()
	ctx := ks.Ctx
	ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))
	ks.Staking.SetSubgraphAllocatedTokens(ctx, "subgraph-1", math.NewInt(100_000))

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)

	return ctx, gridstakingtypes.AllocationRewardsView{
		ID:               testAddr("allocation-1").String(),
		Indexer:          testAddr("indexer-1").String(),
		SubgraphID:       "subgraph-1",
		Tokens:           math.NewInt(100_000),
		SnapshotPerToken: math.LegacyZeroDec(),
		CreatedAtEpoch:   0,
		LastPoiEpoch:     0,
		PoiPresented:     true,
		Closing:          true,
	}
}

// epochIssuance is one default epoch of issuance at default parameters.
var epochIssuance = math.NewInt(10_000 * 14_400)

func TestSettle_Distributes(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)

	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeDistributed, settlement.Outcome)
	require.Equal(t, epochIssuance, settlement.Rewards)
	require.False(t, settlement.Deferred)
	require.True(t, settlement.NewSnapshot.IsPositive())

	// The rewards were minted and handed to the staking module for
	// distribution.
	denom := ks.Staking.StakeDenom(ctx)
	stakingAddr := ks.Account.GetModuleAddress(types.StakingModuleName)
	require.Equal(t, epochIssuance, ks.Bank.GetBalance(ctx, stakingAddr, denom).Amount)
}

func TestSettle_DeniedSubgraph(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)
	ks.Rewards.SetDenied(ctx, "subgraph-1", true)

	// Interim settlement defers: the denial may be reversed before close.
	view.Closing = false
	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeDeferredSubgraphDenied, settlement.Outcome)
	require.True(t, settlement.Deferred)
	require.Equal(t, view.SnapshotPerToken, settlement.NewSnapshot)

	// Close settles for good: the accrued value is reclaimed.
	view.Closing = true
	settlement, err = ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeReclaimSubgraphDenied, settlement.Outcome)
	require.False(t, settlement.Deferred)
	require.Equal(t, epochIssuance,
		ks.Rewards.GetReclaimTotal(ctx, types.OutcomeReclaimSubgraphDenied))
}

func TestSettle_DenialLifted(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)
	ks.Rewards.SetDenied(ctx, "subgraph-1", true)

	view.Closing = false
	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.True(t, settlement.Deferred)

	// Lifting the denial lets a later settlement pay the full deferred
	// value: deferral never forfeits.
	ks.Rewards.SetDenied(ctx, "subgraph-1", false)
	settlement, err = ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeDistributed, settlement.Outcome)
	require.Equal(t, epochIssuance, settlement.Rewards)
}

func TestSettle_IneligibleIndexer(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)
	ks.Rewards.SetIndexerEligible(ctx, testAddr("indexer-1"), false)

	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeReclaimIndexerIneligible, settlement.Outcome)
	require.True(t, settlement.Rewards.IsZero())

	// The snapshot advanced: the value is gone, not deferred.
	require.True(t, settlement.NewSnapshot.IsPositive())
}

func TestSettle_SignalJudgedAtSettlement(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)

	// Signal existed while accruing but is gone at settlement time.
	ks.Curation.SetSignal("subgraph-1", math.ZeroInt())
	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeReclaimNoSignal, settlement.Outcome)
	require.Equal(t, epochIssuance,
		ks.Rewards.GetReclaimTotal(ctx, types.OutcomeReclaimNoSignal))
}

func TestSettle_BelowMinimumSignal(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)

	// Default minimum is 100; drop below it after accrual.
	ks.Curation.SetSignal("subgraph-1", math.NewInt(99))
	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeReclaimBelowMinimumSignal, settlement.Outcome)
}

func TestSettle_ZeroAccruedNoRewards(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)

	// A snapshot already at the accumulator head has nothing to settle.
	perToken, err := ks.Rewards.OnSubgraphAllocationUpdate(ctx, "subgraph-1")
	require.NoError(t, err)
	view.SnapshotPerToken = perToken

	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeNoRewards, settlement.Outcome)
	require.True(t, settlement.Rewards.IsZero())
}

func TestSettle_ReclaimRoutedToSink(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)
	sink := testAddr("reclaim-sink-1")
	ks.Rewards.SetDefaultReclaimAddress(ctx, sink.String())

	view.PoiPresented = false
	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeReclaimZeroPoi, settlement.Outcome)

	// With a sink configured the reclaimed value is minted and delivered.
	denom := ks.Staking.StakeDenom(ctx)
	require.Equal(t, epochIssuance, ks.Bank.GetBalance(ctx, sink, denom).Amount)
}

func TestSettle_PerOutcomeSinkOverridesDefault(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)
	defaultSink := testAddr("reclaim-sink-1")
	poiSink := testAddr("reclaim-sink-2")
	ks.Rewards.SetDefaultReclaimAddress(ctx, defaultSink.String())
	require.NoError(t, ks.Rewards.SetReclaimAddress(ctx, types.OutcomeReclaimZeroPoi, poiSink.String()))

	view.PoiPresented = false
	_, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)

	denom := ks.Staking.StakeDenom(ctx)
	require.Equal(t, epochIssuance, ks.Bank.GetBalance(ctx, poiSink, denom).Amount)
	require.True(t, ks.Bank.GetBalance(ctx, defaultSink, denom).Amount.IsZero())
}

func TestSettle_DroppedReclaimNeverMinted(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)

	view.PoiPresented = false
	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeReclaimZeroPoi, settlement.Outcome)

	// Totals advance even when the value is dropped unminted.
	require.Equal(t, epochIssuance,
		ks.Rewards.GetReclaimTotal(ctx, types.OutcomeReclaimZeroPoi))
	denom := ks.Staking.StakeDenom(ctx)
	require.True(t, ks.Bank.GetSupply(ctx, denom).Amount.IsZero())
}

func TestSettle_StalePoi(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx, view := settlementFixture(t, ks)

	// Last poi three epochs back with a two epoch staleness budget.
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 2)
	settlement, err := ks.Rewards.SettleAllocationRewards(ctx, view)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeReclaimStalePoi, settlement.Outcome)
}

func TestSetReclaimAddress_UnknownOutcomeRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)

	err := ks.Rewards.SetReclaimAddress(ks.Ctx, types.OutcomeDistributed, testAddr("sink").String())
	require.ErrorIs(t, err, types.ErrUnknownOutcome)
}
