package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	"github.com/grid-protocol/grid/x/rewards/types"
)

func testAddr(name string) sdk.AccAddress {
	addr := make([]byte, 20)
	copy(addr, name)
	return sdk.AccAddress(addr)
}

func TestUpdateAccRewardsPerSignal_ZeroSignalLapses(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := keepertest.AdvanceBlocks(ks.Ctx, 100)

	state := ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	require.True(t, state.AccRewardsPerSignal.IsZero())
	require.Equal(t, ctx.BlockHeight(), state.LastUpdatedBlock)

	// Issuance for the lapsed blocks is gone: signal arriving later earns
	// only from its own blocks onward.
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))
	ctx = keepertest.AdvanceBlocks(ctx, 1)
	state = ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	require.Equal(t, math.LegacyNewDec(10), state.AccRewardsPerSignal)
}

func TestUpdateAccRewardsPerSignal_AccruesPerSignal(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx

	// Anchor the accumulator before any signal exists.
	ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	ctx = keepertest.AdvanceBlocks(ctx, 100)
	state := ks.Rewards.UpdateAccRewardsPerSignal(ctx)

	// 100 blocks at 10_000 per block over 1_000 signal.
	require.Equal(t, math.LegacyNewDec(1_000), state.AccRewardsPerSignal)

	// Idempotent at the same height.
	again := ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	require.Equal(t, state, again)
}

func TestOnSubgraphAllocationUpdate_SplitsBySignal(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(3_000))
	ks.Curation.SetSignal("subgraph-2", math.NewInt(1_000))
	ks.Staking.SetSubgraphAllocatedTokens(ctx, "subgraph-1", math.NewInt(1_000))
	ks.Staking.SetSubgraphAllocatedTokens(ctx, "subgraph-2", math.NewInt(1_000))
	ctx = keepertest.AdvanceBlocks(ctx, 400)

	// 4_000_000 issued; subgraph-1 carries 3/4 of the signal.
	perTokenOne, err := ks.Rewards.OnSubgraphAllocationUpdate(ctx, "subgraph-1")
	require.NoError(t, err)
	perTokenTwo, err := ks.Rewards.OnSubgraphAllocationUpdate(ctx, "subgraph-2")
	require.NoError(t, err)

	require.Equal(t, math.LegacyNewDec(3_000), perTokenOne)
	require.Equal(t, math.LegacyNewDec(1_000), perTokenTwo)

	stateOne, found := ks.Rewards.GetSubgraphState(ctx, "subgraph-1")
	require.True(t, found)
	require.Equal(t, math.LegacyNewDec(3_000_000), stateOne.AccRewardsForSubgraph)
}

func TestOnSubgraphAllocationUpdate_NoAllocatedTokensReclaimed(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))
	ctx = keepertest.AdvanceBlocks(ctx, 50)

	// No stake allocated towards the subgraph: its accrued share cannot be
	// priced per token and is reclaimed.
	perToken, err := ks.Rewards.OnSubgraphAllocationUpdate(ctx, "subgraph-1")
	require.NoError(t, err)
	require.True(t, perToken.IsZero())

	total := ks.Rewards.GetReclaimTotal(ctx, types.OutcomeReclaimNoAllocatedTokens)
	require.Equal(t, math.NewInt(500_000), total)

	// Without a reclaim sink nothing was minted.
	denom := ks.Staking.StakeDenom(ctx)
	require.True(t, ks.Bank.GetSupply(ctx, denom).Amount.IsZero())
}

func TestOnSubgraphAllocationUpdate_SnapshotsAdvance(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	ks.Rewards.UpdateAccRewardsPerSignal(ctx)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))
	ks.Staking.SetSubgraphAllocatedTokens(ctx, "subgraph-1", math.NewInt(2_000))
	ctx = keepertest.AdvanceBlocks(ctx, 10)

	perToken, err := ks.Rewards.OnSubgraphAllocationUpdate(ctx, "subgraph-1")
	require.NoError(t, err)
	// 100_000 issued, all to this subgraph, over 2_000 allocated tokens.
	require.Equal(t, math.LegacyNewDec(50), perToken)

	// A second fold at the same height adds nothing.
	again, err := ks.Rewards.OnSubgraphAllocationUpdate(ctx, "subgraph-1")
	require.NoError(t, err)
	require.Equal(t, perToken, again)

	state, _ := ks.Rewards.GetSubgraphState(ctx, "subgraph-1")
	global := ks.Rewards.GetGlobalState(ctx)
	require.Equal(t, global.AccRewardsPerSignal, state.AccRewardsPerSignalSnapshot)
	require.Equal(t, state.AccRewardsForSubgraph, state.AccRewardsForSubgraphSnapshot)
}
