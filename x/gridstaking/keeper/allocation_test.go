package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	rewardstypes "github.com/grid-protocol/grid/x/rewards/types"
	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// newAllocationProof derives an allocation id from a fresh one-time key and
// signs indexer||id with it.
func newAllocationProof(t *testing.T, indexer sdk.AccAddress) (sdk.AccAddress, []byte, []byte) {
	t.Helper()
	key := secp256k1.GenPrivKey()
	allocationID := sdk.AccAddress(key.PubKey().Address())
	proof, err := key.Sign(append(indexer.Bytes(), allocationID.Bytes()...))
	require.NoError(t, err)
	return allocationID, key.PubKey().Bytes(), proof
}

func openAllocation(t *testing.T, ks keepertest.Keepers, ctx sdk.Context, indexer sdk.AccAddress, subgraphID string, tokens int64) sdk.AccAddress {
	t.Helper()
	allocationID, pubkey, proof := newAllocationProof(t, indexer)
	require.NoError(t, ks.Staking.Allocate(ctx, indexer, subgraphID, math.NewInt(tokens), allocationID, pubkey, proof))
	return allocationID
}

func TestAllocate_Valid(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 200_000)

	allocationID := openAllocation(t, ks, ks.Ctx, indexer, "subgraph-1", 150_000)

	alloc, found := ks.Staking.GetAllocation(ks.Ctx, allocationID)
	require.True(t, found)
	require.Equal(t, indexer.String(), alloc.Indexer)
	require.Equal(t, "subgraph-1", alloc.SubgraphID)
	require.Equal(t, math.NewInt(150_000), alloc.Tokens)
	require.Equal(t, ks.Epochs.CurrentEpoch(ks.Ctx), alloc.CreatedAtEpoch)

	stake, _ := ks.Staking.GetIndexerStake(ks.Ctx, indexer)
	require.Equal(t, math.NewInt(150_000), stake.TokensAllocated)
	require.Equal(t, math.NewInt(150_000), ks.Staking.GetSubgraphAllocatedTokens(ks.Ctx, "subgraph-1"))
}

func TestAllocate_ZeroTokens(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)

	// A zero allocation is a liveness signal and bypasses the capacity check.
	allocationID := openAllocation(t, ks, ks.Ctx, indexer, "subgraph-1", 0)

	alloc, found := ks.Staking.GetAllocation(ks.Ctx, allocationID)
	require.True(t, found)
	require.True(t, alloc.Tokens.IsZero())
}

func TestAllocate_OverCapacityRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)

	allocationID, pubkey, proof := newAllocationProof(t, indexer)
	err := ks.Staking.Allocate(ks.Ctx, indexer, "subgraph-1", math.NewInt(100_001), allocationID, pubkey, proof)
	require.ErrorIs(t, err, types.ErrInsufficientCapacity)
}

func TestAllocate_ReplayRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 200_000)

	allocationID, pubkey, proof := newAllocationProof(t, indexer)
	require.NoError(t, ks.Staking.Allocate(ctx, indexer, "subgraph-1", math.NewInt(50_000), allocationID, pubkey, proof))

	// Same id again, even after the allocation is closed, is a replay.
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err := ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)

	err = ks.Staking.Allocate(ctx, indexer, "subgraph-1", math.NewInt(50_000), allocationID, pubkey, proof)
	require.ErrorIs(t, err, types.ErrAllocationExists)
}

func TestAllocate_BadProofRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 200_000)
	other := stakedIndexer(t, ks, "indexer-2", 200_000)

	// Proof signed for a different indexer does not transfer.
	allocationID, pubkey, proof := newAllocationProof(t, other)
	err := ks.Staking.Allocate(ks.Ctx, indexer, "subgraph-1", math.NewInt(50_000), allocationID, pubkey, proof)
	require.ErrorIs(t, err, types.ErrInvalidAllocationProof)

	// Pubkey not hashing to the claimed id is rejected.
	allocationID, _, proof = newAllocationProof(t, indexer)
	_, otherPubkey, _ := newAllocationProof(t, indexer)
	err = ks.Staking.Allocate(ks.Ctx, indexer, "subgraph-1", math.NewInt(50_000), allocationID, otherPubkey, proof)
	require.ErrorIs(t, err, types.ErrInvalidAllocationProof)
}

func TestCloseAllocation_DistributesRewards(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	outcome, err := ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)
	require.Equal(t, rewardstypes.OutcomeDistributed, outcome)

	// One epoch of issuance accrued to the only allocation on the only
	// signalled subgraph: 10_000 per block over 14_400 blocks.
	expected := math.NewInt(10_000 * 14_400)
	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	require.Equal(t, math.NewInt(100_000).Add(expected), stake.TokensStaked)
	require.True(t, stake.TokensAllocated.IsZero())

	// Minted rewards back the restaked balance in the module account.
	denom := ks.Staking.StakeDenom(ctx)
	moduleAddr := ks.Account.GetModuleAddress(types.ModuleName)
	require.Equal(t, math.NewInt(100_000).Add(expected),
		ks.Bank.GetBalance(ctx, moduleAddr, denom).Amount)

	alloc, _ := ks.Staking.GetAllocation(ctx, allocationID)
	require.Equal(t, ks.Epochs.CurrentEpoch(ctx), alloc.ClosedAtEpoch)
	require.Equal(t, math.NewInt(100_000), alloc.EffectiveAllocation)
	require.True(t, ks.Staking.GetSubgraphAllocatedTokens(ctx, "subgraph-1").IsZero())
}

func TestCloseAllocation_SameEpochRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)

	allocationID := openAllocation(t, ks, ks.Ctx, indexer, "subgraph-1", 100_000)

	_, err := ks.Staking.CloseAllocation(ks.Ctx, indexer, allocationID, []byte("poi"))
	require.ErrorIs(t, err, types.ErrAllocationNotMature)
}

func TestCloseAllocation_ZeroPoiReclaimed(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	outcome, err := ks.Staking.CloseAllocation(ctx, indexer, allocationID, nil)
	require.NoError(t, err)
	require.Equal(t, rewardstypes.OutcomeReclaimZeroPoi, outcome)

	// Nothing was minted or restaked.
	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	require.Equal(t, math.NewInt(100_000), stake.TokensStaked)
}

func TestCloseAllocation_ForcedOnlyWhenStale(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	closer := stakedIndexer(t, ks, "indexer-2", 100_000)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	// A third party cannot close an active allocation.
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err := ks.Staking.CloseAllocation(ctx, closer, allocationID, nil)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// Past the maximum lifetime anyone may close it; the accrued rewards
	// are forfeited to the reclaim sink.
	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.MaxAllocationEpochs+1)
	outcome, err := ks.Staking.CloseAllocation(ctx, closer, allocationID, nil)
	require.NoError(t, err)
	require.Equal(t, rewardstypes.OutcomeReclaimCloseAllocation, outcome)

	total := ks.Rewards.GetReclaimTotal(ctx, rewardstypes.OutcomeReclaimCloseAllocation)
	require.True(t, total.IsPositive())
}

func TestCloseAllocation_EffectiveAllocationCapped(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.MaxAllocationEpochs+3)
	_, err := ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)

	// Epochs beyond the cap do not increase rebate weight: weight is
	// tokens times at most MaxAllocationEpochs.
	alloc, _ := ks.Staking.GetAllocation(ctx, allocationID)
	expected := math.NewInt(100_000).MulRaw(int64(params.MaxAllocationEpochs))
	require.Equal(t, expected, alloc.EffectiveAllocation)
}

func TestPresentPoi_TooYoungDefers(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	// Same epoch as creation: nothing settles, value stays on the
	// allocation.
	settlement, err := ks.Staking.PresentPoi(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)
	require.True(t, settlement.Deferred)
	require.Equal(t, rewardstypes.OutcomeDeferredTooYoung, settlement.Outcome)
	require.True(t, settlement.Rewards.IsZero())

	// The deferral preserved the accrued value: a later settlement pays
	// the full amount since creation.
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	settlement, err = ks.Staking.PresentPoi(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)
	require.False(t, settlement.Deferred)
	require.Equal(t, rewardstypes.OutcomeDistributed, settlement.Outcome)
	require.Equal(t, math.NewInt(10_000*14_400), settlement.Rewards)
}

func TestPresentPoi_RestartsStalenessClock(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 2)
	settlement, err := ks.Staking.PresentPoi(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)
	require.Equal(t, rewardstypes.OutcomeDistributed, settlement.Outcome)

	alloc, _ := ks.Staking.GetAllocation(ctx, allocationID)
	require.Equal(t, ks.Epochs.CurrentEpoch(ctx), alloc.LastPoiEpoch)
}

func TestPresentPoi_StaleReclaimed(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	// Past the staleness window the accrued value is reclaimed, not paid.
	params := ks.Rewards.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.MaxPoiStalenessEpochs+1)
	settlement, err := ks.Staking.PresentPoi(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)
	require.Equal(t, rewardstypes.OutcomeReclaimStalePoi, settlement.Outcome)
	require.True(t, settlement.Rewards.IsZero())

	total := ks.Rewards.GetReclaimTotal(ctx, rewardstypes.OutcomeReclaimStalePoi)
	require.Equal(t, math.NewInt(10_000*14_400*3), total)
}

func TestPresentPoi_OnlyIndexer(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	other := stakedIndexer(t, ks, "indexer-2", 100_000)

	allocationID := openAllocation(t, ks, ks.Ctx, indexer, "subgraph-1", 100_000)

	_, err := ks.Staking.PresentPoi(ks.Ctx, other, allocationID, []byte("poi"))
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestDistributeRewards_DelegationCut(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	delegator := fundedDelegator(t, ks, "delegator-1", 100_000)
	ks.Curation.SetSignal("subgraph-1", math.NewInt(1_000))

	_, err := ks.Staking.Delegate(ctx, delegator, indexer, math.NewInt(100_000))
	require.NoError(t, err)
	// Indexer keeps 75% of indexing rewards.
	require.NoError(t, ks.Staking.SetDelegationParameters(ctx, indexer,
		math.LegacyNewDecWithPrec(75, 2), math.LegacyNewDecWithPrec(75, 2)))

	allocationID := openAllocation(t, ks, ctx, indexer, "subgraph-1", 100_000)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, 1)
	_, err = ks.Staking.CloseAllocation(ctx, indexer, allocationID, []byte("poi"))
	require.NoError(t, err)

	rewards := math.NewInt(10_000 * 14_400)
	indexerShare := math.LegacyNewDecWithPrec(75, 2).MulInt(rewards).TruncateInt()

	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	require.Equal(t, math.NewInt(100_000).Add(indexerShare), stake.TokensStaked)

	// The delegation share raised the pool's token total without minting
	// shares.
	pool, _ := ks.Staking.GetDelegationPool(ctx, indexer)
	require.Equal(t, math.NewInt(100_000).Add(rewards.Sub(indexerShare)), pool.TotalTokens)
	require.Equal(t, math.NewInt(100_000), pool.TotalShares)
}
