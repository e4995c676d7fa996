package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// stakedIndexer funds and stakes an indexer so delegations are accepted.
func stakedIndexer(t *testing.T, ks keepertest.Keepers, name string, tokens int64) sdk.AccAddress {
	t.Helper()
	indexer := fundedIndexer(t, ks, name, tokens)
	_, err := ks.Staking.Stake(ks.Ctx, indexer, math.NewInt(tokens))
	require.NoError(t, err)
	return indexer
}

func fundedDelegator(t *testing.T, ks keepertest.Keepers, name string, tokens int64) sdk.AccAddress {
	t.Helper()
	addr := testAddr(name)
	denom := ks.Staking.StakeDenom(ks.Ctx)
	keepertest.FundAccount(t, ks.Ctx, ks.Bank, addr,
		sdk.NewCoins(sdk.NewCoin(denom, math.NewInt(tokens))))
	return addr
}

func TestDelegate_BootstrapSharePrice(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	delegator := fundedDelegator(t, ks, "delegator-1", 50_000)

	shares, err := ks.Staking.Delegate(ks.Ctx, delegator, indexer, math.NewInt(50_000))
	require.NoError(t, err)
	// First delegation mints shares one to one.
	require.Equal(t, math.NewInt(50_000), shares)

	pool, found := ks.Staking.GetDelegationPool(ks.Ctx, indexer)
	require.True(t, found)
	require.Equal(t, math.NewInt(50_000), pool.TotalTokens)
	require.Equal(t, math.NewInt(50_000), pool.TotalShares)
}

func TestDelegate_UnknownIndexerRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	delegator := fundedDelegator(t, ks, "delegator-1", 50_000)

	_, err := ks.Staking.Delegate(ks.Ctx, delegator, testAddr("nobody"), math.NewInt(50_000))
	require.ErrorIs(t, err, types.ErrIndexerNotFound)
}

func TestDelegate_BelowMinimumRejected(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	delegator := fundedDelegator(t, ks, "delegator-1", 50_000)

	_, err := ks.Staking.Delegate(ks.Ctx, delegator, indexer, math.NewInt(999))
	require.ErrorIs(t, err, types.ErrBelowMinimumDelegation)
}

func TestDelegate_SharePriceRisesAfterRewardCredit(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	first := fundedDelegator(t, ks, "delegator-1", 100_000)
	second := fundedDelegator(t, ks, "delegator-2", 100_000)

	_, err := ks.Staking.Delegate(ks.Ctx, first, indexer, math.NewInt(100_000))
	require.NoError(t, err)

	// Credit rewards to the pool without minting shares: the share price
	// doubles.
	pool, _ := ks.Staking.GetDelegationPool(ks.Ctx, indexer)
	pool.TotalTokens = pool.TotalTokens.Add(math.NewInt(100_000))
	ks.Staking.SetDelegationPool(ks.Ctx, pool)

	shares, err := ks.Staking.Delegate(ks.Ctx, second, indexer, math.NewInt(100_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50_000), shares)

	// Both delegators now redeem at the same price; the first delegator's
	// stake is worth twice its deposit.
	pool, _ = ks.Staking.GetDelegationPool(ks.Ctx, indexer)
	require.Equal(t, math.NewInt(200_000), pool.TokensForShares(math.NewInt(100_000)))
	require.Equal(t, math.NewInt(100_000), pool.TokensForShares(math.NewInt(50_000)))
}

func TestUndelegate_LocksTokensUntilEpoch(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	delegator := fundedDelegator(t, ks, "delegator-1", 50_000)

	shares, err := ks.Staking.Delegate(ctx, delegator, indexer, math.NewInt(50_000))
	require.NoError(t, err)

	params := ks.Staking.GetParams(ctx)
	tokens, unlockEpoch, err := ks.Staking.Undelegate(ctx, delegator, indexer, shares)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50_000), tokens)
	require.Equal(t, ks.Epochs.CurrentEpoch(ctx)+params.DelegationUnbondingEpochs, unlockEpoch)

	// The pool no longer counts the locked tokens.
	pool, _ := ks.Staking.GetDelegationPool(ctx, indexer)
	require.True(t, pool.TotalTokens.IsZero())
	require.True(t, pool.TotalShares.IsZero())

	// Withdrawal is refused before the unbonding epoch.
	_, err = ks.Staking.WithdrawDelegated(ctx, delegator, indexer, nil)
	require.ErrorIs(t, err, types.ErrNothingToWithdraw)

	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.DelegationUnbondingEpochs)
	withdrawn, err := ks.Staking.WithdrawDelegated(ctx, delegator, indexer, nil)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50_000), withdrawn)

	denom := ks.Staking.StakeDenom(ctx)
	require.Equal(t, math.NewInt(50_000), ks.Bank.GetBalance(ctx, delegator, denom).Amount)

	// Fully exited delegations are deleted.
	_, found := ks.Staking.GetDelegation(ctx, indexer, delegator)
	require.False(t, found)
}

func TestWithdrawDelegated_Redelegates(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	other := stakedIndexer(t, ks, "indexer-2", 100_000)
	delegator := fundedDelegator(t, ks, "delegator-1", 50_000)

	shares, err := ks.Staking.Delegate(ctx, delegator, indexer, math.NewInt(50_000))
	require.NoError(t, err)
	_, _, err = ks.Staking.Undelegate(ctx, delegator, indexer, shares)
	require.NoError(t, err)

	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceEpochs(ctx, ks.Epochs, params.DelegationUnbondingEpochs)

	tokens, err := ks.Staking.WithdrawDelegated(ctx, delegator, indexer, other)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50_000), tokens)

	// The funds never left the module; they landed in the new pool.
	delegation, found := ks.Staking.GetDelegation(ctx, other, delegator)
	require.True(t, found)
	require.Equal(t, math.NewInt(50_000), delegation.Shares)

	denom := ks.Staking.StakeDenom(ctx)
	require.True(t, ks.Bank.GetBalance(ctx, delegator, denom).Amount.IsZero())
}

func TestSetDelegationParameters_Cooldown(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)

	cut := math.LegacyNewDecWithPrec(80, 2)
	feeCut := math.LegacyNewDecWithPrec(90, 2)
	require.NoError(t, ks.Staking.SetDelegationParameters(ctx, indexer, cut, feeCut))

	pool, _ := ks.Staking.GetDelegationPool(ctx, indexer)
	require.Equal(t, cut, pool.IndexingRewardCut)
	require.Equal(t, feeCut, pool.QueryFeeCut)

	// A second update inside the cooldown window is rejected.
	err := ks.Staking.SetDelegationParameters(ctx, indexer, cut, feeCut)
	require.ErrorIs(t, err, types.ErrCooldownNotElapsed)

	params := ks.Staking.GetParams(ctx)
	ctx = keepertest.AdvanceBlocks(ctx, int64(params.DelegationParamsCooldownBlocks))
	require.NoError(t, ks.Staking.SetDelegationParameters(ctx, indexer, cut, feeCut))
}

func TestIndexerCapacity(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	ctx := ks.Ctx
	indexer := stakedIndexer(t, ks, "indexer-1", 100_000)
	delegator := fundedDelegator(t, ks, "delegator-1", 2_000_000)

	// No delegation: capacity equals free own stake.
	require.Equal(t, math.NewInt(100_000), ks.Staking.IndexerCapacity(ctx, indexer))

	// Delegation adds capacity up to the ratio cap (16x own stake).
	_, err := ks.Staking.Delegate(ctx, delegator, indexer, math.NewInt(2_000_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_700_000), ks.Staking.IndexerCapacity(ctx, indexer))

	// Allocated tokens reduce capacity.
	stake, _ := ks.Staking.GetIndexerStake(ctx, indexer)
	stake.TokensAllocated = math.NewInt(1_000_000)
	ks.Staking.SetIndexerStake(ctx, stake)
	require.Equal(t, math.NewInt(700_000), ks.Staking.IndexerCapacity(ctx, indexer))
}
