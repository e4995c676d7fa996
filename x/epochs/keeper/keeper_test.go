package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	"github.com/grid-protocol/grid/x/epochs/types"
)

func TestCurrentEpoch_Genesis(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	require.Equal(t, uint64(0), k.CurrentEpoch(ctx))

	ctx = ctx.WithBlockHeight(int64(types.DefaultEpochLength) - 1)
	require.Equal(t, uint64(0), k.CurrentEpoch(ctx))

	ctx = ctx.WithBlockHeight(int64(types.DefaultEpochLength))
	require.Equal(t, uint64(1), k.CurrentEpoch(ctx))

	ctx = ctx.WithBlockHeight(int64(types.DefaultEpochLength) * 5)
	require.Equal(t, uint64(5), k.CurrentEpoch(ctx))
}

func TestEpochsSince(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	ctx = keepertest.AdvanceEpochs(ctx, k, 4)

	elapsed, err := k.EpochsSince(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(3), elapsed)

	_, err = k.EpochsSince(ctx, 10)
	require.ErrorIs(t, err, types.ErrFutureEpoch)
}

func TestUpdateEpochLength_ReAnchors(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	ctx = keepertest.AdvanceEpochs(ctx, k, 3)
	require.Equal(t, uint64(3), k.CurrentEpoch(ctx))

	anchor, err := k.UpdateEpochLength(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(3), anchor)

	// The current epoch is unchanged at the anchor height.
	require.Equal(t, uint64(3), k.CurrentEpoch(ctx))

	// The new length applies from the anchor onwards.
	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 250)
	require.Equal(t, uint64(5), k.CurrentEpoch(ctx))
}

func TestUpdateEpochLength_NeverMovesBackwards(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	ctx = keepertest.AdvanceEpochs(ctx, k, 2)

	// Lengthening the epoch must not reduce the current epoch number.
	_, err := k.UpdateEpochLength(ctx, types.DefaultEpochLength*10)
	require.NoError(t, err)
	require.Equal(t, uint64(2), k.CurrentEpoch(ctx))
}

func TestUpdateEpochLength_RejectsZero(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	_, err := k.UpdateEpochLength(ctx, 0)
	require.ErrorIs(t, err, types.ErrInvalidEpochLength)
}

func TestExportGenesis_RoundTrip(t *testing.T) {
	k, ctx := keepertest.EpochsKeeper(t)

	_, err := k.UpdateEpochLength(ctx, 7200)
	require.NoError(t, err)

	exported := k.ExportGenesis(ctx)
	require.NoError(t, exported.Validate())
	require.Equal(t, uint64(7200), exported.State.EpochLength)

	k2, ctx2 := keepertest.EpochsKeeper(t)
	k2.InitGenesis(ctx2, *exported)
	require.Equal(t, k.GetEpochState(ctx), k2.GetEpochState(ctx2))
}
