package ante_test

import (
	"bytes"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/grid-protocol/grid/app/ante"
	keepertest "github.com/grid-protocol/grid/testutil/keeper"
	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
)

func nextNoop(ctx sdk.Context, _ sdk.Tx, _ bool) (sdk.Context, error) {
	return ctx, nil
}

func TestGridStakingDecorator_OversizedAllocationProof(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	dec := ante.NewGridStakingDecorator(ks.Staking)

	indexer := sdk.AccAddress(bytes.Repeat([]byte{1}, 20))
	allocID := sdk.AccAddress(bytes.Repeat([]byte{2}, 20))
	msg := gridstakingtypes.NewMsgAllocate(
		indexer.String(), "subgraph-1", math.NewInt(1),
		allocID.String(), make([]byte, 33), make([]byte, ante.MaxAllocationProofBytes+1),
	)

	_, err := dec.AnteHandle(ks.Ctx, mockTx{msgs: []sdk.Msg{msg}}, false, nextNoop)
	require.Error(t, err)
	require.Contains(t, err.Error(), "proof too large")

	// Simulation skips the check.
	_, err = dec.AnteHandle(ks.Ctx, mockTx{msgs: []sdk.Msg{msg}}, true, nextNoop)
	require.NoError(t, err)
}

func TestGridStakingDecorator_OversizedPoi(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	dec := ante.NewGridStakingDecorator(ks.Staking)

	indexer := sdk.AccAddress(bytes.Repeat([]byte{1}, 20))
	allocID := sdk.AccAddress(bytes.Repeat([]byte{2}, 20))
	msg := gridstakingtypes.NewMsgPresentPoi(indexer.String(), allocID.String(), make([]byte, ante.MaxPoiBytes+1))

	_, err := dec.AnteHandle(ks.Ctx, mockTx{msgs: []sdk.Msg{msg}}, false, nextNoop)
	require.Error(t, err)
	require.Contains(t, err.Error(), "proof of indexing too large")
}

func TestGridStakingDecorator_FirstStakeBelowMinimum(t *testing.T) {
	ks := keepertest.StakingKeepers(t)
	dec := ante.NewGridStakingDecorator(ks.Staking)

	indexer := sdk.AccAddress(bytes.Repeat([]byte{3}, 20))
	below := gridstakingtypes.NewMsgStake(indexer.String(), math.NewInt(1))

	_, err := dec.AnteHandle(ks.Ctx, mockTx{msgs: []sdk.Msg{below}}, false, nextNoop)
	require.Error(t, err)
	require.Contains(t, err.Error(), "below minimum")

	// Once the indexer has stake on record, top-ups of any size pass.
	params := ks.Staking.GetParams(ks.Ctx)
	keepertest.FundAccount(t, ks.Ctx, ks.Bank, indexer, sdk.NewCoins(sdk.NewCoin(ks.Staking.StakeDenom(ks.Ctx), params.MinimumIndexerStake)))
	_, err = ks.Staking.Stake(ks.Ctx, indexer, params.MinimumIndexerStake)
	require.NoError(t, err)

	_, err = dec.AnteHandle(ks.Ctx, mockTx{msgs: []sdk.Msg{below}}, false, nextNoop)
	require.NoError(t, err)
}
