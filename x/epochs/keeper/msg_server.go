package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/epochs/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// UpdateEpochLength handles epoch length updates from the module authority
func (ms msgServer) UpdateEpochLength(goCtx context.Context, msg *types.MsgUpdateEpochLength) (*types.MsgUpdateEpochLengthResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	if msg.Authority != ms.authority {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", ms.authority, msg.Authority)
	}

	epoch, err := ms.Keeper.UpdateEpochLength(ctx, msg.EpochLength)
	if err != nil {
		return nil, err
	}

	return &types.MsgUpdateEpochLengthResponse{Epoch: epoch}, nil
}
