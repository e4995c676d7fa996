package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the rewards MsgServer
// interface for the provided Keeper.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// SetDenied handles MsgSetDenied
func (m msgServer) SetDenied(goCtx context.Context, msg *types.MsgSetDenied) (*types.MsgSetDeniedResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	m.Keeper.SetDenied(ctx, msg.SubgraphID, msg.Denied)

	return &types.MsgSetDeniedResponse{}, nil
}

// SetIndexerEligibility handles MsgSetIndexerEligibility
func (m msgServer) SetIndexerEligibility(goCtx context.Context, msg *types.MsgSetIndexerEligibility) (*types.MsgSetIndexerEligibilityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	params := m.GetParams(ctx)
	if msg.Sender != m.GetAuthority() && (params.EligibilityOracle == "" || msg.Sender != params.EligibilityOracle) {
		return nil, types.ErrUnauthorized.Wrap("sender is neither the authority nor the eligibility oracle")
	}

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	m.Keeper.SetIndexerEligible(ctx, indexer, msg.Eligible)

	return &types.MsgSetIndexerEligibilityResponse{}, nil
}

// SetReclaimAddress handles MsgSetReclaimAddress
func (m msgServer) SetReclaimAddress(goCtx context.Context, msg *types.MsgSetReclaimAddress) (*types.MsgSetReclaimAddressResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.Keeper.SetReclaimAddress(ctx, msg.Outcome, msg.Address); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeReclaimAddressSet,
			sdk.NewAttribute(types.AttributeKeyOutcome, msg.Outcome),
			sdk.NewAttribute(types.AttributeKeyAddress, msg.Address),
		),
	)

	return &types.MsgSetReclaimAddressResponse{}, nil
}

// SetDefaultReclaimAddress handles MsgSetDefaultReclaimAddress
func (m msgServer) SetDefaultReclaimAddress(goCtx context.Context, msg *types.MsgSetDefaultReclaimAddress) (*types.MsgSetDefaultReclaimAddressResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	m.Keeper.SetDefaultReclaimAddress(ctx, msg.Address)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeReclaimAddressSet,
			sdk.NewAttribute(types.AttributeKeyAddress, msg.Address),
		),
	)

	return &types.MsgSetDefaultReclaimAddressResponse{}, nil
}

// UpdateParams handles MsgUpdateParams
func (m msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	// Fold issuance accrued under the old parameters before they change.
	m.UpdateAccRewardsPerSignal(ctx)

	if err := m.SetParams(ctx, msg.Params); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeParamsUpdated))

	return &types.MsgUpdateParamsResponse{}, nil
}
