package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the staking MsgServer
// interface for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// Stake handles MsgStake
func (m msgServer) Stake(goCtx context.Context, msg *types.MsgStake) (*types.MsgStakeResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	total, err := m.Keeper.Stake(ctx, indexer, msg.Tokens)
	if err != nil {
		return nil, err
	}

	return &types.MsgStakeResponse{TotalStaked: total}, nil
}

// Unstake handles MsgUnstake
func (m msgServer) Unstake(goCtx context.Context, msg *types.MsgUnstake) (*types.MsgUnstakeResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	until, err := m.Keeper.Unstake(ctx, indexer, msg.Tokens)
	if err != nil {
		return nil, err
	}

	return &types.MsgUnstakeResponse{UnlockHeight: until}, nil
}

// Withdraw handles MsgWithdraw
func (m msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	withdrawn, err := m.Keeper.Withdraw(ctx, indexer)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawResponse{Withdrawn: withdrawn}, nil
}

// Slash handles MsgSlash
func (m msgServer) Slash(goCtx context.Context, msg *types.MsgSlash) (*types.MsgSlashResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	slasher := sdk.MustAccAddressFromBech32(msg.Slasher)
	if !m.Keeper.IsSlasher(ctx, slasher) {
		return nil, types.ErrNotSlasher.Wrap(msg.Slasher)
	}

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	var beneficiary sdk.AccAddress
	if msg.Reward.IsPositive() {
		beneficiary = sdk.MustAccAddressFromBech32(msg.Beneficiary)
	}

	burned, err := m.Keeper.Slash(ctx, indexer, msg.Tokens, msg.Reward, beneficiary)
	if err != nil {
		return nil, err
	}

	return &types.MsgSlashResponse{Slashed: msg.Tokens, Burned: burned}, nil
}

// SetSlasher handles MsgSetSlasher
func (m msgServer) SetSlasher(goCtx context.Context, msg *types.MsgSetSlasher) (*types.MsgSetSlasherResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.Keeper.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.Keeper.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	slasher := sdk.MustAccAddressFromBech32(msg.Slasher)
	m.Keeper.SetSlasher(ctx, slasher, msg.Enabled)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSlasherUpdated,
			sdk.NewAttribute(types.AttributeKeySlasher, msg.Slasher),
			sdk.NewAttribute(types.AttributeKeyEnabled, strconv.FormatBool(msg.Enabled)),
		),
	)

	return &types.MsgSetSlasherResponse{}, nil
}

// SetRewardsDestination handles MsgSetRewardsDestination
func (m msgServer) SetRewardsDestination(goCtx context.Context, msg *types.MsgSetRewardsDestination) (*types.MsgSetRewardsDestinationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	if err := m.Keeper.SetRewardsDestination(ctx, indexer, msg.Destination); err != nil {
		return nil, err
	}

	return &types.MsgSetRewardsDestinationResponse{}, nil
}

// Delegate handles MsgDelegate
func (m msgServer) Delegate(goCtx context.Context, msg *types.MsgDelegate) (*types.MsgDelegateResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	delegator := sdk.MustAccAddressFromBech32(msg.Delegator)
	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)

	shares, err := m.Keeper.Delegate(ctx, delegator, indexer, msg.Tokens)
	if err != nil {
		return nil, err
	}

	return &types.MsgDelegateResponse{SharesMinted: shares}, nil
}

// Undelegate handles MsgUndelegate
func (m msgServer) Undelegate(goCtx context.Context, msg *types.MsgUndelegate) (*types.MsgUndelegateResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	delegator := sdk.MustAccAddressFromBech32(msg.Delegator)
	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)

	tokens, unlockEpoch, err := m.Keeper.Undelegate(ctx, delegator, indexer, msg.Shares)
	if err != nil {
		return nil, err
	}

	return &types.MsgUndelegateResponse{Tokens: tokens, UnlockEpoch: unlockEpoch}, nil
}

// WithdrawDelegated handles MsgWithdrawDelegated
func (m msgServer) WithdrawDelegated(goCtx context.Context, msg *types.MsgWithdrawDelegated) (*types.MsgWithdrawDelegatedResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	delegator := sdk.MustAccAddressFromBech32(msg.Delegator)
	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	var newIndexer sdk.AccAddress
	if msg.NewIndexer != "" {
		newIndexer = sdk.MustAccAddressFromBech32(msg.NewIndexer)
	}

	withdrawn, err := m.Keeper.WithdrawDelegated(ctx, delegator, indexer, newIndexer)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawDelegatedResponse{Withdrawn: withdrawn}, nil
}

// SetDelegationParameters handles MsgSetDelegationParameters
func (m msgServer) SetDelegationParameters(goCtx context.Context, msg *types.MsgSetDelegationParameters) (*types.MsgSetDelegationParametersResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	if err := m.Keeper.SetDelegationParameters(ctx, indexer, msg.IndexingRewardCut, msg.QueryFeeCut); err != nil {
		return nil, err
	}

	return &types.MsgSetDelegationParametersResponse{}, nil
}

// Allocate handles MsgAllocate
func (m msgServer) Allocate(goCtx context.Context, msg *types.MsgAllocate) (*types.MsgAllocateResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	allocationID := sdk.MustAccAddressFromBech32(msg.AllocationID)

	if err := m.Keeper.Allocate(
		ctx, indexer, msg.SubgraphID, msg.Tokens, allocationID, msg.AllocationPubkey, msg.Proof,
	); err != nil {
		return nil, err
	}

	return &types.MsgAllocateResponse{}, nil
}

// CloseAllocation handles MsgCloseAllocation
func (m msgServer) CloseAllocation(goCtx context.Context, msg *types.MsgCloseAllocation) (*types.MsgCloseAllocationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	sender := sdk.MustAccAddressFromBech32(msg.Sender)
	allocationID := sdk.MustAccAddressFromBech32(msg.AllocationID)

	outcome, err := m.Keeper.CloseAllocation(ctx, sender, allocationID, msg.Poi)
	if err != nil {
		return nil, err
	}

	return &types.MsgCloseAllocationResponse{RewardsOutcome: outcome}, nil
}

// Collect handles MsgCollect
func (m msgServer) Collect(goCtx context.Context, msg *types.MsgCollect) (*types.MsgCollectResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	source := sdk.MustAccAddressFromBech32(msg.Sender)
	if !m.Keeper.IsFeeSource(ctx, source) {
		return nil, types.ErrNotFeeSource.Wrap(msg.Sender)
	}
	allocationID := sdk.MustAccAddressFromBech32(msg.AllocationID)

	collected, err := m.Keeper.CollectFees(ctx, source, allocationID, msg.Tokens)
	if err != nil {
		return nil, err
	}

	return &types.MsgCollectResponse{Collected: collected}, nil
}

// Claim handles MsgClaim
func (m msgServer) Claim(goCtx context.Context, msg *types.MsgClaim) (*types.MsgClaimResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	allocationID := sdk.MustAccAddressFromBech32(msg.AllocationID)

	rebate, err := m.Keeper.Claim(ctx, indexer, allocationID, msg.Restake)
	if err != nil {
		return nil, err
	}

	return &types.MsgClaimResponse{Rebate: rebate}, nil
}

// PresentPoi handles MsgPresentPoi
func (m msgServer) PresentPoi(goCtx context.Context, msg *types.MsgPresentPoi) (*types.MsgPresentPoiResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	indexer := sdk.MustAccAddressFromBech32(msg.Indexer)
	allocationID := sdk.MustAccAddressFromBech32(msg.AllocationID)

	settlement, err := m.Keeper.PresentPoi(ctx, indexer, allocationID, msg.Poi)
	if err != nil {
		return nil, err
	}

	return &types.MsgPresentPoiResponse{
		Rewards: settlement.Rewards,
		Outcome: settlement.Outcome,
	}, nil
}

// SetFeeSource handles MsgSetFeeSource
func (m msgServer) SetFeeSource(goCtx context.Context, msg *types.MsgSetFeeSource) (*types.MsgSetFeeSourceResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.Keeper.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.Keeper.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	source := sdk.MustAccAddressFromBech32(msg.FeeSource)
	m.Keeper.SetFeeSource(ctx, source, msg.Enabled)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeSourceUpdated,
			sdk.NewAttribute(types.AttributeKeyFeeSource, msg.FeeSource),
			sdk.NewAttribute(types.AttributeKeyEnabled, strconv.FormatBool(msg.Enabled)),
		),
	)

	return &types.MsgSetFeeSourceResponse{}, nil
}

// UpdateParams handles MsgUpdateParams
func (m msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.Authority != m.Keeper.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf(
			"expected authority %s, got %s", m.Keeper.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.Keeper.SetParams(ctx, msg.Params); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeParamsUpdated))

	return &types.MsgUpdateParamsResponse{}, nil
}
