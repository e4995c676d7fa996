package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the staking message server interface
type MsgServer interface {
	Stake(context.Context, *MsgStake) (*MsgStakeResponse, error)
	Unstake(context.Context, *MsgUnstake) (*MsgUnstakeResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	Slash(context.Context, *MsgSlash) (*MsgSlashResponse, error)
	SetSlasher(context.Context, *MsgSetSlasher) (*MsgSetSlasherResponse, error)
	SetRewardsDestination(context.Context, *MsgSetRewardsDestination) (*MsgSetRewardsDestinationResponse, error)

	Delegate(context.Context, *MsgDelegate) (*MsgDelegateResponse, error)
	Undelegate(context.Context, *MsgUndelegate) (*MsgUndelegateResponse, error)
	WithdrawDelegated(context.Context, *MsgWithdrawDelegated) (*MsgWithdrawDelegatedResponse, error)
	SetDelegationParameters(context.Context, *MsgSetDelegationParameters) (*MsgSetDelegationParametersResponse, error)

	Allocate(context.Context, *MsgAllocate) (*MsgAllocateResponse, error)
	CloseAllocation(context.Context, *MsgCloseAllocation) (*MsgCloseAllocationResponse, error)
	Collect(context.Context, *MsgCollect) (*MsgCollectResponse, error)
	Claim(context.Context, *MsgClaim) (*MsgClaimResponse, error)
	PresentPoi(context.Context, *MsgPresentPoi) (*MsgPresentPoiResponse, error)
	SetFeeSource(context.Context, *MsgSetFeeSource) (*MsgSetFeeSourceResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgStakeResponse defines the response for Stake
type MsgStakeResponse struct {
	TotalStaked math.Int `json:"total_staked"`
}

// MsgUnstakeResponse defines the response for Unstake
type MsgUnstakeResponse struct {
	// UnlockHeight is the block height after which the tokens can be withdrawn.
	UnlockHeight int64 `json:"unlock_height"`
}

// MsgWithdrawResponse defines the response for Withdraw
type MsgWithdrawResponse struct {
	Withdrawn math.Int `json:"withdrawn"`
}

// MsgSlashResponse defines the response for Slash
type MsgSlashResponse struct {
	Slashed math.Int `json:"slashed"`
	Burned  math.Int `json:"burned"`
}

// MsgSetSlasherResponse defines the response for SetSlasher
type MsgSetSlasherResponse struct{}

// MsgSetRewardsDestinationResponse defines the response for SetRewardsDestination
type MsgSetRewardsDestinationResponse struct{}

// MsgDelegateResponse defines the response for Delegate
type MsgDelegateResponse struct {
	SharesMinted math.Int `json:"shares_minted"`
}

// MsgUndelegateResponse defines the response for Undelegate
type MsgUndelegateResponse struct {
	Tokens math.Int `json:"tokens"`
	// UnlockEpoch is the epoch after which the tokens can be withdrawn.
	UnlockEpoch uint64 `json:"unlock_epoch"`
}

// MsgWithdrawDelegatedResponse defines the response for WithdrawDelegated
type MsgWithdrawDelegatedResponse struct {
	Withdrawn math.Int `json:"withdrawn"`
}

// MsgSetDelegationParametersResponse defines the response for SetDelegationParameters
type MsgSetDelegationParametersResponse struct{}

// MsgAllocateResponse defines the response for Allocate
type MsgAllocateResponse struct{}

// MsgCloseAllocationResponse defines the response for CloseAllocation
type MsgCloseAllocationResponse struct {
	// RewardsOutcome reports how the allocation's accrued indexing rewards
	// were settled at close.
	RewardsOutcome string `json:"rewards_outcome"`
}

// MsgCollectResponse defines the response for Collect
type MsgCollectResponse struct {
	// Collected is the amount credited after protocol and curation cuts.
	Collected math.Int `json:"collected"`
}

// MsgClaimResponse defines the response for Claim
type MsgClaimResponse struct {
	Rebate math.Int `json:"rebate"`
}

// MsgPresentPoiResponse defines the response for PresentPoi
type MsgPresentPoiResponse struct {
	Rewards math.Int `json:"rewards"`
	Outcome string   `json:"outcome"`
}

// MsgSetFeeSourceResponse defines the response for SetFeeSource
type MsgSetFeeSourceResponse struct{}

// MsgUpdateParamsResponse defines the response for UpdateParams
type MsgUpdateParamsResponse struct{}
