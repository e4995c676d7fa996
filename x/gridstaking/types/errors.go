package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Staking module sentinel errors
var (
	// Validation errors
	ErrInvalidAmount  = sdkerrors.Register(ModuleName, 2, "invalid token amount")
	ErrInvalidAddress = sdkerrors.Register(ModuleName, 3, "invalid address")
	ErrInvalidCut     = sdkerrors.Register(ModuleName, 4, "cut must be between 0 and 1")

	ErrInvalidSubgraphID = sdkerrors.Register(ModuleName, 8, "invalid subgraph id")

	// Authorization errors
	ErrUnauthorized = sdkerrors.Register(ModuleName, 5, "unauthorized")
	ErrNotSlasher   = sdkerrors.Register(ModuleName, 6, "caller is not an allowed slasher")
	ErrNotFeeSource = sdkerrors.Register(ModuleName, 7, "caller is not an authorized fee source")

	// Stake precondition errors
	ErrIndexerNotFound    = sdkerrors.Register(ModuleName, 10, "indexer has no stake")
	ErrInsufficientStake  = sdkerrors.Register(ModuleName, 11, "insufficient free stake")
	ErrNothingToWithdraw  = sdkerrors.Register(ModuleName, 12, "no tokens available to withdraw")
	ErrSlashOverStake     = sdkerrors.Register(ModuleName, 13, "slash amount exceeds staked tokens")
	ErrRewardOverSlash    = sdkerrors.Register(ModuleName, 14, "slash reward exceeds slash amount")
	ErrBelowMinimumStake  = sdkerrors.Register(ModuleName, 15, "stake below protocol minimum")

	// Delegation precondition errors
	ErrDelegationNotFound  = sdkerrors.Register(ModuleName, 20, "delegation not found")
	ErrInsufficientShares  = sdkerrors.Register(ModuleName, 21, "insufficient delegation shares")
	ErrBelowMinimumDelegation = sdkerrors.Register(ModuleName, 22, "delegation below protocol minimum")
	ErrCooldownNotElapsed  = sdkerrors.Register(ModuleName, 23, "delegation parameter cooldown not elapsed")

	// Allocation precondition errors
	ErrInsufficientCapacity   = sdkerrors.Register(ModuleName, 30, "insufficient allocation capacity")
	ErrAllocationExists       = sdkerrors.Register(ModuleName, 31, "allocation id already used")
	ErrAllocationNotFound     = sdkerrors.Register(ModuleName, 32, "allocation not found")
	ErrInvalidAllocationProof = sdkerrors.Register(ModuleName, 33, "invalid allocation proof")
	ErrInvalidAllocationState = sdkerrors.Register(ModuleName, 34, "operation not valid in current allocation state")
	ErrAllocationNotMature    = sdkerrors.Register(ModuleName, 35, "allocation must be open for at least one epoch")
	ErrDisputeWindowOpen      = sdkerrors.Register(ModuleName, 36, "rebate dispute window has not elapsed")
	ErrAlreadyClaimed         = sdkerrors.Register(ModuleName, 37, "allocation rebate already claimed")

	// Rebate pool errors
	ErrRebatePoolNotFound = sdkerrors.Register(ModuleName, 40, "rebate pool not found")
	ErrRebatePoolEmpty    = sdkerrors.Register(ModuleName, 41, "rebate pool has no unclaimed allocations")
)
