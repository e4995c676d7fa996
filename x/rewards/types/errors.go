package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Rewards module sentinel errors
var (
	ErrInvalidAddress = sdkerrors.Register(ModuleName, 2, "invalid address")
	ErrInvalidParams  = sdkerrors.Register(ModuleName, 3, "invalid parameters")
	ErrUnauthorized   = sdkerrors.Register(ModuleName, 4, "unauthorized")

	ErrInvalidSubgraphID = sdkerrors.Register(ModuleName, 10, "invalid subgraph id")
	ErrUnknownOutcome    = sdkerrors.Register(ModuleName, 11, "unknown settlement outcome")
	ErrStakingNotWired   = sdkerrors.Register(ModuleName, 12, "staking keeper not wired")
)
