package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Epochs module sentinel errors
var (
	ErrInvalidEpochLength = sdkerrors.Register(ModuleName, 2, "invalid epoch length")
	ErrUnauthorized       = sdkerrors.Register(ModuleName, 3, "unauthorized")
	ErrFutureEpoch        = sdkerrors.Register(ModuleName, 4, "epoch is in the future")
)
