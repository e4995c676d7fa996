package ante

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	gridstakingkeeper "github.com/grid-protocol/grid/x/gridstaking/keeper"
	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
)

// Payload size bounds enforced before signature verification, so oversized
// allocation proofs and proofs of indexing are rejected before they cost the
// node real work.
const (
	// MaxAllocationProofBytes bounds the one-time key signature carried by
	// MsgAllocate. Secp256k1 signatures are 64 or 65 bytes.
	MaxAllocationProofBytes = 65

	// MaxAllocationPubkeyBytes bounds the one-time public key. Compressed
	// secp256k1 keys are 33 bytes.
	MaxAllocationPubkeyBytes = 33

	// MaxPoiBytes bounds a proof of indexing payload.
	MaxPoiBytes = 256
)

// GridStakingDecorator validates staking module-specific transaction
// requirements that are cheap to check and worth rejecting early.
type GridStakingDecorator struct {
	keeper *gridstakingkeeper.Keeper
}

// NewGridStakingDecorator creates a new GridStakingDecorator
func NewGridStakingDecorator(keeper *gridstakingkeeper.Keeper) GridStakingDecorator {
	return GridStakingDecorator{
		keeper: keeper,
	}
}

// AnteHandle implements the AnteDecorator interface
func (gsd GridStakingDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (newCtx sdk.Context, err error) {
	// Skip validation during simulation
	if simulate {
		return next(ctx, tx, simulate)
	}

	msgs := tx.GetMsgs()
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case *gridstakingtypes.MsgAllocate:
			if err := gsd.validateAllocate(ctx, msg); err != nil {
				return ctx, err
			}
		case *gridstakingtypes.MsgCloseAllocation:
			if err := validatePoiSize(msg.Poi); err != nil {
				return ctx, err
			}
		case *gridstakingtypes.MsgPresentPoi:
			if err := validatePoiSize(msg.Poi); err != nil {
				return ctx, err
			}
		case *gridstakingtypes.MsgStake:
			if err := gsd.validateStake(ctx, msg); err != nil {
				return ctx, err
			}
		}
	}

	return next(ctx, tx, simulate)
}

// validateAllocate bounds the allocation proof payloads and rejects ids that
// obviously cannot verify.
func (gsd GridStakingDecorator) validateAllocate(ctx sdk.Context, msg *gridstakingtypes.MsgAllocate) error {
	if len(msg.AllocationPubkey) > MaxAllocationPubkeyBytes {
		return sdkerrors.ErrInvalidRequest.Wrapf(
			"allocation pubkey too large: %d bytes (max %d)",
			len(msg.AllocationPubkey), MaxAllocationPubkeyBytes,
		)
	}

	if len(msg.Proof) > MaxAllocationProofBytes {
		return sdkerrors.ErrInvalidRequest.Wrapf(
			"allocation proof too large: %d bytes (max %d)",
			len(msg.Proof), MaxAllocationProofBytes,
		)
	}

	if msg.AllocationID == msg.Indexer {
		return sdkerrors.ErrInvalidRequest.Wrap("allocation id cannot equal the indexer address")
	}

	return nil
}

// validateStake rejects first-time deposits below the minimum indexer stake
// before fees are spent on execution. Top-ups of an existing stake pass
// through; the keeper allows them at any size.
func (gsd GridStakingDecorator) validateStake(ctx sdk.Context, msg *gridstakingtypes.MsgStake) error {
	indexer, err := sdk.AccAddressFromBech32(msg.Indexer)
	if err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid indexer address: %s", err)
	}

	if _, found := gsd.keeper.GetIndexerStake(ctx, indexer); found {
		return nil
	}

	params := gsd.keeper.GetParams(ctx)
	if msg.Tokens.LT(params.MinimumIndexerStake) {
		return sdkerrors.ErrInvalidRequest.Wrapf(
			"initial stake %s below minimum %s",
			msg.Tokens, params.MinimumIndexerStake,
		)
	}

	return nil
}

func validatePoiSize(poi []byte) error {
	if len(poi) > MaxPoiBytes {
		return sdkerrors.ErrInvalidRequest.Wrapf(
			"proof of indexing too large: %d bytes (max %d)", len(poi), MaxPoiBytes,
		)
	}

	return nil
}
