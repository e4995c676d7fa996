package ante

import (
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
	rewardstypes "github.com/grid-protocol/grid/x/rewards/types"
)

// Gas limits for different operation types to prevent exhaustion attacks
const (
	// Stake operations
	MaxGasPerStake    uint64 = 150_000
	MaxGasPerUnstake  uint64 = 150_000
	MaxGasPerWithdraw uint64 = 100_000
	MaxGasPerSlash    uint64 = 250_000

	// Delegation operations
	MaxGasPerDelegate   uint64 = 150_000
	MaxGasPerUndelegate uint64 = 150_000

	// Allocation operations; opening verifies a one-time key signature and
	// closing settles accrued rewards, so both carry a higher bound.
	MaxGasPerAllocate        uint64 = 300_000
	MaxGasPerCloseAllocation uint64 = 400_000
	MaxGasPerPresentPoi      uint64 = 300_000

	// Rebate operations
	MaxGasPerCollect uint64 = 200_000
	MaxGasPerClaim   uint64 = 250_000

	// Admin operations
	MaxGasPerParamsUpdate uint64 = 150_000

	// General limits
	MaxGasPerTx           uint64 = 10_000_000 // Maximum gas per transaction
	MaxGasPerMessage      uint64 = 500_000    // Maximum gas per message in tx
	MaxMessagesPerTx      int    = 10         // Maximum messages per transaction
	MaxIterationsPerLoop  int    = 1000       // Maximum iterations in any loop
	MaxStorageReadsPerOp  int    = 100        // Maximum storage reads per operation
	MaxStorageWritesPerOp int    = 50         // Maximum storage writes per operation
)

// GasLimitDecorator enforces per-operation gas limits to prevent exhaustion attacks
type GasLimitDecorator struct{}

// NewGasLimitDecorator creates a new GasLimitDecorator
func NewGasLimitDecorator() GasLimitDecorator {
	return GasLimitDecorator{}
}

// AnteHandle enforces gas limits on transactions and individual messages
func (gld GasLimitDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	// Get messages from transaction
	msgs := tx.GetMsgs()

	// Enforce maximum messages per transaction
	if len(msgs) > MaxMessagesPerTx {
		return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
			"transaction contains too many messages: %d > %d (prevents DoS)",
			len(msgs), MaxMessagesPerTx,
		)
	}

	// Track gas meter before processing
	gasBefore := ctx.GasMeter().GasConsumed()

	// Validate each message has appropriate gas limits
	for i, msg := range msgs {
		// Get required gas for this message type
		requiredGas := requiredGasForMessage(msg)

		// Check if message gas limit exceeds maximum
		if requiredGas > MaxGasPerMessage {
			return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
				"message %d requires too much gas: %d > %d",
				i, requiredGas, MaxGasPerMessage,
			)
		}

		// Create a bounded gas meter for this message
		msgGasMeter := storetypes.NewGasMeter(requiredGas)
		msgCtx := ctx.WithGasMeter(msgGasMeter)

		// Verify the message doesn't consume more than allocated
		// This is a pre-check; actual consumption happens during execution
		if err := validateMessageGasUsage(msgCtx, msg); err != nil {
			return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
				"message %d failed gas validation: %v", i, err,
			)
		}
	}

	// Check total transaction gas limit
	totalGasRequired := ctx.GasMeter().Limit()
	if totalGasRequired > MaxGasPerTx && !simulate {
		return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
			"transaction gas limit too high: %d > %d",
			totalGasRequired, MaxGasPerTx,
		)
	}

	// Track gas consumption and ensure it doesn't exceed limits
	newCtx, err := next(ctx, tx, simulate)
	if err != nil {
		return newCtx, err
	}

	gasAfter := newCtx.GasMeter().GasConsumed()
	gasUsed := gasAfter - gasBefore

	// Log excessive gas usage for monitoring
	if gasUsed > MaxGasPerTx/2 {
		ctx.Logger().Info("High gas consumption detected",
			"gas_used", gasUsed,
			"num_messages", len(msgs),
			"tx_hash", fmt.Sprintf("%X", ctx.TxBytes()),
		)
	}

	return newCtx, nil
}

// requiredGasForMessage returns the required gas for a specific message type
func requiredGasForMessage(msg sdk.Msg) uint64 {
	switch msg.(type) {
	// Stake messages
	case *gridstakingtypes.MsgStake:
		return MaxGasPerStake
	case *gridstakingtypes.MsgUnstake:
		return MaxGasPerUnstake
	case *gridstakingtypes.MsgWithdraw:
		return MaxGasPerWithdraw
	case *gridstakingtypes.MsgSlash:
		return MaxGasPerSlash

	// Delegation messages
	case *gridstakingtypes.MsgDelegate:
		return MaxGasPerDelegate
	case *gridstakingtypes.MsgUndelegate, *gridstakingtypes.MsgWithdrawDelegated:
		return MaxGasPerUndelegate
	case *gridstakingtypes.MsgSetDelegationParameters:
		return MaxGasPerParamsUpdate

	// Allocation messages
	case *gridstakingtypes.MsgAllocate:
		return MaxGasPerAllocate
	case *gridstakingtypes.MsgCloseAllocation:
		return MaxGasPerCloseAllocation
	case *gridstakingtypes.MsgPresentPoi:
		return MaxGasPerPresentPoi

	// Rebate messages
	case *gridstakingtypes.MsgCollect:
		return MaxGasPerCollect
	case *gridstakingtypes.MsgClaim:
		return MaxGasPerClaim

	// Admin messages
	case *gridstakingtypes.MsgUpdateParams,
		*gridstakingtypes.MsgSetSlasher,
		*gridstakingtypes.MsgSetFeeSource,
		*gridstakingtypes.MsgSetRewardsDestination,
		*rewardstypes.MsgUpdateParams,
		*rewardstypes.MsgSetDenied,
		*rewardstypes.MsgSetIndexerEligibility,
		*rewardstypes.MsgSetReclaimAddress,
		*rewardstypes.MsgSetDefaultReclaimAddress:
		return MaxGasPerParamsUpdate

	default:
		// For unknown message types, use a conservative default
		return MaxGasPerMessage
	}
}

// validateMessageGasUsage performs pre-validation of message gas requirements
func validateMessageGasUsage(ctx sdk.Context, msg sdk.Msg) error {
	// Basic validation that message won't exceed gas limits
	// This is a static check; dynamic checks happen during execution

	type validateBasicMsg interface {
		ValidateBasic() error
	}

	if vb, ok := msg.(validateBasicMsg); ok {
		if err := vb.ValidateBasic(); err != nil {
			return fmt.Errorf("message validation failed: %w", err)
		}
	}

	return nil
}

// ConsumeGasForOperation consumes gas and checks it doesn't exceed per-operation limits
func ConsumeGasForOperation(ctx sdk.Context, gas uint64, operationType string, maxGas uint64) error {
	if gas > maxGas {
		return sdkerrors.ErrInvalidRequest.Wrapf(
			"operation '%s' requires too much gas: %d > %d",
			operationType, gas, maxGas,
		)
	}

	// Consume the gas (will panic if exceeds meter limit)
	ctx.GasMeter().ConsumeGas(gas, operationType)

	return nil
}

// IterateWithGasLimit executes a function in a loop with gas metering and iteration limits
func IterateWithGasLimit(
	ctx sdk.Context,
	maxIterations int,
	gasPerIteration uint64,
	iterFunc func(int) (bool, error),
) error {
	for i := 0; i < maxIterations; i++ {
		// Consume gas for this iteration
		ctx.GasMeter().ConsumeGas(gasPerIteration, fmt.Sprintf("iteration_%d", i))

		// Execute iteration function
		shouldContinue, err := iterFunc(i)
		if err != nil {
			return err
		}

		if !shouldContinue {
			break
		}
	}

	return nil
}
