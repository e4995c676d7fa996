package types

const (
	// ModuleName defines the module name
	ModuleName = "epochs"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Event types for the epochs module
const (
	EventTypeEpochLengthUpdated = "epoch_length_updated"

	AttributeKeyEpoch       = "epoch"
	AttributeKeyEpochLength = "epoch_length"
	AttributeKeyBlockHeight = "block_height"
)

// EpochState anchors the epoch run. Changing the epoch length re-anchors the
// run at the current epoch so epoch numbers never move backwards.
type EpochState struct {
	EpochLength           uint64 `json:"epoch_length"`
	LastLengthUpdateEpoch uint64 `json:"last_length_update_epoch"`
	LastLengthUpdateBlock int64  `json:"last_length_update_block"`
}

// Validate checks the epoch state is well-formed.
func (es EpochState) Validate() error {
	if es.EpochLength == 0 {
		return ErrInvalidEpochLength.Wrap("epoch length must be positive")
	}
	if es.LastLengthUpdateBlock < 0 {
		return ErrInvalidEpochLength.Wrap("anchor block cannot be negative")
	}
	return nil
}

// EpochAtHeight returns the epoch number at the given block height.
func (es EpochState) EpochAtHeight(height int64) uint64 {
	if height <= es.LastLengthUpdateBlock {
		return es.LastLengthUpdateEpoch
	}
	blocksSinceUpdate := uint64(height - es.LastLengthUpdateBlock)
	return es.LastLengthUpdateEpoch + blocksSinceUpdate/es.EpochLength
}

// EpochStartHeight returns the first block of the current epoch at height.
func (es EpochState) EpochStartHeight(height int64) int64 {
	epochsSinceUpdate := es.EpochAtHeight(height) - es.LastLengthUpdateEpoch
	return es.LastLengthUpdateBlock + int64(epochsSinceUpdate*es.EpochLength)
}
