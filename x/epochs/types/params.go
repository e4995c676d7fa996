package types

import (
	"fmt"
)

// DefaultEpochLength is the default number of blocks per epoch. With a 6s
// block time this is roughly one day.
const DefaultEpochLength = 14400

// Params defines the parameters for the epochs module.
type Params struct {
	// EpochLength is the duration of an epoch in blocks.
	EpochLength uint64 `json:"epoch_length"`
}

// DefaultParams returns default epochs parameters
func DefaultParams() Params {
	return Params{
		EpochLength: DefaultEpochLength,
	}
}

// Validate validates the parameter set
func (p Params) Validate() error {
	if p.EpochLength == 0 {
		return fmt.Errorf("epoch length must be positive")
	}
	return nil
}
