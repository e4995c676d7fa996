package types

import (
	"fmt"
)

// GenesisState defines the epochs module's genesis state.
type GenesisState struct {
	Params Params     `json:"params"`
	State  EpochState `json:"state"`
}

// DefaultGenesis returns the default genesis state for the epochs module.
func DefaultGenesis() *GenesisState {
	params := DefaultParams()
	return &GenesisState{
		Params: params,
		State: EpochState{
			EpochLength: params.EpochLength,
		},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if err := gs.State.Validate(); err != nil {
		return err
	}
	if gs.State.EpochLength != gs.Params.EpochLength {
		return fmt.Errorf("epoch state length %d does not match params %d",
			gs.State.EpochLength, gs.Params.EpochLength)
	}
	return nil
}
