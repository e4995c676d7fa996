package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ReclaimAddress is a per-outcome reclaim sink override.
type ReclaimAddress struct {
	Outcome string `json:"outcome"`
	Address string `json:"address"`
}

// GenesisState defines the rewards module's genesis state
type GenesisState struct {
	Params                Params                 `json:"params"`
	GlobalState           GlobalRewardsState     `json:"global_state"`
	SubgraphStates        []SubgraphRewardsState `json:"subgraph_states,omitempty"`
	DeniedSubgraphs       []string               `json:"denied_subgraphs,omitempty"`
	IneligibleIndexers    []string               `json:"ineligible_indexers,omitempty"`
	DefaultReclaimAddress string                 `json:"default_reclaim_address,omitempty"`
	ReclaimAddresses      []ReclaimAddress       `json:"reclaim_addresses,omitempty"`
	ReclaimTotals         []ReclaimTotal         `json:"reclaim_totals,omitempty"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:      DefaultParams(),
		GlobalState: NewGlobalRewardsState(),
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if err := gs.GlobalState.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, state := range gs.SubgraphStates {
		if err := state.Validate(); err != nil {
			return err
		}
		if seen[state.SubgraphID] {
			return fmt.Errorf("duplicate subgraph state %s", state.SubgraphID)
		}
		seen[state.SubgraphID] = true
	}
	for _, id := range gs.DeniedSubgraphs {
		if id == "" {
			return fmt.Errorf("denied subgraph id cannot be empty")
		}
	}
	for _, addr := range gs.IneligibleIndexers {
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return fmt.Errorf("invalid ineligible indexer address %s: %w", addr, err)
		}
	}
	if gs.DefaultReclaimAddress != "" {
		if _, err := sdk.AccAddressFromBech32(gs.DefaultReclaimAddress); err != nil {
			return fmt.Errorf("invalid default reclaim address: %w", err)
		}
	}
	for _, ra := range gs.ReclaimAddresses {
		if !IsReclaimOutcome(ra.Outcome) {
			return fmt.Errorf("unknown reclaim outcome %s", ra.Outcome)
		}
		if _, err := sdk.AccAddressFromBech32(ra.Address); err != nil {
			return fmt.Errorf("invalid reclaim address for %s: %w", ra.Outcome, err)
		}
	}
	for _, rt := range gs.ReclaimTotals {
		if rt.Tokens.IsNil() || rt.Tokens.IsNegative() {
			return fmt.Errorf("reclaim total for %s cannot be nil or negative", rt.Outcome)
		}
	}
	return nil
}
