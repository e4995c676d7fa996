package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Params defines the parameters for the rewards module.
type Params struct {
	// IssuancePerBlock is the indexing reward issuance accrued each block,
	// spread over signal.
	IssuancePerBlock math.Int `json:"issuance_per_block"`
	// MinimumSubgraphSignal is the signal threshold below which accrued
	// rewards are reclaimed at settlement.
	MinimumSubgraphSignal math.Int `json:"minimum_subgraph_signal"`
	// MaxPoiStalenessEpochs is how many epochs a poi may age before accrued
	// rewards are reclaimed as stale.
	MaxPoiStalenessEpochs uint64 `json:"max_poi_staleness_epochs"`
	// EligibilityOracle may flip indexer reward eligibility in addition to
	// the authority. Empty disables the extra signer.
	EligibilityOracle string `json:"eligibility_oracle,omitempty"`
}

// DefaultParams returns default rewards parameters
func DefaultParams() Params {
	return Params{
		IssuancePerBlock:      math.NewInt(10_000),
		MinimumSubgraphSignal: math.NewInt(100),
		MaxPoiStalenessEpochs: 2,
	}
}

// Validate validates the parameter set
func (p Params) Validate() error {
	if p.IssuancePerBlock.IsNil() || p.IssuancePerBlock.IsNegative() {
		return fmt.Errorf("issuance per block cannot be negative")
	}
	if p.MinimumSubgraphSignal.IsNil() || p.MinimumSubgraphSignal.IsNegative() {
		return fmt.Errorf("minimum subgraph signal cannot be negative")
	}
	if p.MaxPoiStalenessEpochs == 0 {
		return fmt.Errorf("max poi staleness must be positive")
	}
	if p.EligibilityOracle != "" {
		if _, err := sdk.AccAddressFromBech32(p.EligibilityOracle); err != nil {
			return fmt.Errorf("invalid eligibility oracle address: %w", err)
		}
	}
	return nil
}
