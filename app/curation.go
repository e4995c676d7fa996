package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
	rewardstypes "github.com/grid-protocol/grid/x/rewards/types"
)

var (
	_ gridstakingtypes.CurationKeeper = CurationAdapter{}
	_ rewardstypes.CurationKeeper     = CurationAdapter{}
)

// CurationAdapter stands in for the curation market module. Until that module
// lands, no subgraph carries signal: indexing rewards lapse and the curation
// fee cut stays parked in the curation pool account.
//
// TODO(x/curation): replace with the curation keeper once the bonding-curve
// market module is merged.
type CurationAdapter struct{}

// GetSubgraphSignal returns the signal curated towards a subgraph deployment.
func (CurationAdapter) GetSubgraphSignal(ctx sdk.Context, subgraphID string) math.Int {
	return math.ZeroInt()
}

// GetTotalSignal returns the network-wide curation signal.
func (CurationAdapter) GetTotalSignal(ctx sdk.Context) math.Int {
	return math.ZeroInt()
}

// Collect credits collected query fees to a subgraph's curators. The tokens
// already sit in the curation pool account when this is called; they stay
// there until curators exist to claim them.
func (CurationAdapter) Collect(ctx sdk.Context, subgraphID string, tokens math.Int) error {
	return nil
}
