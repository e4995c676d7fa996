package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the expected bank keeper methods
type BankKeeper interface {
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	SendCoinsFromModuleToModule(ctx context.Context, senderModule, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// EpochsKeeper defines the expected epochs keeper methods
type EpochsKeeper interface {
	CurrentEpoch(ctx sdk.Context) uint64
}

// StakingKeeper defines the staking keeper methods the rewards keeper needs.
// Set after construction to break the keeper dependency cycle.
type StakingKeeper interface {
	// GetSubgraphAllocatedTokens returns the tokens currently allocated
	// towards a subgraph deployment.
	GetSubgraphAllocatedTokens(ctx sdk.Context, subgraphID string) math.Int

	// StakeDenom returns the staking denom rewards are minted in.
	StakeDenom(ctx sdk.Context) string
}

// CurationKeeper supplies curation signal, the weight issuance is spread
// over.
type CurationKeeper interface {
	GetSubgraphSignal(ctx sdk.Context, subgraphID string) math.Int
	GetTotalSignal(ctx sdk.Context) math.Int
}
