package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccountKeeper defines the expected account keeper methods
type AccountKeeper interface {
	GetModuleAddress(name string) sdk.AccAddress
	GetAccount(ctx context.Context, addr sdk.AccAddress) sdk.AccountI
}

// BankKeeper defines the expected bank keeper methods
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromModuleToModule(ctx context.Context, senderModule, recipientModule string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
}

// EpochsKeeper defines the expected epochs keeper methods
type EpochsKeeper interface {
	CurrentEpoch(ctx sdk.Context) uint64
}

// CurationKeeper receives the curation share of collected query fees.
// The tokens are transferred to the curation pool account before Collect is
// called; implementations credit them to the subgraph's curators.
type CurationKeeper interface {
	Collect(ctx sdk.Context, subgraphID string, tokens math.Int) error
}

// AllocationRewardsView is the slice of allocation state the rewards keeper
// needs to settle accrued indexing rewards.
type AllocationRewardsView struct {
	ID               string
	Indexer          string
	SubgraphID       string
	Tokens           math.Int
	SnapshotPerToken math.LegacyDec
	CreatedAtEpoch   uint64
	LastPoiEpoch     uint64
	// PoiPresented reports whether the triggering message carried a
	// non-empty proof of indexing.
	PoiPresented bool
	// Closing reports whether the allocation is being closed, as opposed to
	// an interim poi presentation.
	Closing bool
	// ForcedClose reports whether a third party is closing the allocation
	// past its maximum lifetime.
	ForcedClose bool
}

// RewardsSettlement is the outcome of settling an allocation's accrued
// indexing rewards.
type RewardsSettlement struct {
	// Rewards is the amount minted to the staking module for distribution.
	// Zero when the accrued value was reclaimed or deferred.
	Rewards math.Int
	// Outcome names how the accrued value was routed.
	Outcome string
	// NewSnapshot is the subgraph's accumulator value after settlement; the
	// caller stores it on the allocation.
	NewSnapshot math.LegacyDec
	// Deferred reports that the accrued value stays on the allocation for a
	// later settlement attempt.
	Deferred bool
}

// RewardsKeeper defines the expected rewards keeper methods. Set after
// construction to break the keeper dependency cycle.
type RewardsKeeper interface {
	// OnSubgraphAllocationUpdate folds accrued rewards into the subgraph's
	// accumulator before its allocated token total changes, and returns the
	// updated per-allocated-token accumulator for snapshotting.
	OnSubgraphAllocationUpdate(ctx sdk.Context, subgraphID string) (math.LegacyDec, error)

	// SettleAllocationRewards routes an allocation's accrued indexing
	// rewards: mint and distribute, reclaim, or defer.
	SettleAllocationRewards(ctx sdk.Context, view AllocationRewardsView) (RewardsSettlement, error)
}
