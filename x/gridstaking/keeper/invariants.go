package keeper

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

// RegisterInvariants registers all staking module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "module-balance",
		ModuleBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "allocation-accounting",
		AllocationAccountingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "rebate-pool-consistency",
		RebatePoolConsistencyInvariant(k))
}

// AllInvariants runs all invariants of the staking module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ModuleBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = AllocationAccountingInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return RebatePoolConsistencyInvariant(k)(ctx)
	}
}

// ModuleBalanceInvariant checks that the module account holds exactly the
// tokens the state says it owes: indexer stakes, delegation pool tokens,
// unbonding delegations, fees accrued on open allocations and unredeemed
// rebate pool fees.
func ModuleBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params := k.GetParams(ctx)

		owed := math.ZeroInt()
		k.IterateIndexerStakes(ctx, func(stake types.IndexerStake) bool {
			owed = owed.Add(stake.TokensStaked)
			return false
		})
		k.IterateIndexerStakes(ctx, func(stake types.IndexerStake) bool {
			indexer := sdk.MustAccAddressFromBech32(stake.Indexer)
			if pool, found := k.GetDelegationPool(ctx, indexer); found {
				owed = owed.Add(pool.TotalTokens)
			}
			return false
		})
		k.IterateDelegations(ctx, func(delegation types.Delegation) bool {
			owed = owed.Add(delegation.TokensLocked)
			return false
		})
		k.IterateAllocations(ctx, func(alloc types.Allocation) bool {
			if alloc.ClosedAtEpoch == 0 {
				owed = owed.Add(alloc.CollectedFees)
			}
			return false
		})
		k.IterateRebatePools(ctx, func(pool types.RebatePool) bool {
			owed = owed.Add(pool.Fees.Sub(pool.ClaimedRewards))
			return false
		})

		moduleAddr := k.accountKeeper.GetModuleAddress(types.ModuleName)
		balance := k.bankKeeper.GetBalance(ctx, moduleAddr, params.StakeDenom).Amount

		broken := !balance.Equal(owed)
		return sdk.FormatInvariant(types.ModuleName, "module-balance",
			fmt.Sprintf("module account holds %s, state owes %s\n", balance, owed)), broken
	}
}

// AllocationAccountingInvariant checks that the per-indexer and per-subgraph
// allocated token totals match the sum over open allocations.
func AllocationAccountingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		byIndexer := make(map[string]math.Int)
		bySubgraph := make(map[string]math.Int)
		k.IterateAllocations(ctx, func(alloc types.Allocation) bool {
			if alloc.ClosedAtEpoch != 0 {
				return false
			}
			addTo(byIndexer, alloc.Indexer, alloc.Tokens)
			addTo(bySubgraph, alloc.SubgraphID, alloc.Tokens)
			return false
		})

		var issues []string
		k.IterateIndexerStakes(ctx, func(stake types.IndexerStake) bool {
			expect := byIndexer[stake.Indexer]
			if expect.IsNil() {
				expect = math.ZeroInt()
			}
			if !stake.TokensAllocated.Equal(expect) {
				issues = append(issues, fmt.Sprintf(
					"indexer %s: recorded %s allocated, allocations sum to %s",
					stake.Indexer, stake.TokensAllocated, expect))
			}
			return false
		})
		k.IterateSubgraphAllocations(ctx, func(subgraphID string, tokens math.Int) bool {
			expect := bySubgraph[subgraphID]
			if expect.IsNil() {
				expect = math.ZeroInt()
			}
			if !tokens.Equal(expect) {
				issues = append(issues, fmt.Sprintf(
					"subgraph %s: recorded %s allocated, allocations sum to %s",
					subgraphID, tokens, expect))
			}
			return false
		})

		broken := len(issues) > 0
		return sdk.FormatInvariant(types.ModuleName, "allocation-accounting",
			fmt.Sprintf("%d allocation accounting issues\n%s", len(issues), strings.Join(issues, "\n"))), broken
	}
}

// RebatePoolConsistencyInvariant checks that no rebate pool has paid out more
// than it holds or claimed more weight than was registered.
func RebatePoolConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var issues []string
		k.IterateRebatePools(ctx, func(pool types.RebatePool) bool {
			if err := pool.Validate(); err != nil {
				issues = append(issues, fmt.Sprintf("epoch %d: %s", pool.Epoch, err))
			}
			return false
		})

		broken := len(issues) > 0
		return sdk.FormatInvariant(types.ModuleName, "rebate-pool-consistency",
			fmt.Sprintf("%d rebate pool issues\n%s", len(issues), strings.Join(issues, "\n"))), broken
	}
}

func addTo(m map[string]math.Int, key string, tokens math.Int) {
	cur, ok := m[key]
	if !ok {
		cur = math.ZeroInt()
	}
	m[key] = cur.Add(tokens)
}
