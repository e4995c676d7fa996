package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grid-protocol/grid/x/gridstaking/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the staking QueryServer
// interface for the provided Keeper.
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params queries the module parameters
func (q queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	return &types.QueryParamsResponse{Params: q.Keeper.GetParams(ctx)}, nil
}

// Indexer queries an indexer's stake record and remaining capacity
func (q queryServer) Indexer(goCtx context.Context, req *types.QueryIndexerRequest) (*types.QueryIndexerResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	indexer, err := sdk.AccAddressFromBech32(req.Indexer)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid indexer address")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	stake, found := q.Keeper.GetIndexerStake(ctx, indexer)
	if !found {
		return nil, status.Errorf(codes.NotFound, "indexer %s has no stake", req.Indexer)
	}

	return &types.QueryIndexerResponse{
		Stake:    stake,
		Capacity: q.Keeper.IndexerCapacity(ctx, indexer),
	}, nil
}

// Indexers queries all indexer stake records
func (q queryServer) Indexers(goCtx context.Context, req *types.QueryIndexersRequest) (*types.QueryIndexersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	var indexers []types.IndexerStake
	q.Keeper.IterateIndexerStakes(ctx, func(stake types.IndexerStake) bool {
		indexers = append(indexers, stake)
		return false
	})

	return &types.QueryIndexersResponse{Indexers: indexers}, nil
}

// Delegation queries a delegator's position and its redemption value
func (q queryServer) Delegation(goCtx context.Context, req *types.QueryDelegationRequest) (*types.QueryDelegationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	delegator, err := sdk.AccAddressFromBech32(req.Delegator)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid delegator address")
	}
	indexer, err := sdk.AccAddressFromBech32(req.Indexer)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid indexer address")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	delegation, found := q.Keeper.GetDelegation(ctx, indexer, delegator)
	if !found {
		return nil, status.Error(codes.NotFound, "delegation not found")
	}

	tokens := delegation.TokensLocked
	if pool, ok := q.Keeper.GetDelegationPool(ctx, indexer); ok {
		tokens = tokens.Add(pool.TokensForShares(delegation.Shares))
	}

	return &types.QueryDelegationResponse{Delegation: delegation, Tokens: tokens}, nil
}

// DelegationPool queries an indexer's delegation pool
func (q queryServer) DelegationPool(goCtx context.Context, req *types.QueryDelegationPoolRequest) (*types.QueryDelegationPoolResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	indexer, err := sdk.AccAddressFromBech32(req.Indexer)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid indexer address")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	pool, found := q.Keeper.GetDelegationPool(ctx, indexer)
	if !found {
		return nil, status.Errorf(codes.NotFound, "no delegation pool for indexer %s", req.Indexer)
	}

	return &types.QueryDelegationPoolResponse{Pool: pool}, nil
}

// Allocation queries an allocation record and its derived lifecycle state
func (q queryServer) Allocation(goCtx context.Context, req *types.QueryAllocationRequest) (*types.QueryAllocationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	allocationID, err := sdk.AccAddressFromBech32(req.AllocationID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid allocation id")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	alloc, found := q.Keeper.GetAllocation(ctx, allocationID)
	if !found {
		return nil, status.Errorf(codes.NotFound, "allocation %s not found", req.AllocationID)
	}

	params := q.Keeper.GetParams(ctx)
	state := alloc.State(
		q.Keeper.epochsKeeper.CurrentEpoch(ctx),
		params.MaxAllocationEpochs,
		params.RebateDisputeEpochs,
	)

	return &types.QueryAllocationResponse{Allocation: alloc, State: state.String()}, nil
}

// IndexerAllocations queries all allocations of an indexer
func (q queryServer) IndexerAllocations(goCtx context.Context, req *types.QueryIndexerAllocationsRequest) (*types.QueryIndexerAllocationsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	indexer, err := sdk.AccAddressFromBech32(req.Indexer)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid indexer address")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	var allocations []types.Allocation
	q.Keeper.IterateIndexerAllocations(ctx, indexer, func(alloc types.Allocation) bool {
		allocations = append(allocations, alloc)
		return false
	})

	return &types.QueryIndexerAllocationsResponse{Allocations: allocations}, nil
}

// RebatePool queries the rebate pool for a settlement epoch
func (q queryServer) RebatePool(goCtx context.Context, req *types.QueryRebatePoolRequest) (*types.QueryRebatePoolResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	pool, found := q.Keeper.GetRebatePool(ctx, req.Epoch)
	if !found {
		return nil, status.Errorf(codes.NotFound, "no rebate pool for epoch %d", req.Epoch)
	}

	return &types.QueryRebatePoolResponse{Pool: pool}, nil
}
