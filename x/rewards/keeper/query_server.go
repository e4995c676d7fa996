package keeper

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/grid-protocol/grid/x/rewards/types"
)

type queryServer struct {
	*Keeper
}

// NewQueryServerImpl returns an implementation of the rewards QueryServer
// interface for the provided Keeper.
func NewQueryServerImpl(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params queries the module parameters
func (q queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	return &types.QueryParamsResponse{Params: q.GetParams(ctx)}, nil
}

// GlobalState queries the global rewards accumulator
func (q queryServer) GlobalState(goCtx context.Context, req *types.QueryGlobalStateRequest) (*types.QueryGlobalStateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	state := q.GetGlobalState(ctx)

	// Project the accumulator to the current height without writing state.
	projected := state.AccRewardsPerSignal
	if height := ctx.BlockHeight(); height > state.LastUpdatedBlock {
		params := q.GetParams(ctx)
		issuance := params.IssuancePerBlock.MulRaw(height - state.LastUpdatedBlock)
		totalSignal := q.curationKeeper.GetTotalSignal(ctx)
		if totalSignal.IsPositive() && issuance.IsPositive() {
			projected = projected.Add(math.LegacyNewDecFromInt(issuance).QuoInt(totalSignal))
		}
	}

	return &types.QueryGlobalStateResponse{
		State:                        state,
		ProjectedAccRewardsPerSignal: projected,
	}, nil
}

// SubgraphState queries a subgraph's rewards accumulators
func (q queryServer) SubgraphState(goCtx context.Context, req *types.QuerySubgraphStateRequest) (*types.QuerySubgraphStateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if req.SubgraphID == "" {
		return nil, status.Error(codes.InvalidArgument, "empty subgraph id")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	state, found := q.GetSubgraphState(ctx, req.SubgraphID)
	if !found {
		return nil, status.Error(codes.NotFound, "subgraph rewards state not found")
	}

	return &types.QuerySubgraphStateResponse{
		State:  state,
		Denied: q.IsDenied(ctx, req.SubgraphID),
	}, nil
}

// DeniedSubgraphs queries all denied subgraph ids
func (q queryServer) DeniedSubgraphs(goCtx context.Context, req *types.QueryDeniedSubgraphsRequest) (*types.QueryDeniedSubgraphsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	return &types.QueryDeniedSubgraphsResponse{SubgraphIDs: q.GetDeniedSubgraphs(ctx)}, nil
}

// IneligibleIndexers queries all indexers barred from indexing rewards
func (q queryServer) IneligibleIndexers(goCtx context.Context, req *types.QueryIneligibleIndexersRequest) (*types.QueryIneligibleIndexersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	return &types.QueryIneligibleIndexersResponse{Indexers: q.GetIneligibleIndexers(ctx)}, nil
}

// ReclaimTotals queries cumulative reclaimed tokens per outcome
func (q queryServer) ReclaimTotals(goCtx context.Context, req *types.QueryReclaimTotalsRequest) (*types.QueryReclaimTotalsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	return &types.QueryReclaimTotalsResponse{Totals: q.GetReclaimTotals(ctx)}, nil
}
