package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer defines the staking query server interface
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Indexer(context.Context, *QueryIndexerRequest) (*QueryIndexerResponse, error)
	Indexers(context.Context, *QueryIndexersRequest) (*QueryIndexersResponse, error)
	Delegation(context.Context, *QueryDelegationRequest) (*QueryDelegationResponse, error)
	DelegationPool(context.Context, *QueryDelegationPoolRequest) (*QueryDelegationPoolResponse, error)
	Allocation(context.Context, *QueryAllocationRequest) (*QueryAllocationResponse, error)
	IndexerAllocations(context.Context, *QueryIndexerAllocationsRequest) (*QueryIndexerAllocationsResponse, error)
	RebatePool(context.Context, *QueryRebatePoolRequest) (*QueryRebatePoolResponse, error)
}

// QueryParamsRequest is the request for the Params query
type QueryParamsRequest struct{}

// QueryParamsResponse is the response for the Params query
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryIndexerRequest is the request for the Indexer query
type QueryIndexerRequest struct {
	Indexer string `json:"indexer"`
}

// QueryIndexerResponse is the response for the Indexer query
type QueryIndexerResponse struct {
	Stake IndexerStake `json:"stake"`
	// Capacity is the remaining allocation capacity, own stake plus
	// eligible delegation minus tokens already allocated.
	Capacity math.Int `json:"capacity"`
}

// QueryIndexersRequest is the request for the Indexers query
type QueryIndexersRequest struct{}

// QueryIndexersResponse is the response for the Indexers query
type QueryIndexersResponse struct {
	Indexers []IndexerStake `json:"indexers"`
}

// QueryDelegationRequest is the request for the Delegation query
type QueryDelegationRequest struct {
	Delegator string `json:"delegator"`
	Indexer   string `json:"indexer"`
}

// QueryDelegationResponse is the response for the Delegation query
type QueryDelegationResponse struct {
	Delegation Delegation `json:"delegation"`
	// Tokens is the current redemption value of the delegation's shares.
	Tokens math.Int `json:"tokens"`
}

// QueryDelegationPoolRequest is the request for the DelegationPool query
type QueryDelegationPoolRequest struct {
	Indexer string `json:"indexer"`
}

// QueryDelegationPoolResponse is the response for the DelegationPool query
type QueryDelegationPoolResponse struct {
	Pool DelegationPool `json:"pool"`
}

// QueryAllocationRequest is the request for the Allocation query
type QueryAllocationRequest struct {
	AllocationID string `json:"allocation_id"`
}

// QueryAllocationResponse is the response for the Allocation query
type QueryAllocationResponse struct {
	Allocation Allocation `json:"allocation"`
	State      string     `json:"state"`
}

// QueryIndexerAllocationsRequest is the request for the IndexerAllocations query
type QueryIndexerAllocationsRequest struct {
	Indexer string `json:"indexer"`
}

// QueryIndexerAllocationsResponse is the response for the IndexerAllocations query
type QueryIndexerAllocationsResponse struct {
	Allocations []Allocation `json:"allocations"`
}

// QueryRebatePoolRequest is the request for the RebatePool query
type QueryRebatePoolRequest struct {
	Epoch uint64 `json:"epoch"`
}

// QueryRebatePoolResponse is the response for the RebatePool query
type QueryRebatePoolResponse struct {
	Pool RebatePool `json:"pool"`
}
