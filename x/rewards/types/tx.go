package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the rewards message server interface
type MsgServer interface {
	SetDenied(context.Context, *MsgSetDenied) (*MsgSetDeniedResponse, error)
	SetIndexerEligibility(context.Context, *MsgSetIndexerEligibility) (*MsgSetIndexerEligibilityResponse, error)
	SetReclaimAddress(context.Context, *MsgSetReclaimAddress) (*MsgSetReclaimAddressResponse, error)
	SetDefaultReclaimAddress(context.Context, *MsgSetDefaultReclaimAddress) (*MsgSetDefaultReclaimAddressResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgSetDeniedResponse defines the response for SetDenied
type MsgSetDeniedResponse struct{}

// MsgSetIndexerEligibilityResponse defines the response for SetIndexerEligibility
type MsgSetIndexerEligibilityResponse struct{}

// MsgSetReclaimAddressResponse defines the response for SetReclaimAddress
type MsgSetReclaimAddressResponse struct{}

// MsgSetDefaultReclaimAddressResponse defines the response for SetDefaultReclaimAddress
type MsgSetDefaultReclaimAddressResponse struct{}

// MsgUpdateParamsResponse defines the response for UpdateParams
type MsgUpdateParamsResponse struct{}

// QueryServer defines the rewards query server interface
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	GlobalState(context.Context, *QueryGlobalStateRequest) (*QueryGlobalStateResponse, error)
	SubgraphState(context.Context, *QuerySubgraphStateRequest) (*QuerySubgraphStateResponse, error)
	DeniedSubgraphs(context.Context, *QueryDeniedSubgraphsRequest) (*QueryDeniedSubgraphsResponse, error)
	IneligibleIndexers(context.Context, *QueryIneligibleIndexersRequest) (*QueryIneligibleIndexersResponse, error)
	ReclaimTotals(context.Context, *QueryReclaimTotalsRequest) (*QueryReclaimTotalsResponse, error)
}

// QueryParamsRequest is the request for the Params query
type QueryParamsRequest struct{}

// QueryParamsResponse is the response for the Params query
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryGlobalStateRequest is the request for the GlobalState query
type QueryGlobalStateRequest struct{}

// QueryGlobalStateResponse is the response for the GlobalState query
type QueryGlobalStateResponse struct {
	State GlobalRewardsState `json:"state"`
	// ProjectedAccRewardsPerSignal includes issuance accrued since the last
	// stored update.
	ProjectedAccRewardsPerSignal math.LegacyDec `json:"projected_acc_rewards_per_signal"`
}

// QuerySubgraphStateRequest is the request for the SubgraphState query
type QuerySubgraphStateRequest struct {
	SubgraphID string `json:"subgraph_id"`
}

// QuerySubgraphStateResponse is the response for the SubgraphState query
type QuerySubgraphStateResponse struct {
	State  SubgraphRewardsState `json:"state"`
	Denied bool                 `json:"denied"`
}

// QueryDeniedSubgraphsRequest is the request for the DeniedSubgraphs query
type QueryDeniedSubgraphsRequest struct{}

// QueryDeniedSubgraphsResponse is the response for the DeniedSubgraphs query
type QueryDeniedSubgraphsResponse struct {
	SubgraphIDs []string `json:"subgraph_ids"`
}

// QueryIneligibleIndexersRequest is the request for the IneligibleIndexers query
type QueryIneligibleIndexersRequest struct{}

// QueryIneligibleIndexersResponse is the response for the IneligibleIndexers query
type QueryIneligibleIndexersResponse struct {
	Indexers []string `json:"indexers"`
}

// QueryReclaimTotalsRequest is the request for the ReclaimTotals query
type QueryReclaimTotalsRequest struct{}

// QueryReclaimTotalsResponse is the response for the ReclaimTotals query
type QueryReclaimTotalsResponse struct {
	Totals []ReclaimTotal `json:"totals"`
}
