package types

// Event types for the rewards module
const (
	EventTypeRewardsDistributed   = "rewards_distributed"
	EventTypeRewardsReclaimed     = "rewards_reclaimed"
	EventTypeRewardsDeferred      = "rewards_deferred"
	EventTypeSubgraphDenied       = "subgraph_denied"
	EventTypeIndexerEligibility   = "indexer_eligibility_updated"
	EventTypeReclaimAddressSet    = "reclaim_address_updated"
	EventTypeParamsUpdated        = "params_updated"

	AttributeKeyIndexer      = "indexer"
	AttributeKeyAllocationID = "allocation_id"
	AttributeKeySubgraphID   = "subgraph_id"
	AttributeKeyTokens       = "tokens"
	AttributeKeyOutcome      = "outcome"
	AttributeKeyDenied       = "denied"
	AttributeKeyEligible     = "eligible"
	AttributeKeyAddress      = "address"
	AttributeKeyDropped      = "dropped"
)
