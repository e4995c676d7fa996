package types

// Event types for the staking module
const (
	EventTypeStakeDeposited      = "stake_deposited"
	EventTypeStakeLocked         = "stake_locked"
	EventTypeStakeWithdrawn      = "stake_withdrawn"
	EventTypeStakeSlashed        = "stake_slashed"
	EventTypeSlasherUpdated      = "slasher_updated"
	EventTypeFeeSourceUpdated    = "fee_source_updated"
	EventTypeRewardsDestination  = "rewards_destination_updated"
	EventTypeDelegated           = "delegated"
	EventTypeUndelegated         = "undelegated"
	EventTypeDelegationWithdrawn = "delegation_withdrawn"
	EventTypeDelegationParams    = "delegation_params_updated"
	EventTypeAllocationCreated   = "allocation_created"
	EventTypeAllocationClosed    = "allocation_closed"
	EventTypeAllocationCollected = "allocation_collected"
	EventTypeRebateClaimed       = "rebate_claimed"
	EventTypePoiPresented        = "poi_presented"
	EventTypeParamsUpdated       = "params_updated"

	AttributeKeyIndexer             = "indexer"
	AttributeKeyDelegator           = "delegator"
	AttributeKeyBeneficiary         = "beneficiary"
	AttributeKeySlasher             = "slasher"
	AttributeKeyFeeSource           = "fee_source"
	AttributeKeyDestination         = "destination"
	AttributeKeyAllocationID        = "allocation_id"
	AttributeKeySubgraphID          = "subgraph_id"
	AttributeKeyTokens              = "tokens"
	AttributeKeyShares              = "shares"
	AttributeKeyFees                = "fees"
	AttributeKeyRebate              = "rebate"
	AttributeKeyRewards             = "rewards"
	AttributeKeyDelegationRewards   = "delegation_rewards"
	AttributeKeyEffectiveAllocation = "effective_allocation"
	AttributeKeyEpoch               = "epoch"
	AttributeKeyLockedUntil         = "locked_until"
	AttributeKeyIndexingRewardCut   = "indexing_reward_cut"
	AttributeKeyQueryFeeCut         = "query_fee_cut"
	AttributeKeyProtocolFee         = "protocol_fee"
	AttributeKeyCurationFee         = "curation_fee"
	AttributeKeyOutcome             = "outcome"
	AttributeKeyEnabled             = "enabled"
)
