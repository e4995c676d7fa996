package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgAllocate        = "allocate"
	TypeMsgCloseAllocation = "close_allocation"
	TypeMsgCollect         = "collect"
	TypeMsgClaim           = "claim"
	TypeMsgPresentPoi      = "present_poi"
	TypeMsgSetFeeSource    = "set_fee_source"
	TypeMsgUpdateParams    = "update_params"
)

var (
	_ sdk.Msg = &MsgAllocate{}
	_ sdk.Msg = &MsgCloseAllocation{}
	_ sdk.Msg = &MsgCollect{}
	_ sdk.Msg = &MsgClaim{}
	_ sdk.Msg = &MsgPresentPoi{}
	_ sdk.Msg = &MsgSetFeeSource{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgAllocate opens an allocation of stake towards a subgraph deployment.
// The allocation id is the address of a one-time key; the proof is that key's
// signature over indexer||allocation_id and prevents id squatting.
type MsgAllocate struct {
	Indexer          string   `json:"indexer"`
	SubgraphID       string   `json:"subgraph_id"`
	Tokens           math.Int `json:"tokens"`
	AllocationID     string   `json:"allocation_id"`
	AllocationPubkey []byte   `json:"allocation_pubkey"`
	Proof            []byte   `json:"proof"`
}

// NewMsgAllocate creates a new MsgAllocate instance
func NewMsgAllocate(indexer, subgraphID string, tokens math.Int, allocationID string, pubkey, proof []byte) *MsgAllocate {
	return &MsgAllocate{
		Indexer:          indexer,
		SubgraphID:       subgraphID,
		Tokens:           tokens,
		AllocationID:     allocationID,
		AllocationPubkey: pubkey,
		Proof:            proof,
	}
}

// Route implements the sdk.Msg interface
func (msg *MsgAllocate) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgAllocate) Type() string { return TypeMsgAllocate }

// GetSigners implements the sdk.Msg interface
func (msg *MsgAllocate) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgAllocate) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgAllocate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if msg.SubgraphID == "" {
		return ErrInvalidSubgraphID.Wrap("subgraph id cannot be empty")
	}
	if msg.Tokens.IsNil() || msg.Tokens.IsNegative() {
		return ErrInvalidAmount.Wrap("token amount cannot be nil or negative")
	}
	if _, err := sdk.AccAddressFromBech32(msg.AllocationID); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid allocation id: %s", err)
	}
	if len(msg.AllocationPubkey) == 0 {
		return ErrInvalidAllocationProof.Wrap("allocation pubkey cannot be empty")
	}
	if len(msg.Proof) == 0 {
		return ErrInvalidAllocationProof.Wrap("proof cannot be empty")
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgAllocate) Reset() { *msg = MsgAllocate{} }

// String implements the proto.Message interface
func (msg *MsgAllocate) String() string {
	return fmt.Sprintf("MsgAllocate{%s, %s, %s, %s}",
		msg.Indexer, msg.SubgraphID, msg.Tokens, msg.AllocationID)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgAllocate) ProtoMessage() {}

// MsgCloseAllocation closes an active allocation, settling its indexing
// rewards and moving its collected fees into the current epoch's rebate pool.
// The indexer closes with a proof of indexing; once the allocation is past
// its maximum lifetime anyone may close it with an empty poi.
type MsgCloseAllocation struct {
	Sender       string `json:"sender"`
	AllocationID string `json:"allocation_id"`
	Poi          []byte `json:"poi,omitempty"`
}

// NewMsgCloseAllocation creates a new MsgCloseAllocation instance
func NewMsgCloseAllocation(sender, allocationID string, poi []byte) *MsgCloseAllocation {
	return &MsgCloseAllocation{Sender: sender, AllocationID: allocationID, Poi: poi}
}

// Route implements the sdk.Msg interface
func (msg *MsgCloseAllocation) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgCloseAllocation) Type() string { return TypeMsgCloseAllocation }

// GetSigners implements the sdk.Msg interface
func (msg *MsgCloseAllocation) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgCloseAllocation) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgCloseAllocation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.AllocationID); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid allocation id: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgCloseAllocation) Reset() { *msg = MsgCloseAllocation{} }

// String implements the proto.Message interface
func (msg *MsgCloseAllocation) String() string {
	return fmt.Sprintf("MsgCloseAllocation{%s, %s}", msg.Sender, msg.AllocationID)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgCloseAllocation) ProtoMessage() {}

// MsgCollect credits query fees against an allocation. Only authorized fee
// sources (payment channel settlement) may collect.
type MsgCollect struct {
	Sender       string   `json:"sender"`
	AllocationID string   `json:"allocation_id"`
	Tokens       math.Int `json:"tokens"`
}

// NewMsgCollect creates a new MsgCollect instance
func NewMsgCollect(sender, allocationID string, tokens math.Int) *MsgCollect {
	return &MsgCollect{Sender: sender, AllocationID: allocationID, Tokens: tokens}
}

// Route implements the sdk.Msg interface
func (msg *MsgCollect) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgCollect) Type() string { return TypeMsgCollect }

// GetSigners implements the sdk.Msg interface
func (msg *MsgCollect) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgCollect) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgCollect) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.AllocationID); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid allocation id: %s", err)
	}
	return validatePositiveAmount(msg.Tokens)
}

// Reset implements the proto.Message interface
func (msg *MsgCollect) Reset() { *msg = MsgCollect{} }

// String implements the proto.Message interface
func (msg *MsgCollect) String() string {
	return fmt.Sprintf("MsgCollect{%s, %s}", msg.AllocationID, msg.Tokens)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgCollect) ProtoMessage() {}

// MsgClaim redeems the query fee rebate for a closed allocation once the
// dispute window has elapsed
type MsgClaim struct {
	Indexer      string `json:"indexer"`
	AllocationID string `json:"allocation_id"`
	Restake      bool   `json:"restake"`
}

// NewMsgClaim creates a new MsgClaim instance
func NewMsgClaim(indexer, allocationID string, restake bool) *MsgClaim {
	return &MsgClaim{Indexer: indexer, AllocationID: allocationID, Restake: restake}
}

// Route implements the sdk.Msg interface
func (msg *MsgClaim) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgClaim) Type() string { return TypeMsgClaim }

// GetSigners implements the sdk.Msg interface
func (msg *MsgClaim) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgClaim) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgClaim) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.AllocationID); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid allocation id: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgClaim) Reset() { *msg = MsgClaim{} }

// String implements the proto.Message interface
func (msg *MsgClaim) String() string {
	return fmt.Sprintf("MsgClaim{%s, %s, restake=%t}", msg.Indexer, msg.AllocationID, msg.Restake)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgClaim) ProtoMessage() {}

// MsgPresentPoi settles accrued indexing rewards on an open allocation
// without closing it
type MsgPresentPoi struct {
	Indexer      string `json:"indexer"`
	AllocationID string `json:"allocation_id"`
	Poi          []byte `json:"poi"`
}

// NewMsgPresentPoi creates a new MsgPresentPoi instance
func NewMsgPresentPoi(indexer, allocationID string, poi []byte) *MsgPresentPoi {
	return &MsgPresentPoi{Indexer: indexer, AllocationID: allocationID, Poi: poi}
}

// Route implements the sdk.Msg interface
func (msg *MsgPresentPoi) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgPresentPoi) Type() string { return TypeMsgPresentPoi }

// GetSigners implements the sdk.Msg interface
func (msg *MsgPresentPoi) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgPresentPoi) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgPresentPoi) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.AllocationID); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid allocation id: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgPresentPoi) Reset() { *msg = MsgPresentPoi{} }

// String implements the proto.Message interface
func (msg *MsgPresentPoi) String() string {
	return fmt.Sprintf("MsgPresentPoi{%s, %s}", msg.Indexer, msg.AllocationID)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgPresentPoi) ProtoMessage() {}

// MsgSetFeeSource adds or removes an address from the fee source allow-list.
// Authority only.
type MsgSetFeeSource struct {
	Authority string `json:"authority"`
	FeeSource string `json:"fee_source"`
	Enabled   bool   `json:"enabled"`
}

// NewMsgSetFeeSource creates a new MsgSetFeeSource instance
func NewMsgSetFeeSource(authority, feeSource string, enabled bool) *MsgSetFeeSource {
	return &MsgSetFeeSource{Authority: authority, FeeSource: feeSource, Enabled: enabled}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetFeeSource) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetFeeSource) Type() string { return TypeMsgSetFeeSource }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetFeeSource) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetFeeSource) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetFeeSource) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.FeeSource); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid fee source address: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetFeeSource) Reset() { *msg = MsgSetFeeSource{} }

// String implements the proto.Message interface
func (msg *MsgSetFeeSource) String() string {
	return fmt.Sprintf("MsgSetFeeSource{%s, %t}", msg.FeeSource, msg.Enabled)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetFeeSource) ProtoMessage() {}

// MsgUpdateParams replaces the module parameters. Authority only.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// NewMsgUpdateParams creates a new MsgUpdateParams instance
func NewMsgUpdateParams(authority string, params Params) *MsgUpdateParams {
	return &MsgUpdateParams{Authority: authority, Params: params}
}

// Route implements the sdk.Msg interface
func (msg *MsgUpdateParams) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgUpdateParams) Type() string { return TypeMsgUpdateParams }

// GetSigners implements the sdk.Msg interface
func (msg *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgUpdateParams) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return msg.Params.Validate()
}

// Reset implements the proto.Message interface
func (msg *MsgUpdateParams) Reset() { *msg = MsgUpdateParams{} }

// String implements the proto.Message interface
func (msg *MsgUpdateParams) String() string {
	return fmt.Sprintf("MsgUpdateParams{%s}", msg.Authority)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgUpdateParams) ProtoMessage() {}
