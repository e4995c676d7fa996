package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgSetDenied                = "set_denied"
	TypeMsgSetIndexerEligibility    = "set_indexer_eligibility"
	TypeMsgSetReclaimAddress        = "set_reclaim_address"
	TypeMsgSetDefaultReclaimAddress = "set_default_reclaim_address"
	TypeMsgUpdateParams             = "update_params"
)

var (
	_ sdk.Msg = &MsgSetDenied{}
	_ sdk.Msg = &MsgSetIndexerEligibility{}
	_ sdk.Msg = &MsgSetReclaimAddress{}
	_ sdk.Msg = &MsgSetDefaultReclaimAddress{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgSetDenied adds or removes a subgraph deployment from the rewards
// denylist. Authority only.
type MsgSetDenied struct {
	Authority  string `json:"authority"`
	SubgraphID string `json:"subgraph_id"`
	Denied     bool   `json:"denied"`
}

// NewMsgSetDenied creates a new MsgSetDenied instance
func NewMsgSetDenied(authority, subgraphID string, denied bool) *MsgSetDenied {
	return &MsgSetDenied{Authority: authority, SubgraphID: subgraphID, Denied: denied}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetDenied) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetDenied) Type() string { return TypeMsgSetDenied }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetDenied) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetDenied) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetDenied) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.SubgraphID == "" {
		return ErrInvalidSubgraphID.Wrap("subgraph id cannot be empty")
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetDenied) Reset() { *msg = MsgSetDenied{} }

// String implements the proto.Message interface
func (msg *MsgSetDenied) String() string {
	return fmt.Sprintf("MsgSetDenied{%s, %t}", msg.SubgraphID, msg.Denied)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetDenied) ProtoMessage() {}

// MsgSetIndexerEligibility flips an indexer's reward eligibility. Signed by
// the authority or the configured eligibility oracle.
type MsgSetIndexerEligibility struct {
	Sender   string `json:"sender"`
	Indexer  string `json:"indexer"`
	Eligible bool   `json:"eligible"`
}

// NewMsgSetIndexerEligibility creates a new MsgSetIndexerEligibility instance
func NewMsgSetIndexerEligibility(sender, indexer string, eligible bool) *MsgSetIndexerEligibility {
	return &MsgSetIndexerEligibility{Sender: sender, Indexer: indexer, Eligible: eligible}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetIndexerEligibility) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetIndexerEligibility) Type() string { return TypeMsgSetIndexerEligibility }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetIndexerEligibility) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetIndexerEligibility) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetIndexerEligibility) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetIndexerEligibility) Reset() { *msg = MsgSetIndexerEligibility{} }

// String implements the proto.Message interface
func (msg *MsgSetIndexerEligibility) String() string {
	return fmt.Sprintf("MsgSetIndexerEligibility{%s, %t}", msg.Indexer, msg.Eligible)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetIndexerEligibility) ProtoMessage() {}

// MsgSetReclaimAddress routes one settlement outcome's reclaimed rewards to
// an address. An empty address reverts the outcome to the default sink.
// Authority only.
type MsgSetReclaimAddress struct {
	Authority string `json:"authority"`
	Outcome   string `json:"outcome"`
	Address   string `json:"address,omitempty"`
}

// NewMsgSetReclaimAddress creates a new MsgSetReclaimAddress instance
func NewMsgSetReclaimAddress(authority, outcome, address string) *MsgSetReclaimAddress {
	return &MsgSetReclaimAddress{Authority: authority, Outcome: outcome, Address: address}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetReclaimAddress) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetReclaimAddress) Type() string { return TypeMsgSetReclaimAddress }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetReclaimAddress) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetReclaimAddress) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetReclaimAddress) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if !IsReclaimOutcome(msg.Outcome) {
		return ErrUnknownOutcome.Wrap(msg.Outcome)
	}
	if msg.Address != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid reclaim address: %s", err)
		}
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetReclaimAddress) Reset() { *msg = MsgSetReclaimAddress{} }

// String implements the proto.Message interface
func (msg *MsgSetReclaimAddress) String() string {
	return fmt.Sprintf("MsgSetReclaimAddress{%s, %s}", msg.Outcome, msg.Address)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetReclaimAddress) ProtoMessage() {}

// MsgSetDefaultReclaimAddress sets the sink for reclaimed rewards without a
// per-outcome override. An empty address drops reclaimed value: it is simply
// never minted. Authority only.
type MsgSetDefaultReclaimAddress struct {
	Authority string `json:"authority"`
	Address   string `json:"address,omitempty"`
}

// NewMsgSetDefaultReclaimAddress creates a new MsgSetDefaultReclaimAddress instance
func NewMsgSetDefaultReclaimAddress(authority, address string) *MsgSetDefaultReclaimAddress {
	return &MsgSetDefaultReclaimAddress{Authority: authority, Address: address}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetDefaultReclaimAddress) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetDefaultReclaimAddress) Type() string { return TypeMsgSetDefaultReclaimAddress }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetDefaultReclaimAddress) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetDefaultReclaimAddress) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetDefaultReclaimAddress) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.Address != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Address); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid reclaim address: %s", err)
		}
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetDefaultReclaimAddress) Reset() { *msg = MsgSetDefaultReclaimAddress{} }

// String implements the proto.Message interface
func (msg *MsgSetDefaultReclaimAddress) String() string {
	return fmt.Sprintf("MsgSetDefaultReclaimAddress{%s}", msg.Address)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetDefaultReclaimAddress) ProtoMessage() {}

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
	if err := msg.Params.Validate(); err != nil {
		return ErrInvalidParams.Wrap(err.Error())
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgUpdateParams) Reset() { *msg = MsgUpdateParams{} }

// String implements the proto.Message interface
func (msg *MsgUpdateParams) String() string {
	return fmt.Sprintf("MsgUpdateParams{%s}", msg.Authority)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgUpdateParams) ProtoMessage() {}

// IsReclaimOutcome reports whether an outcome names a reclaim condition.
func IsReclaimOutcome(outcome string) bool {
	switch outcome {
	case OutcomeReclaimNoSignal,
		OutcomeReclaimBelowMinimumSignal,
		OutcomeReclaimSubgraphDenied,
		OutcomeReclaimNoAllocatedTokens,
		OutcomeReclaimZeroPoi,
		OutcomeReclaimStalePoi,
		OutcomeReclaimCloseAllocation,
		OutcomeReclaimIndexerIneligible:
		return true
	}
	return false
}
