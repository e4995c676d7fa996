package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgDelegate                = "delegate"
	TypeMsgUndelegate              = "undelegate"
	TypeMsgWithdrawDelegated       = "withdraw_delegated"
	TypeMsgSetDelegationParameters = "set_delegation_parameters"
)

var (
	_ sdk.Msg = &MsgDelegate{}
	_ sdk.Msg = &MsgUndelegate{}
	_ sdk.Msg = &MsgWithdrawDelegated{}
	_ sdk.Msg = &MsgSetDelegationParameters{}
)

// MsgDelegate deposits tokens into an indexer's delegation pool
type MsgDelegate struct {
	Delegator string   `json:"delegator"`
	Indexer   string   `json:"indexer"`
	Tokens    math.Int `json:"tokens"`
}

// NewMsgDelegate creates a new MsgDelegate instance
func NewMsgDelegate(delegator, indexer string, tokens math.Int) *MsgDelegate {
	return &MsgDelegate{Delegator: delegator, Indexer: indexer, Tokens: tokens}
}

// Route implements the sdk.Msg interface
func (msg *MsgDelegate) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgDelegate) Type() string { return TypeMsgDelegate }

// GetSigners implements the sdk.Msg interface
func (msg *MsgDelegate) GetSigners() []sdk.AccAddress {
	delegator, _ := sdk.AccAddressFromBech32(msg.Delegator)
	return []sdk.AccAddress{delegator}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgDelegate) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgDelegate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Delegator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid delegator address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	return validatePositiveAmount(msg.Tokens)
}

// Reset implements the proto.Message interface
func (msg *MsgDelegate) Reset() { *msg = MsgDelegate{} }

// String implements the proto.Message interface
func (msg *MsgDelegate) String() string {
	return fmt.Sprintf("MsgDelegate{%s -> %s, %s}", msg.Delegator, msg.Indexer, msg.Tokens)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgDelegate) ProtoMessage() {}

// MsgUndelegate burns delegation shares and locks the released tokens until
// the unbonding epoch passes
type MsgUndelegate struct {
	Delegator string   `json:"delegator"`
	Indexer   string   `json:"indexer"`
	Shares    math.Int `json:"shares"`
}

// NewMsgUndelegate creates a new MsgUndelegate instance
func NewMsgUndelegate(delegator, indexer string, shares math.Int) *MsgUndelegate {
	return &MsgUndelegate{Delegator: delegator, Indexer: indexer, Shares: shares}
}

// Route implements the sdk.Msg interface
func (msg *MsgUndelegate) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgUndelegate) Type() string { return TypeMsgUndelegate }

// GetSigners implements the sdk.Msg interface
func (msg *MsgUndelegate) GetSigners() []sdk.AccAddress {
	delegator, _ := sdk.AccAddressFromBech32(msg.Delegator)
	return []sdk.AccAddress{delegator}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgUndelegate) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgUndelegate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Delegator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid delegator address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return ErrInvalidAmount.Wrap("share amount must be positive")
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgUndelegate) Reset() { *msg = MsgUndelegate{} }

// String implements the proto.Message interface
func (msg *MsgUndelegate) String() string {
	return fmt.Sprintf("MsgUndelegate{%s -> %s, %s shares}", msg.Delegator, msg.Indexer, msg.Shares)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgUndelegate) ProtoMessage() {}

// MsgWithdrawDelegated releases unbonded delegation tokens to the delegator,
// or redelegates them to another indexer when NewIndexer is set
type MsgWithdrawDelegated struct {
	Delegator  string `json:"delegator"`
	Indexer    string `json:"indexer"`
	NewIndexer string `json:"new_indexer,omitempty"`
}

// NewMsgWithdrawDelegated creates a new MsgWithdrawDelegated instance
func NewMsgWithdrawDelegated(delegator, indexer, newIndexer string) *MsgWithdrawDelegated {
	return &MsgWithdrawDelegated{Delegator: delegator, Indexer: indexer, NewIndexer: newIndexer}
}

// Route implements the sdk.Msg interface
func (msg *MsgWithdrawDelegated) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgWithdrawDelegated) Type() string { return TypeMsgWithdrawDelegated }

// GetSigners implements the sdk.Msg interface
func (msg *MsgWithdrawDelegated) GetSigners() []sdk.AccAddress {
	delegator, _ := sdk.AccAddressFromBech32(msg.Delegator)
	return []sdk.AccAddress{delegator}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgWithdrawDelegated) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgWithdrawDelegated) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Delegator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid delegator address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if msg.NewIndexer != "" {
		if _, err := sdk.AccAddressFromBech32(msg.NewIndexer); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid new indexer address: %s", err)
		}
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgWithdrawDelegated) Reset() { *msg = MsgWithdrawDelegated{} }

// String implements the proto.Message interface
func (msg *MsgWithdrawDelegated) String() string {
	return fmt.Sprintf("MsgWithdrawDelegated{%s, %s}", msg.Delegator, msg.Indexer)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgWithdrawDelegated) ProtoMessage() {}

// MsgSetDelegationParameters updates the cuts an indexer keeps from rewards
// and fees before the delegation pool share is credited
type MsgSetDelegationParameters struct {
	Indexer           string         `json:"indexer"`
	IndexingRewardCut math.LegacyDec `json:"indexing_reward_cut"`
	QueryFeeCut       math.LegacyDec `json:"query_fee_cut"`
}

// NewMsgSetDelegationParameters creates a new MsgSetDelegationParameters instance
func NewMsgSetDelegationParameters(indexer string, rewardCut, feeCut math.LegacyDec) *MsgSetDelegationParameters {
	return &MsgSetDelegationParameters{
		Indexer:           indexer,
		IndexingRewardCut: rewardCut,
		QueryFeeCut:       feeCut,
	}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetDelegationParameters) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetDelegationParameters) Type() string { return TypeMsgSetDelegationParameters }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetDelegationParameters) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetDelegationParameters) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetDelegationParameters) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if err := validateCut(msg.IndexingRewardCut); err != nil {
		return ErrInvalidCut.Wrapf("indexing reward cut: %s", err)
	}
	if err := validateCut(msg.QueryFeeCut); err != nil {
		return ErrInvalidCut.Wrapf("query fee cut: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetDelegationParameters) Reset() { *msg = MsgSetDelegationParameters{} }

// String implements the proto.Message interface
func (msg *MsgSetDelegationParameters) String() string {
	return fmt.Sprintf("MsgSetDelegationParameters{%s, %s, %s}",
		msg.Indexer, msg.IndexingRewardCut, msg.QueryFeeCut)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetDelegationParameters) ProtoMessage() {}
