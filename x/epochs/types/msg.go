package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgUpdateEpochLength = "update_epoch_length"
)

var _ sdk.Msg = &MsgUpdateEpochLength{}

// MsgUpdateEpochLength changes the epoch length. Authority only.
type MsgUpdateEpochLength struct {
	Authority   string `json:"authority"`
	EpochLength uint64 `json:"epoch_length"`
}

// NewMsgUpdateEpochLength creates a new MsgUpdateEpochLength instance
func NewMsgUpdateEpochLength(authority string, epochLength uint64) *MsgUpdateEpochLength {
	return &MsgUpdateEpochLength{
		Authority:   authority,
		EpochLength: epochLength,
	}
}

// Route implements the sdk.Msg interface
func (msg *MsgUpdateEpochLength) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgUpdateEpochLength) Type() string { return TypeMsgUpdateEpochLength }

// GetSigners implements the sdk.Msg interface
func (msg *MsgUpdateEpochLength) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgUpdateEpochLength) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgUpdateEpochLength) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrUnauthorized, "invalid authority address: %s", err)
	}
	if msg.EpochLength == 0 {
		return ErrInvalidEpochLength.Wrap("epoch length must be positive")
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgUpdateEpochLength) Reset() { *msg = MsgUpdateEpochLength{} }

// String implements the proto.Message interface
func (msg *MsgUpdateEpochLength) String() string {
	return fmt.Sprintf("MsgUpdateEpochLength{%s, %d}", msg.Authority, msg.EpochLength)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgUpdateEpochLength) ProtoMessage() {}
