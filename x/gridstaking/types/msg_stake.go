package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgStake                 = "stake"
	TypeMsgUnstake               = "unstake"
	TypeMsgWithdraw              = "withdraw"
	TypeMsgSlash                 = "slash"
	TypeMsgSetSlasher            = "set_slasher"
	TypeMsgSetRewardsDestination = "set_rewards_destination"
)

var (
	_ sdk.Msg = &MsgStake{}
	_ sdk.Msg = &MsgUnstake{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgSlash{}
	_ sdk.Msg = &MsgSetSlasher{}
	_ sdk.Msg = &MsgSetRewardsDestination{}
)

// MsgStake deposits stake for an indexer
type MsgStake struct {
	Indexer string   `json:"indexer"`
	Tokens  math.Int `json:"tokens"`
}

// NewMsgStake creates a new MsgStake instance
func NewMsgStake(indexer string, tokens math.Int) *MsgStake {
	return &MsgStake{Indexer: indexer, Tokens: tokens}
}

// Route implements the sdk.Msg interface
func (msg *MsgStake) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgStake) Type() string { return TypeMsgStake }

// GetSigners implements the sdk.Msg interface
func (msg *MsgStake) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgStake) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgStake) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	return validatePositiveAmount(msg.Tokens)
}

// Reset implements the proto.Message interface
func (msg *MsgStake) Reset() { *msg = MsgStake{} }

// String implements the proto.Message interface
func (msg *MsgStake) String() string {
	return fmt.Sprintf("MsgStake{%s, %s}", msg.Indexer, msg.Tokens)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgStake) ProtoMessage() {}

// MsgUnstake locks stake for withdrawal after the thawing period
type MsgUnstake struct {
	Indexer string   `json:"indexer"`
	Tokens  math.Int `json:"tokens"`
}

// NewMsgUnstake creates a new MsgUnstake instance
func NewMsgUnstake(indexer string, tokens math.Int) *MsgUnstake {
	return &MsgUnstake{Indexer: indexer, Tokens: tokens}
}

// Route implements the sdk.Msg interface
func (msg *MsgUnstake) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgUnstake) Type() string { return TypeMsgUnstake }

// GetSigners implements the sdk.Msg interface
func (msg *MsgUnstake) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgUnstake) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgUnstake) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	return validatePositiveAmount(msg.Tokens)
}

// Reset implements the proto.Message interface
func (msg *MsgUnstake) Reset() { *msg = MsgUnstake{} }

// String implements the proto.Message interface
func (msg *MsgUnstake) String() string {
	return fmt.Sprintf("MsgUnstake{%s, %s}", msg.Indexer, msg.Tokens)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgUnstake) ProtoMessage() {}

// MsgWithdraw releases thawed stake back to the indexer
type MsgWithdraw struct {
	Indexer string `json:"indexer"`
}

// NewMsgWithdraw creates a new MsgWithdraw instance
func NewMsgWithdraw(indexer string) *MsgWithdraw {
	return &MsgWithdraw{Indexer: indexer}
}

// Route implements the sdk.Msg interface
func (msg *MsgWithdraw) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgWithdraw) Type() string { return TypeMsgWithdraw }

// GetSigners implements the sdk.Msg interface
func (msg *MsgWithdraw) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgWithdraw) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgWithdraw) Reset() { *msg = MsgWithdraw{} }

// String implements the proto.Message interface
func (msg *MsgWithdraw) String() string {
	return fmt.Sprintf("MsgWithdraw{%s}", msg.Indexer)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgWithdraw) ProtoMessage() {}

// MsgSlash debits an indexer's stake. Slasher must be on the allow-list.
type MsgSlash struct {
	Slasher     string   `json:"slasher"`
	Indexer     string   `json:"indexer"`
	Tokens      math.Int `json:"tokens"`
	Reward      math.Int `json:"reward"`
	Beneficiary string   `json:"beneficiary"`
}

// NewMsgSlash creates a new MsgSlash instance
func NewMsgSlash(slasher, indexer string, tokens, reward math.Int, beneficiary string) *MsgSlash {
	return &MsgSlash{
		Slasher:     slasher,
		Indexer:     indexer,
		Tokens:      tokens,
		Reward:      reward,
		Beneficiary: beneficiary,
	}
}

// Route implements the sdk.Msg interface
func (msg *MsgSlash) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSlash) Type() string { return TypeMsgSlash }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSlash) GetSigners() []sdk.AccAddress {
	slasher, _ := sdk.AccAddressFromBech32(msg.Slasher)
	return []sdk.AccAddress{slasher}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSlash) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSlash) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Slasher); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid slasher address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if err := validatePositiveAmount(msg.Tokens); err != nil {
		return err
	}
	if msg.Reward.IsNil() || msg.Reward.IsNegative() {
		return ErrInvalidAmount.Wrap("reward cannot be nil or negative")
	}
	if msg.Reward.GT(msg.Tokens) {
		return ErrRewardOverSlash.Wrapf("reward %s, slash %s", msg.Reward, msg.Tokens)
	}
	if msg.Reward.IsPositive() {
		if _, err := sdk.AccAddressFromBech32(msg.Beneficiary); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid beneficiary address: %s", err)
		}
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSlash) Reset() { *msg = MsgSlash{} }

// String implements the proto.Message interface
func (msg *MsgSlash) String() string {
	return fmt.Sprintf("MsgSlash{%s, %s, %s}", msg.Indexer, msg.Tokens, msg.Reward)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSlash) ProtoMessage() {}

// MsgSetSlasher adds or removes an address from the slasher allow-list.
// Authority only.
type MsgSetSlasher struct {
	Authority string `json:"authority"`
	Slasher   string `json:"slasher"`
	Enabled   bool   `json:"enabled"`
}

// NewMsgSetSlasher creates a new MsgSetSlasher instance
func NewMsgSetSlasher(authority, slasher string, enabled bool) *MsgSetSlasher {
	return &MsgSetSlasher{Authority: authority, Slasher: slasher, Enabled: enabled}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetSlasher) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetSlasher) Type() string { return TypeMsgSetSlasher }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetSlasher) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetSlasher) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetSlasher) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Slasher); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid slasher address: %s", err)
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetSlasher) Reset() { *msg = MsgSetSlasher{} }

// String implements the proto.Message interface
func (msg *MsgSetSlasher) String() string {
	return fmt.Sprintf("MsgSetSlasher{%s, %t}", msg.Slasher, msg.Enabled)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetSlasher) ProtoMessage() {}

// MsgSetRewardsDestination sets where an indexer's claim and reward proceeds
// are sent. An empty destination restakes proceeds.
type MsgSetRewardsDestination struct {
	Indexer     string `json:"indexer"`
	Destination string `json:"destination,omitempty"`
}

// NewMsgSetRewardsDestination creates a new MsgSetRewardsDestination instance
func NewMsgSetRewardsDestination(indexer, destination string) *MsgSetRewardsDestination {
	return &MsgSetRewardsDestination{Indexer: indexer, Destination: destination}
}

// Route implements the sdk.Msg interface
func (msg *MsgSetRewardsDestination) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg *MsgSetRewardsDestination) Type() string { return TypeMsgSetRewardsDestination }

// GetSigners implements the sdk.Msg interface
func (msg *MsgSetRewardsDestination) GetSigners() []sdk.AccAddress {
	indexer, _ := sdk.AccAddressFromBech32(msg.Indexer)
	return []sdk.AccAddress{indexer}
}

// GetSignBytes implements the sdk.Msg interface
func (msg *MsgSetRewardsDestination) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg *MsgSetRewardsDestination) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Indexer); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid indexer address: %s", err)
	}
	if msg.Destination != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Destination); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid destination address: %s", err)
		}
	}
	return nil
}

// Reset implements the proto.Message interface
func (msg *MsgSetRewardsDestination) Reset() { *msg = MsgSetRewardsDestination{} }

// String implements the proto.Message interface
func (msg *MsgSetRewardsDestination) String() string {
	return fmt.Sprintf("MsgSetRewardsDestination{%s, %s}", msg.Indexer, msg.Destination)
}

// ProtoMessage implements the proto.Message interface
func (msg *MsgSetRewardsDestination) ProtoMessage() {}

func validatePositiveAmount(tokens math.Int) error {
	if tokens.IsNil() || !tokens.IsPositive() {
		return ErrInvalidAmount.Wrap("token amount must be positive")
	}
	return nil
}
