package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
)

// RegisterLegacyAminoCodec registers the epochs module's concrete types on the
// provided LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgUpdateEpochLength{}, "grid/epochs/MsgUpdateEpochLength", nil)
}

// RegisterInterfaces registers the epochs module's interface types with the
// interface registry.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgUpdateEpochLength{},
	)
}

// ModuleCdc is the module codec used for amino JSON sign bytes and state
// marshalling.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)

	// The message type is hand-written rather than protoc-generated, so the
	// gogoproto name registry needs an explicit registration for the interface
	// registry to derive a unique type URL.
	proto.RegisterType(&MsgUpdateEpochLength{}, "grid.epochs.v1.MsgUpdateEpochLength")
}
