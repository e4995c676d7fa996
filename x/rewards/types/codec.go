package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
)

// RegisterLegacyAminoCodec registers the rewards module's concrete types on
// the provided LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgSetDenied{}, "grid/rewards/MsgSetDenied", nil)
	cdc.RegisterConcrete(&MsgSetIndexerEligibility{}, "grid/rewards/MsgSetIndexerEligibility", nil)
	cdc.RegisterConcrete(&MsgSetReclaimAddress{}, "grid/rewards/MsgSetReclaimAddress", nil)
	cdc.RegisterConcrete(&MsgSetDefaultReclaimAddress{}, "grid/rewards/MsgSetDefaultReclaimAddress", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "grid/rewards/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the rewards module's interface types with the
// interface registry.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgSetDenied{},
		&MsgSetIndexerEligibility{},
		&MsgSetReclaimAddress{},
		&MsgSetDefaultReclaimAddress{},
		&MsgUpdateParams{},
	)
}

// ModuleCdc is the module codec used for amino JSON sign bytes and state
// marshalling.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)

	// The message types are hand-written rather than protoc-generated, so the
	// gogoproto name registry needs explicit registrations for the interface
	// registry to derive unique type URLs.
	proto.RegisterType(&MsgSetDenied{}, "grid.rewards.v1.MsgSetDenied")
	proto.RegisterType(&MsgSetIndexerEligibility{}, "grid.rewards.v1.MsgSetIndexerEligibility")
	proto.RegisterType(&MsgSetReclaimAddress{}, "grid.rewards.v1.MsgSetReclaimAddress")
	proto.RegisterType(&MsgSetDefaultReclaimAddress{}, "grid.rewards.v1.MsgSetDefaultReclaimAddress")
	proto.RegisterType(&MsgUpdateParams{}, "grid.rewards.v1.MsgUpdateParams")
}
