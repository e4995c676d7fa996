package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
)

// RegisterLegacyAminoCodec registers the staking module's concrete types on
// the provided LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgStake{}, "grid/staking/MsgStake", nil)
	cdc.RegisterConcrete(&MsgUnstake{}, "grid/staking/MsgUnstake", nil)
	cdc.RegisterConcrete(&MsgWithdraw{}, "grid/staking/MsgWithdraw", nil)
	cdc.RegisterConcrete(&MsgSlash{}, "grid/staking/MsgSlash", nil)
	cdc.RegisterConcrete(&MsgSetSlasher{}, "grid/staking/MsgSetSlasher", nil)
	cdc.RegisterConcrete(&MsgSetRewardsDestination{}, "grid/staking/MsgSetRewardsDestination", nil)
	cdc.RegisterConcrete(&MsgDelegate{}, "grid/staking/MsgDelegate", nil)
	cdc.RegisterConcrete(&MsgUndelegate{}, "grid/staking/MsgUndelegate", nil)
	cdc.RegisterConcrete(&MsgWithdrawDelegated{}, "grid/staking/MsgWithdrawDelegated", nil)
	cdc.RegisterConcrete(&MsgSetDelegationParameters{}, "grid/staking/MsgSetDelegationParameters", nil)
	cdc.RegisterConcrete(&MsgAllocate{}, "grid/staking/MsgAllocate", nil)
	cdc.RegisterConcrete(&MsgCloseAllocation{}, "grid/staking/MsgCloseAllocation", nil)
	cdc.RegisterConcrete(&MsgCollect{}, "grid/staking/MsgCollect", nil)
	cdc.RegisterConcrete(&MsgClaim{}, "grid/staking/MsgClaim", nil)
	cdc.RegisterConcrete(&MsgPresentPoi{}, "grid/staking/MsgPresentPoi", nil)
	cdc.RegisterConcrete(&MsgSetFeeSource{}, "grid/staking/MsgSetFeeSource", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "grid/staking/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the staking module's interface types with the
// interface registry.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgStake{},
		&MsgUnstake{},
		&MsgWithdraw{},
		&MsgSlash{},
		&MsgSetSlasher{},
		&MsgSetRewardsDestination{},
		&MsgDelegate{},
		&MsgUndelegate{},
		&MsgWithdrawDelegated{},
		&MsgSetDelegationParameters{},
		&MsgAllocate{},
		&MsgCloseAllocation{},
		&MsgCollect{},
		&MsgClaim{},
		&MsgPresentPoi{},
		&MsgSetFeeSource{},
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
	proto.RegisterType(&MsgStake{}, "grid.gridstaking.v1.MsgStake")
	proto.RegisterType(&MsgUnstake{}, "grid.gridstaking.v1.MsgUnstake")
	proto.RegisterType(&MsgWithdraw{}, "grid.gridstaking.v1.MsgWithdraw")
	proto.RegisterType(&MsgSlash{}, "grid.gridstaking.v1.MsgSlash")
	proto.RegisterType(&MsgSetSlasher{}, "grid.gridstaking.v1.MsgSetSlasher")
	proto.RegisterType(&MsgSetRewardsDestination{}, "grid.gridstaking.v1.MsgSetRewardsDestination")
	proto.RegisterType(&MsgDelegate{}, "grid.gridstaking.v1.MsgDelegate")
	proto.RegisterType(&MsgUndelegate{}, "grid.gridstaking.v1.MsgUndelegate")
	proto.RegisterType(&MsgWithdrawDelegated{}, "grid.gridstaking.v1.MsgWithdrawDelegated")
	proto.RegisterType(&MsgSetDelegationParameters{}, "grid.gridstaking.v1.MsgSetDelegationParameters")
	proto.RegisterType(&MsgAllocate{}, "grid.gridstaking.v1.MsgAllocate")
	proto.RegisterType(&MsgCloseAllocation{}, "grid.gridstaking.v1.MsgCloseAllocation")
	proto.RegisterType(&MsgCollect{}, "grid.gridstaking.v1.MsgCollect")
	proto.RegisterType(&MsgClaim{}, "grid.gridstaking.v1.MsgClaim")
	proto.RegisterType(&MsgPresentPoi{}, "grid.gridstaking.v1.MsgPresentPoi")
	proto.RegisterType(&MsgSetFeeSource{}, "grid.gridstaking.v1.MsgSetFeeSource")
	proto.RegisterType(&MsgUpdateParams{}, "grid.gridstaking.v1.MsgUpdateParams")
}
