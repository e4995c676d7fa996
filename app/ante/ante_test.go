package ante_test

import (
	"context"
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/codec/address"
	moduletestutil "github.com/cosmos/cosmos-sdk/types/module/testutil"
	"github.com/stretchr/testify/require"

	sdkaddress "cosmossdk.io/core/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	gridante "github.com/grid-protocol/grid/app/ante"
)

func TestNewAnteHandler_MissingAccountKeeper(t *testing.T) {
	handler, err := gridante.NewAnteHandler(gridante.HandlerOptions{})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "account keeper is required")
}

func TestNewAnteHandler_MissingBankKeeper(t *testing.T) {
	handler, err := gridante.NewAnteHandler(gridante.HandlerOptions{
		AccountKeeper: mockAccountKeeper{},
	})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "bank keeper is required")
}

func TestNewAnteHandler_MissingSignModeHandler(t *testing.T) {
	handler, err := gridante.NewAnteHandler(gridante.HandlerOptions{
		AccountKeeper: mockAccountKeeper{},
		BankKeeper:    mockBankKeeper{},
	})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "sign mode handler is required")
}

func TestNewAnteHandler_Complete(t *testing.T) {
	encCfg := moduletestutil.MakeTestEncodingConfig()

	// The staking keeper decorator is optional; the chain builds without it.
	handler, err := gridante.NewAnteHandler(gridante.HandlerOptions{
		AccountKeeper:   mockAccountKeeper{},
		BankKeeper:      mockBankKeeper{},
		SignModeHandler: encCfg.TxConfig.SignModeHandler(),
	})
	require.NoError(t, err)
	require.NotNil(t, handler)
}

// Mock types for unit tests

type mockAccountKeeper struct{}

func (mockAccountKeeper) GetParams(ctx context.Context) authtypes.Params {
	return authtypes.DefaultParams()
}
func (mockAccountKeeper) GetAccount(ctx context.Context, addr sdk.AccAddress) sdk.AccountI {
	return nil
}
func (mockAccountKeeper) SetAccount(ctx context.Context, acc sdk.AccountI) {}
func (mockAccountKeeper) GetModuleAddress(moduleName string) sdk.AccAddress {
	return authtypes.NewModuleAddress(moduleName)
}
func (mockAccountKeeper) AddressCodec() sdkaddress.Codec {
	return address.NewBech32Codec("grid")
}
func (mockAccountKeeper) UnorderedTransactionsEnabled() bool                 { return false }
func (mockAccountKeeper) RemoveExpiredUnorderedNonces(ctx sdk.Context) error { return nil }
func (mockAccountKeeper) TryAddUnorderedNonce(ctx sdk.Context, sender []byte, timestamp time.Time) error {
	return nil
}

type mockBankKeeper struct{}

func (mockBankKeeper) IsSendEnabledCoins(ctx context.Context, coins ...sdk.Coin) error { return nil }
func (mockBankKeeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	return nil
}
func (mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return nil
}
