package app

import (
	"encoding/json"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	crisistypes "github.com/cosmos/cosmos-sdk/x/crisis/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	slashingtypes "github.com/cosmos/cosmos-sdk/x/slashing/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	epochstypes "github.com/grid-protocol/grid/x/epochs/types"
	gridstakingtypes "github.com/grid-protocol/grid/x/gridstaking/types"
	rewardstypes "github.com/grid-protocol/grid/x/rewards/types"
)

// GenesisState represents the genesis state of the GRID blockchain
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState generates the default genesis state for a GRID network
func NewDefaultGenesisState(chainID string) GenesisState {
	genesis := make(GenesisState)

	// Auth module - account authentication
	authGenesis := authtypes.DefaultGenesisState()
	genesis[authtypes.ModuleName] = mustMarshalJSON(authGenesis)

	// Bank module - token balances and transfers
	bankGenesis := banktypes.DefaultGenesisState()
	bankGenesis.Params = banktypes.Params{
		SendEnabled:        []*banktypes.SendEnabled{},
		DefaultSendEnabled: true,
	}
	bankGenesis.Supply = sdk.NewCoins(
		sdk.NewInt64Coin(BondDenom, 10_000_000_000_000_000), // 10B GRID initial supply
	)
	genesis[banktypes.ModuleName] = mustMarshalJSON(bankGenesis)

	// Staking module - validator and delegation management
	stakingGenesis := stakingtypes.DefaultGenesisState()
	stakingGenesis.Params = stakingtypes.Params{
		UnbondingTime:     time.Duration(1814400) * time.Second, // 21 days
		MaxValidators:     100,
		MaxEntries:        7,
		HistoricalEntries: 10000,
		BondDenom:         BondDenom,
		MinCommissionRate: math.LegacyMustNewDecFromStr("0.05"), // 5% minimum commission
	}
	genesis[stakingtypes.ModuleName] = mustMarshalJSON(stakingGenesis)

	// Slashing module - validator punishment
	slashingGenesis := slashingtypes.DefaultGenesisState()
	slashingGenesis.Params = slashingtypes.Params{
		SignedBlocksWindow:      10000,
		MinSignedPerWindow:      math.LegacyMustNewDecFromStr("0.50"),
		DowntimeJailDuration:    time.Duration(86400) * time.Second,
		SlashFractionDoubleSign: math.LegacyMustNewDecFromStr("0.05"),
		SlashFractionDowntime:   math.LegacyMustNewDecFromStr("0.001"),
	}
	genesis[slashingtypes.ModuleName] = mustMarshalJSON(slashingGenesis)

	// Governance module - on-chain governance
	govGenesis := govtypes.DefaultGenesisState()
	govGenesis.Params = &govtypes.Params{
		MinDeposit:                 sdk.NewCoins(sdk.NewInt64Coin(BondDenom, 10_000_000_000)),
		MaxDepositPeriod:           durationPtr(time.Duration(604800) * time.Second),  // 7 days
		VotingPeriod:               durationPtr(time.Duration(1209600) * time.Second), // 14 days
		Quorum:                     "0.400000000000000000",
		Threshold:                  "0.667000000000000000",
		VetoThreshold:              "0.333000000000000000",
		MinInitialDepositRatio:     "0.100000000000000000",
		BurnVoteQuorum:             false,
		BurnProposalDepositPrevote: false,
		BurnVoteVeto:               false,
	}
	genesis["gov"] = mustMarshalJSON(govGenesis)

	// Distribution module - fee distribution
	distrGenesis := distrtypes.DefaultGenesisState()
	distrGenesis.Params = distrtypes.Params{
		CommunityTax:        math.LegacyMustNewDecFromStr("0.10"),
		BaseProposerReward:  math.LegacyZeroDec(), // Deprecated
		BonusProposerReward: math.LegacyZeroDec(), // Deprecated
		WithdrawAddrEnabled: true,
	}
	genesis[distrtypes.ModuleName] = mustMarshalJSON(distrGenesis)

	// Mint module - validator-set inflation is disabled; issuance for indexing
	// rewards is minted by the rewards module instead.
	mintGenesis := minttypes.DefaultGenesisState()
	mintGenesis.Params = minttypes.Params{
		MintDenom:           BondDenom,
		InflationRateChange: math.LegacyMustNewDecFromStr("0.00"),
		InflationMax:        math.LegacyMustNewDecFromStr("0.00"),
		InflationMin:        math.LegacyMustNewDecFromStr("0.00"),
		GoalBonded:          math.LegacyMustNewDecFromStr("0.67"),
		BlocksPerYear:       uint64(5256000), // ~6 second blocks
	}
	mintGenesis.Minter = minttypes.Minter{
		Inflation:        math.LegacyZeroDec(),
		AnnualProvisions: math.LegacyZeroDec(),
	}
	genesis[minttypes.ModuleName] = mustMarshalJSON(mintGenesis)

	// Crisis module - invariant checking
	crisisGenesis := crisistypes.DefaultGenesisState()
	crisisGenesis.ConstantFee = sdk.NewInt64Coin(BondDenom, 1_000_000_000)
	genesis[crisistypes.ModuleName] = mustMarshalJSON(crisisGenesis)

	// GRID protocol modules
	genesis[epochstypes.ModuleName] = mustMarshalJSON(epochstypes.DefaultGenesis())
	genesis[gridstakingtypes.ModuleName] = mustMarshalJSON(gridstakingtypes.DefaultGenesis())
	genesis[rewardstypes.ModuleName] = mustMarshalJSON(rewardstypes.DefaultGenesis())

	return genesis
}

// NewGenesisStateFromConfig creates genesis state with custom parameters
func NewGenesisStateFromConfig(config GenesisConfig) GenesisState {
	genesis := NewDefaultGenesisState(config.ChainID)

	// Override staking params
	var stakingGenesis stakingtypes.GenesisState
	mustUnmarshalJSON(genesis[stakingtypes.ModuleName], &stakingGenesis)
	stakingGenesis.Params.MaxValidators = config.MaxValidators
	stakingGenesis.Params.UnbondingTime = time.Duration(config.UnbondingPeriodSeconds) * time.Second
	genesis[stakingtypes.ModuleName] = mustMarshalJSON(stakingGenesis)

	// Override bank supply
	var bankGenesis banktypes.GenesisState
	mustUnmarshalJSON(genesis[banktypes.ModuleName], &bankGenesis)
	bankGenesis.Supply = sdk.NewCoins(sdk.NewInt64Coin(BondDenom, config.TotalSupply))
	genesis[banktypes.ModuleName] = mustMarshalJSON(bankGenesis)

	// Override the epoch length
	var epochsGenesis epochstypes.GenesisState
	mustUnmarshalJSON(genesis[epochstypes.ModuleName], &epochsGenesis)
	epochsGenesis.Params.EpochLength = config.EpochLengthBlocks
	epochsGenesis.State.EpochLength = config.EpochLengthBlocks
	genesis[epochstypes.ModuleName] = mustMarshalJSON(epochsGenesis)

	// Override the issuance rate
	var rewardsGenesis rewardstypes.GenesisState
	mustUnmarshalJSON(genesis[rewardstypes.ModuleName], &rewardsGenesis)
	rewardsGenesis.Params.IssuancePerBlock = math.NewInt(config.IssuancePerBlock)
	genesis[rewardstypes.ModuleName] = mustMarshalJSON(rewardsGenesis)

	return genesis
}

// GenesisConfig holds configuration parameters for genesis state
type GenesisConfig struct {
	ChainID                string
	TotalSupply            int64
	MaxValidators          uint32
	UnbondingPeriodSeconds int64
	EpochLengthBlocks      uint64
	IssuancePerBlock       int64
}

// DefaultGenesisConfig returns the default network configuration
func DefaultGenesisConfig() GenesisConfig {
	return GenesisConfig{
		ChainID:                "grid-testnet",
		TotalSupply:            10_000_000_000_000_000,
		MaxValidators:          100,
		UnbondingPeriodSeconds: 1814400, // 21 days
		EpochLengthBlocks:      epochstypes.DefaultEpochLength,
		IssuancePerBlock:       10_000,
	}
}

// Helper functions
func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

func mustUnmarshalJSON(bz []byte, v interface{}) {
	if err := json.Unmarshal(bz, v); err != nil {
		panic(err)
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}
