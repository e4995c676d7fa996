package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MockCurationKeeper is an in-memory curation signal registry for tests. It
// satisfies both the staking and rewards curation keeper interfaces.
type MockCurationKeeper struct {
	signals   map[string]math.Int
	collected map[string]math.Int
}

// NewMockCurationKeeper creates an empty mock curation keeper.
func NewMockCurationKeeper() *MockCurationKeeper {
	return &MockCurationKeeper{
		signals:   make(map[string]math.Int),
		collected: make(map[string]math.Int),
	}
}

// SetSignal sets the curation signal recorded for a subgraph.
func (m *MockCurationKeeper) SetSignal(subgraphID string, signal math.Int) {
	m.signals[subgraphID] = signal
}

// GetSubgraphSignal returns the signal recorded for a subgraph.
func (m *MockCurationKeeper) GetSubgraphSignal(_ sdk.Context, subgraphID string) math.Int {
	if signal, ok := m.signals[subgraphID]; ok {
		return signal
	}
	return math.ZeroInt()
}

// GetTotalSignal returns the sum of all recorded signal.
func (m *MockCurationKeeper) GetTotalSignal(_ sdk.Context) math.Int {
	total := math.ZeroInt()
	for _, signal := range m.signals {
		total = total.Add(signal)
	}
	return total
}

// Collect records query fees forwarded to curators of a subgraph.
func (m *MockCurationKeeper) Collect(_ sdk.Context, subgraphID string, tokens math.Int) error {
	current, ok := m.collected[subgraphID]
	if !ok {
		current = math.ZeroInt()
	}
	m.collected[subgraphID] = current.Add(tokens)
	return nil
}

// Collected returns the query fees recorded for a subgraph's curators.
func (m *MockCurationKeeper) Collected(subgraphID string) math.Int {
	if tokens, ok := m.collected[subgraphID]; ok {
		return tokens
	}
	return math.ZeroInt()
}
