package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// DelegationPool is the per-indexer share pool for delegated capital. The
// share price TotalTokens/TotalShares only ever increases or stays flat
// absent slashing: rounding on entry and exit always favors the pool.
type DelegationPool struct {
	Indexer     string   `json:"indexer"`
	TotalTokens math.Int `json:"total_tokens"`
	TotalShares math.Int `json:"total_shares"`
	// IndexingRewardCut and QueryFeeCut are the fractions of each reward kind
	// the indexer keeps; the remainder accrues to the pool.
	IndexingRewardCut math.LegacyDec `json:"indexing_reward_cut"`
	QueryFeeCut       math.LegacyDec `json:"query_fee_cut"`
	// UpdatedAtBlock is the height of the last cut change, for the cooldown.
	UpdatedAtBlock int64 `json:"updated_at_block"`
}

// NewDelegationPool creates an empty delegation pool. Cuts default to 1: the
// indexer keeps everything until it explicitly opts delegators in.
func NewDelegationPool(indexer string) DelegationPool {
	return DelegationPool{
		Indexer:           indexer,
		TotalTokens:       math.ZeroInt(),
		TotalShares:       math.ZeroInt(),
		IndexingRewardCut: math.LegacyOneDec(),
		QueryFeeCut:       math.LegacyOneDec(),
	}
}

// Validate checks the pool is internally consistent.
func (p DelegationPool) Validate() error {
	if p.Indexer == "" {
		return fmt.Errorf("indexer address cannot be empty")
	}
	if p.TotalTokens.IsNil() || p.TotalTokens.IsNegative() {
		return fmt.Errorf("pool tokens cannot be nil or negative")
	}
	if p.TotalShares.IsNil() || p.TotalShares.IsNegative() {
		return fmt.Errorf("pool shares cannot be nil or negative")
	}
	if p.TotalShares.IsZero() != p.TotalTokens.IsZero() {
		// Tokens without shares would strand value; shares without tokens
		// would make the share price zero.
		if p.TotalShares.IsZero() && p.TotalTokens.IsPositive() {
			return fmt.Errorf("pool has tokens but no shares")
		}
	}
	for _, cut := range []math.LegacyDec{p.IndexingRewardCut, p.QueryFeeCut} {
		if cut.IsNil() || cut.IsNegative() || cut.GT(math.LegacyOneDec()) {
			return fmt.Errorf("cut %s outside [0,1]", cut)
		}
	}
	return nil
}

// SharesForTokens returns the shares minted for a deposit. First depositor
// bootstraps 1:1; afterwards floor division rounds against the depositor.
func (p DelegationPool) SharesForTokens(tokens math.Int) (math.Int, error) {
	if p.TotalShares.IsZero() {
		return tokens, nil
	}
	if p.TotalTokens.IsZero() {
		return math.ZeroInt(), fmt.Errorf("pool has shares but no tokens")
	}
	return tokens.Mul(p.TotalShares).Quo(p.TotalTokens), nil
}

// TokensForShares returns the tokens redeemed for burning shares, floor
// division. Pool totals must be debited by exactly this amount so rounding
// error accumulates in the pool's favor.
func (p DelegationPool) TokensForShares(shares math.Int) math.Int {
	if p.TotalShares.IsZero() {
		return math.ZeroInt()
	}
	return shares.Mul(p.TotalTokens).Quo(p.TotalShares)
}

// Delegation is a single delegator's position in an indexer's pool.
type Delegation struct {
	Delegator string   `json:"delegator"`
	Indexer   string   `json:"indexer"`
	Shares    math.Int `json:"shares"`
	// TokensLocked is the undelegated amount waiting out the unbonding period.
	TokensLocked math.Int `json:"tokens_locked"`
	// TokensLockedUntilEpoch is the epoch at which the lock expires.
	TokensLockedUntilEpoch uint64 `json:"tokens_locked_until_epoch"`
}

// NewDelegation creates an empty delegation position
func NewDelegation(delegator, indexer string) Delegation {
	return Delegation{
		Delegator:    delegator,
		Indexer:      indexer,
		Shares:       math.ZeroInt(),
		TokensLocked: math.ZeroInt(),
	}
}

// Validate checks the delegation is well-formed.
func (d Delegation) Validate() error {
	if d.Delegator == "" || d.Indexer == "" {
		return fmt.Errorf("delegator and indexer addresses cannot be empty")
	}
	if d.Shares.IsNil() || d.Shares.IsNegative() {
		return fmt.Errorf("shares cannot be nil or negative")
	}
	if d.TokensLocked.IsNil() || d.TokensLocked.IsNegative() {
		return fmt.Errorf("locked tokens cannot be nil or negative")
	}
	return nil
}

// WithdrawableTokens returns the unbonded amount at the given epoch.
func (d Delegation) WithdrawableTokens(currentEpoch uint64) math.Int {
	if d.TokensLocked.IsPositive() && currentEpoch >= d.TokensLockedUntilEpoch {
		return d.TokensLocked
	}
	return math.ZeroInt()
}
