package pool

import (
	"fmt"
	"math/big"

	"gostablebridge/types"

	"github.com/ethereum/go-ethereum/common"
)

// Deposit pulls amount of the reserve asset from the provider and mints
// proportional LP shares. The first deposit (and a deposit into a pool
// whose backing was fully released) mints 1:1.
func (p *Pool) Deposit(provider common.Address, amount *big.Int) (*big.Int, error) {
	if provider == (common.Address{}) {
		return nil, types.ErrZeroAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, types.ErrZeroAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return nil, types.ErrPaused
	}

	minted := new(big.Int)
	if p.totalShares.Sign() == 0 || p.totalLiquidity.Sign() == 0 {
		minted.Set(amount)
	} else {
		minted.Mul(amount, p.totalShares)
		minted.Div(minted, p.totalLiquidity)
	}
	// floor division can zero out a tiny deposit once the share price has
	// risen above 1:1; reject instead of granting worthless shares
	if minted.Sign() == 0 {
		return nil, types.ErrZeroAmount
	}

	p.totalLiquidity.Add(p.totalLiquidity, amount)
	p.availableLiquidity.Add(p.availableLiquidity, amount)
	p.totalShares.Add(p.totalShares, minted)
	bal := p.shareBalance(provider)
	bal.Add(bal, minted)

	// bookkeeping is committed before the external call; a reentrant or
	// hostile callee only ever observes post-update state
	if err := p.reserve.Pull(provider, amount); err != nil {
		bal.Sub(bal, minted)
		p.totalShares.Sub(p.totalShares, minted)
		p.availableLiquidity.Sub(p.availableLiquidity, amount)
		p.totalLiquidity.Sub(p.totalLiquidity, amount)
		return nil, fmt.Errorf("reserve pull: %w", err)
	}

	p.persistProvider(provider)
	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:     types.EventDeposit,
		Provider: provider.Hex(),
		Amount:   amount.String(),
		Shares:   minted.String(),
	})
	return new(big.Int).Set(minted), nil
}

// Withdraw burns the share-equivalent of amount and pushes amount of the
// reserve asset back to the provider.
func (p *Pool) Withdraw(provider common.Address, amount *big.Int) (*big.Int, error) {
	if provider == (common.Address{}) {
		return nil, types.ErrZeroAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, types.ErrZeroAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return nil, types.ErrPaused
	}
	if amount.Cmp(p.availableLiquidity) > 0 {
		return nil, types.ErrInsufficientLiquidity
	}
	if p.totalShares.Sign() == 0 {
		return nil, types.ErrInsufficientShares
	}

	burned := new(big.Int).Mul(amount, p.totalShares)
	burned.Div(burned, p.totalLiquidity)
	if burned.Sign() == 0 {
		return nil, types.ErrZeroAmount
	}
	bal := p.shareBalance(provider)
	if burned.Cmp(bal) > 0 {
		return nil, types.ErrInsufficientShares
	}

	p.totalLiquidity.Sub(p.totalLiquidity, amount)
	p.availableLiquidity.Sub(p.availableLiquidity, amount)
	p.totalShares.Sub(p.totalShares, burned)
	bal.Sub(bal, burned)

	if err := p.reserve.Push(provider, amount); err != nil {
		bal.Add(bal, burned)
		p.totalShares.Add(p.totalShares, burned)
		p.availableLiquidity.Add(p.availableLiquidity, amount)
		p.totalLiquidity.Add(p.totalLiquidity, amount)
		return nil, fmt.Errorf("reserve push: %w", err)
	}

	p.persistProvider(provider)
	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:     types.EventWithdraw,
		Provider: provider.Hex(),
		Amount:   amount.String(),
		Shares:   burned.String(),
	})
	return new(big.Int).Set(burned), nil
}
