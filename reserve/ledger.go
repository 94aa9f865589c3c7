package reserve

import (
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientBalance   = errors.New("reserve: insufficient balance")
	ErrInsufficientAllowance = errors.New("reserve: insufficient allowance")
	ErrInsufficientCustody   = errors.New("reserve: insufficient pool custody balance")
)

// Ledger is an in-process reserve with token-style approval semantics,
// used by the memory reserve mode and by tests. Pull consumes allowance
// granted to the pool, Push pays out of pool custody.
type Ledger struct {
	mu         sync.Mutex
	balances   map[common.Address]*big.Int
	allowances map[common.Address]*big.Int
	custody    *big.Int
}

func NewLedger() *Ledger {
	return &Ledger{
		balances:   make(map[common.Address]*big.Int),
		allowances: make(map[common.Address]*big.Int),
		custody:    new(big.Int),
	}
}

// Credit adds balance to an account (faucet for dev/test setups).
func (l *Ledger) Credit(addr common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance(addr).Add(l.balance(addr), amount)
}

// Approve authorizes the pool to pull up to amount from owner.
func (l *Ledger) Approve(owner common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowances[owner] = new(big.Int).Set(amount)
}

func (l *Ledger) BalanceOf(addr common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.balance(addr))
}

func (l *Ledger) CustodyBalance() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.custody)
}

func (l *Ledger) Pull(from common.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	allowance, ok := l.allowances[from]
	if !ok || allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	bal := l.balance(from)
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	allowance.Sub(allowance, amount)
	bal.Sub(bal, amount)
	l.custody.Add(l.custody, amount)
	return nil
}

func (l *Ledger) Push(to common.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.custody.Cmp(amount) < 0 {
		return ErrInsufficientCustody
	}
	l.custody.Sub(l.custody, amount)
	l.balance(to).Add(l.balance(to), amount)
	return nil
}

// called with l.mu held
func (l *Ledger) balance(addr common.Address) *big.Int {
	bal, ok := l.balances[addr]
	if !ok {
		bal = new(big.Int)
		l.balances[addr] = bal
	}
	return bal
}
