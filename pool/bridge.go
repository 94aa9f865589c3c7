package pool

import (
	"fmt"
	"math/big"
	"time"

	"gostablebridge/config"
	"gostablebridge/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// ExecuteBridgeRelease pays out an off-chain-verified bridge intent:
// deducts the fee, debits the reserve and pushes the net amount to the
// recipient. Exactly once per nonce; a nonce that was executed, or executed
// and later reverted, can never be executed again. sourceChainID is carried
// for analytics only and is not validated here.
func (p *Pool) ExecuteBridgeRelease(
	caller common.Address,
	recipient common.Address,
	grossAmount *big.Int,
	sourceChainID uint64,
	nonce uint64,
) (*big.Int, error) {
	if recipient == (common.Address{}) {
		return nil, types.ErrZeroAddress
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.relayer.CanRelay(caller) {
		return nil, types.ErrUnauthorized
	}
	if p.paused {
		return nil, types.ErrPaused
	}
	if grossAmount == nil || grossAmount.Sign() <= 0 {
		return nil, types.ErrZeroAmount
	}
	if _, used := p.releases[nonce]; used {
		return nil, types.ErrNonceAlreadyUsed
	}

	fee := new(big.Int).Mul(grossAmount, new(big.Int).SetUint64(p.feeRateBps))
	fee.Div(fee, big.NewInt(config.BPS_DENOMINATOR))
	net := new(big.Int).Sub(grossAmount, fee)
	// a zero net amount is the unexecuted sentinel and must never be
	// recorded as a successful release
	if net.Sign() == 0 {
		return nil, types.ErrZeroAmount
	}
	if net.Cmp(p.availableLiquidity) > 0 {
		return nil, types.ErrInsufficientLiquidity
	}

	p.totalLiquidity.Sub(p.totalLiquidity, net)
	p.availableLiquidity.Sub(p.availableLiquidity, net)
	rec := &release{
		id:          uuid.New().String(),
		recipient:   recipient,
		amount:      net,
		fee:         fee,
		sourceChain: sourceChainID,
		status:      types.ReleaseStatusExecuted,
		relayer:     caller,
		tsExecuted:  time.Now().Unix(),
	}
	p.releases[nonce] = rec

	if err := p.reserve.Push(recipient, net); err != nil {
		delete(p.releases, nonce)
		p.availableLiquidity.Add(p.availableLiquidity, net)
		p.totalLiquidity.Add(p.totalLiquidity, net)
		return nil, fmt.Errorf("reserve push: %w", err)
	}

	p.persistRelease(nonce, rec)
	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:        types.EventRelease,
		Recipient:   recipient.Hex(),
		Amount:      net.String(),
		Fee:         fee.String(),
		Nonce:       nonce,
		SourceChain: sourceChainID,
		Relayer:     caller.Hex(),
	})
	return new(big.Int).Set(net), nil
}

// RevertBridge reclaims a previously released amount from the recipient
// (who must have pre-authorized the pool for at least that amount) and
// restores it to the reserve. The fee retained at execute time stays in
// the pool. The whole reversal aborts if the pull is rejected.
func (p *Pool) RevertBridge(caller common.Address, nonce uint64) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.relayer.CanRelay(caller) {
		return nil, types.ErrUnauthorized
	}
	if p.paused {
		return nil, types.ErrPaused
	}
	rec, ok := p.releases[nonce]
	if !ok || rec.status != types.ReleaseStatusExecuted {
		return nil, types.ErrBridgeNotExecuted
	}

	restored := rec.amount
	recipient := rec.recipient

	p.totalLiquidity.Add(p.totalLiquidity, restored)
	p.availableLiquidity.Add(p.availableLiquidity, restored)
	rec.status = types.ReleaseStatusReverted
	rec.amount = new(big.Int)
	rec.recipient = common.Address{}
	rec.tsReverted = time.Now().Unix()

	if err := p.reserve.Pull(recipient, restored); err != nil {
		rec.tsReverted = 0
		rec.recipient = recipient
		rec.amount = restored
		rec.status = types.ReleaseStatusExecuted
		p.availableLiquidity.Sub(p.availableLiquidity, restored)
		p.totalLiquidity.Sub(p.totalLiquidity, restored)
		return nil, fmt.Errorf("reserve pull: %w", err)
	}

	p.persistRelease(nonce, rec)
	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:    types.EventRevert,
		Amount:  restored.String(),
		Nonce:   nonce,
		Relayer: caller.Hex(),
	})
	return new(big.Int).Set(restored), nil
}

// LockForBridge pulls amount from the sender into the locked tier and
// records an outbound bridge intent under the next lock nonce. Relayers
// observe the emitted intent and release funds on the destination chain.
func (p *Pool) LockForBridge(
	sender common.Address,
	amount *big.Int,
	destChainID uint64,
	recipient string,
) (uint64, error) {
	if sender == (common.Address{}) {
		return 0, types.ErrZeroAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, types.ErrZeroAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return 0, types.ErrPaused
	}
	if p.maxLockPerTx != nil && amount.Cmp(p.maxLockPerTx) > 0 {
		return 0, types.ErrLockLimitExceeded
	}

	nonce := p.nextLockNonce
	p.nextLockNonce++
	p.totalLiquidity.Add(p.totalLiquidity, amount)
	p.lockedLiquidity.Add(p.lockedLiquidity, amount)
	rec := &lockRecord{
		id:        uuid.New().String(),
		nonce:     nonce,
		sender:    sender,
		amount:    new(big.Int).Set(amount),
		destChain: destChainID,
		recipient: recipient,
		tsLocked:  time.Now().Unix(),
	}
	p.locks[nonce] = rec

	if err := p.reserve.Pull(sender, amount); err != nil {
		delete(p.locks, nonce)
		p.lockedLiquidity.Sub(p.lockedLiquidity, amount)
		p.totalLiquidity.Sub(p.totalLiquidity, amount)
		p.nextLockNonce--
		return 0, fmt.Errorf("reserve pull: %w", err)
	}

	p.persistLock(rec)
	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:      types.EventLock,
		Provider:  sender.Hex(),
		Amount:    amount.String(),
		Nonce:     nonce,
		DestChain: destChainID,
		Recipient: recipient,
	})
	return nonce, nil
}

// ReleaseLock returns a lock's funds to the available tier after the
// relayer determined the outbound bridge failed (or completed, leaving the
// liquidity pooled). No reserve transfer happens; the funds never left.
func (p *Pool) ReleaseLock(caller common.Address, nonce uint64) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.relayer.CanRelay(caller) {
		return nil, types.ErrUnauthorized
	}
	if p.paused {
		return nil, types.ErrPaused
	}
	rec, ok := p.locks[nonce]
	if !ok {
		return nil, types.ErrLockNotFound
	}
	if rec.released {
		return nil, types.ErrLockAlreadyReleased
	}

	rec.released = true
	p.lockedLiquidity.Sub(p.lockedLiquidity, rec.amount)
	p.availableLiquidity.Add(p.availableLiquidity, rec.amount)

	p.persistLock(rec)
	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:    types.EventLockReleased,
		Amount:  rec.amount.String(),
		Nonce:   nonce,
		Relayer: caller.Hex(),
	})
	return new(big.Int).Set(rec.amount), nil
}
