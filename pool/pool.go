// Package pool implements the settlement-side ledger of the bridge: LP
// share accounting and the relayer-driven release/revert registry, both
// operating on one reserve balance behind a single lock.
package pool

import (
	"fmt"
	"log"
	"math/big"
	"sync"
	"time"

	"gostablebridge/config"
	"gostablebridge/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Reserve moves the stablecoin between external accounts and pool custody.
// Pull requires prior authorization by the owner (ERC-20 approval or
// equivalent); Push fails if the pool's on-ledger balance is short.
type Reserve interface {
	Pull(from common.Address, amount *big.Int) error
	Push(to common.Address, amount *big.Int) error
}

// AdminCapability gates fee updates and the pause flag.
type AdminCapability interface {
	CanAdminister(caller common.Address) bool
}

// RelayerCapability gates execute/revert and lock releases.
type RelayerCapability interface {
	CanRelay(caller common.Address) bool
}

// EventSink receives one event per successful mutating operation.
type EventSink interface {
	Emit(ev *types.BridgeEvent)
}

// Store persists pool state for restarts. The in-memory pool stays
// authoritative; persistence failures are logged, not surfaced.
type Store interface {
	SaveSnapshot(snap *types.PoolSnapshot) error
	SaveProvider(rec *types.ProviderRecord) error
	SaveRelease(rec *types.BridgeRelease) error
	SaveLock(rec *types.BridgeLock) error
}

// runtime copy of a types.BridgeRelease with parsed amounts
type release struct {
	id          string
	recipient   common.Address
	amount      *big.Int // net released; zeroed on revert
	fee         *big.Int
	sourceChain uint64
	status      string
	relayer     common.Address
	tsExecuted  int64
	tsReverted  int64
}

// runtime copy of a types.BridgeLock
type lockRecord struct {
	id        string
	nonce     uint64
	sender    common.Address
	amount    *big.Int
	destChain uint64
	recipient string
	released  bool
	tsLocked  int64
}

// Pool is the process-wide reserve state machine. Every mutating operation
// runs under one mutex; bookkeeping is committed before any external
// transfer and rolled back if that transfer fails, so each call either
// fully completes or leaves state untouched.
type Pool struct {
	mu sync.Mutex

	totalLiquidity     *big.Int
	availableLiquidity *big.Int
	lockedLiquidity    *big.Int
	totalShares        *big.Int
	shares             map[common.Address]*big.Int

	releases map[uint64]*release
	locks    map[uint64]*lockRecord

	feeRateBps    uint64
	paused        bool
	nextLockNonce uint64
	maxLockPerTx  *big.Int // nil disables the limit

	reserve Reserve
	admin   AdminCapability
	relayer RelayerCapability
	store   Store
	events  EventSink
}

type Options struct {
	FeeRateBps   uint64
	MaxLockPerTx *big.Int
	Reserve      Reserve
	Admin        AdminCapability
	Relayer      RelayerCapability
	Store        Store     // optional
	Events       EventSink // optional
}

func New(opts Options) (*Pool, error) {
	if opts.Reserve == nil || opts.Admin == nil || opts.Relayer == nil {
		return nil, fmt.Errorf("pool requires reserve and capabilities: %w", types.ErrZeroAddress)
	}
	if opts.FeeRateBps > config.BPS_DENOMINATOR {
		return nil, types.ErrInvalidFeeRate
	}
	p := &Pool{
		totalLiquidity:     new(big.Int),
		availableLiquidity: new(big.Int),
		lockedLiquidity:    new(big.Int),
		totalShares:        new(big.Int),
		shares:             make(map[common.Address]*big.Int),
		releases:           make(map[uint64]*release),
		locks:              make(map[uint64]*lockRecord),
		feeRateBps:         opts.FeeRateBps,
		reserve:            opts.Reserve,
		admin:              opts.Admin,
		relayer:            opts.Relayer,
		store:              opts.Store,
		events:             opts.Events,
	}
	if opts.MaxLockPerTx != nil && opts.MaxLockPerTx.Sign() > 0 {
		p.maxLockPerTx = new(big.Int).Set(opts.MaxLockPerTx)
	}
	return p, nil
}

// Restore seeds the pool from persisted records. Call before serving.
func (p *Pool) Restore(
	snap *types.PoolSnapshot,
	providers []*types.ProviderRecord,
	rels []*types.BridgeRelease,
	locks []*types.BridgeLock,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if snap != nil {
		var err error
		if p.totalLiquidity, err = parseAmount(snap.TotalLiquidity); err != nil {
			return err
		}
		if p.availableLiquidity, err = parseAmount(snap.AvailableLiquidity); err != nil {
			return err
		}
		if p.lockedLiquidity, err = parseAmount(snap.LockedLiquidity); err != nil {
			return err
		}
		if p.totalShares, err = parseAmount(snap.TotalShares); err != nil {
			return err
		}
		if snap.FeeRateBps > config.BPS_DENOMINATOR {
			return types.ErrInvalidFeeRate
		}
		p.feeRateBps = snap.FeeRateBps
		p.paused = snap.Paused
		p.nextLockNonce = snap.NextLockNonce
	}
	for _, rec := range providers {
		bal, err := parseAmount(rec.Shares)
		if err != nil {
			return fmt.Errorf("provider %s: %w", rec.Address, err)
		}
		p.shares[common.HexToAddress(rec.Address)] = bal
	}
	for _, rec := range rels {
		amount, err := parseAmount(rec.Amount)
		if err != nil {
			return fmt.Errorf("release %d: %w", rec.Nonce, err)
		}
		fee, err := parseAmount(rec.Fee)
		if err != nil {
			return fmt.Errorf("release %d: %w", rec.Nonce, err)
		}
		p.releases[rec.Nonce] = &release{
			id:          rec.ID,
			recipient:   common.HexToAddress(rec.Recipient),
			amount:      amount,
			fee:         fee,
			sourceChain: rec.SourceChain,
			status:      rec.Status,
			relayer:     common.HexToAddress(rec.Relayer),
			tsExecuted:  rec.TsExecuted,
			tsReverted:  rec.TsReverted,
		}
	}
	for _, rec := range locks {
		amount, err := parseAmount(rec.Amount)
		if err != nil {
			return fmt.Errorf("lock %d: %w", rec.Nonce, err)
		}
		p.locks[rec.Nonce] = &lockRecord{
			id:        rec.ID,
			nonce:     rec.Nonce,
			sender:    common.HexToAddress(rec.Sender),
			amount:    amount,
			destChain: rec.DestChain,
			recipient: rec.Recipient,
			released:  rec.Released,
			tsLocked:  rec.TsLocked,
		}
	}
	return nil
}

// SetFeeRate updates the release fee. Admin only, allowed while paused.
func (p *Pool) SetFeeRate(caller common.Address, bps uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.admin.CanAdminister(caller) {
		return types.ErrUnauthorized
	}
	if bps > config.BPS_DENOMINATOR {
		return types.ErrInvalidFeeRate
	}
	p.feeRateBps = bps

	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:       types.EventFeeUpdate,
		FeeRateBps: bps,
	})
	return nil
}

// SetPaused toggles the pause gate. Admin only; unpausing must work while
// paused, so this op itself is not pause-gated.
func (p *Pool) SetPaused(caller common.Address, paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.admin.CanAdminister(caller) {
		return types.ErrUnauthorized
	}
	p.paused = paused

	p.persistSnapshot()
	p.emit(&types.BridgeEvent{
		Kind:   types.EventPause,
		Paused: paused,
	})
	return nil
}

func (p *Pool) FeeRateBps() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.feeRateBps
}

func (p *Pool) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// SharesOf returns the provider's current share balance.
func (p *Pool) SharesOf(provider common.Address) *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if bal, ok := p.shares[provider]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// ValueOf returns the stablecoin value currently backing the provider's
// shares: floor(shares * totalLiquidity / totalShares), 0 when no shares
// are outstanding.
func (p *Pool) ValueOf(provider common.Address) *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.valueOfLocked(provider)
}

func (p *Pool) valueOfLocked(provider common.Address) *big.Int {
	bal, ok := p.shares[provider]
	if !ok || p.totalShares.Sign() == 0 {
		return new(big.Int)
	}
	v := new(big.Int).Mul(bal, p.totalLiquidity)
	return v.Div(v, p.totalShares)
}

// IsExecuted reports whether the nonce is currently in the executed state.
func (p *Pool) IsExecuted(nonce uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.releases[nonce]
	return ok && rec.status == types.ReleaseStatusExecuted
}

// Snapshot returns a persisted-form copy of the pool counters.
func (p *Pool) Snapshot() *types.PoolSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pool) snapshotLocked() *types.PoolSnapshot {
	return &types.PoolSnapshot{
		TotalLiquidity:     p.totalLiquidity.String(),
		AvailableLiquidity: p.availableLiquidity.String(),
		LockedLiquidity:    p.lockedLiquidity.String(),
		TotalShares:        p.totalShares.String(),
		FeeRateBps:         p.feeRateBps,
		Paused:             p.paused,
		NextLockNonce:      p.nextLockNonce,
		TsSaved:            time.Now().Unix(),
	}
}

// called with p.mu held

func (p *Pool) shareBalance(provider common.Address) *big.Int {
	bal, ok := p.shares[provider]
	if !ok {
		bal = new(big.Int)
		p.shares[provider] = bal
	}
	return bal
}

func (p *Pool) persistSnapshot() {
	if p.store == nil {
		return
	}
	if err := p.store.SaveSnapshot(p.snapshotLocked()); err != nil {
		log.Printf("Error persisting pool snapshot: %v", err)
	}
}

func (p *Pool) persistProvider(provider common.Address) {
	if p.store == nil {
		return
	}
	rec := &types.ProviderRecord{
		Address:   provider.Hex(),
		Shares:    p.shareBalance(provider).String(),
		TsUpdated: time.Now().Unix(),
	}
	if err := p.store.SaveProvider(rec); err != nil {
		log.Printf("Error persisting provider %s: %v", rec.Address, err)
	}
}

func (p *Pool) persistRelease(nonce uint64, rec *release) {
	if p.store == nil {
		return
	}
	stored := &types.BridgeRelease{
		ID:          rec.id,
		Nonce:       nonce,
		Status:      rec.status,
		Recipient:   rec.recipient.Hex(),
		Amount:      rec.amount.String(),
		Fee:         rec.fee.String(),
		SourceChain: rec.sourceChain,
		Relayer:     rec.relayer.Hex(),
		TsExecuted:  rec.tsExecuted,
		TsReverted:  rec.tsReverted,
	}
	if rec.status == types.ReleaseStatusReverted {
		stored.Recipient = ""
	}
	if err := p.store.SaveRelease(stored); err != nil {
		log.Printf("Error persisting release %d: %v", nonce, err)
	}
}

func (p *Pool) persistLock(rec *lockRecord) {
	if p.store == nil {
		return
	}
	stored := &types.BridgeLock{
		ID:        rec.id,
		Nonce:     rec.nonce,
		Sender:    rec.sender.Hex(),
		Amount:    rec.amount.String(),
		DestChain: rec.destChain,
		Recipient: rec.recipient,
		Released:  rec.released,
		TsLocked:  rec.tsLocked,
	}
	if err := p.store.SaveLock(stored); err != nil {
		log.Printf("Error persisting lock %d: %v", rec.nonce, err)
	}
}

func (p *Pool) emit(ev *types.BridgeEvent) {
	ev.ID = uuid.New().String()
	ev.TsCreated = time.Now().Unix()
	log.Printf("Event %s: %+v", ev.Kind, *ev)
	if p.events != nil {
		p.events.Emit(ev)
	}
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}
