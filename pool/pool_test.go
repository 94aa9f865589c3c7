package pool

import (
	"math/big"
	"testing"

	"gostablebridge/auth"
	"gostablebridge/reserve"
	"gostablebridge/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	adminAddr   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	relayerAddr = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	lpA         = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	lpB         = common.HexToAddress("0x00000000000000000000000000000000000000c4")
	recipientR  = common.HexToAddress("0x00000000000000000000000000000000000000d5")
	outsider    = common.HexToAddress("0x00000000000000000000000000000000000000e6")
)

type recordedEvents struct {
	evs []*types.BridgeEvent
}

func (r *recordedEvents) Emit(ev *types.BridgeEvent) {
	r.evs = append(r.evs, ev)
}

func (r *recordedEvents) last() *types.BridgeEvent {
	if len(r.evs) == 0 {
		return nil
	}
	return r.evs[len(r.evs)-1]
}

func newTestPool(t *testing.T, feeBps uint64) (*Pool, *reserve.Ledger, *recordedEvents) {
	t.Helper()

	roles, err := auth.New(adminAddr, []common.Address{relayerAddr})
	require.NoError(t, err)

	ledger := reserve.NewLedger()
	events := &recordedEvents{}
	p, err := New(Options{
		FeeRateBps: feeBps,
		Reserve:    ledger,
		Admin:      roles,
		Relayer:    roles,
		Events:     events,
	})
	require.NoError(t, err)
	return p, ledger, events
}

func fund(ledger *reserve.Ledger, addr common.Address, amount int64) {
	ledger.Credit(addr, big.NewInt(amount))
	ledger.Approve(addr, big.NewInt(amount))
}

// sharePrice returns totalLiquidity/totalShares as a rational for exact
// comparison, or nil when no shares are outstanding.
func sharePrice(p *Pool) *big.Rat {
	snap := p.Snapshot()
	shares, _ := new(big.Int).SetString(snap.TotalShares, 10)
	if shares.Sign() == 0 {
		return nil
	}
	liquidity, _ := new(big.Int).SetString(snap.TotalLiquidity, 10)
	return new(big.Rat).SetFrac(liquidity, shares)
}

func requireSnapshotEqual(t *testing.T, want, got *types.PoolSnapshot) {
	t.Helper()
	want.TsSaved = 0
	got.TsSaved = 0
	require.Equal(t, want, got)
}

func TestDepositBootstrap(t *testing.T) {
	p, ledger, events := newTestPool(t, 0)
	fund(ledger, lpA, 1000)

	minted, err := p.Deposit(lpA, big.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), minted)

	snap := p.Snapshot()
	require.Equal(t, "1000", snap.TotalLiquidity)
	require.Equal(t, "1000", snap.AvailableLiquidity)
	require.Equal(t, "1000", snap.TotalShares)
	require.Equal(t, big.NewInt(1000), p.SharesOf(lpA))
	require.Equal(t, big.NewInt(1000), ledger.CustodyBalance())

	ev := events.last()
	require.NotNil(t, ev)
	require.Equal(t, types.EventDeposit, ev.Kind)
	require.Equal(t, lpA.Hex(), ev.Provider)
	require.Equal(t, "1000", ev.Amount)
	require.Equal(t, "1000", ev.Shares)
}

func TestDepositRejectsZeroAmount(t *testing.T) {
	p, _, _ := newTestPool(t, 0)

	_, err := p.Deposit(lpA, big.NewInt(0))
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = p.Deposit(lpA, nil)
	require.ErrorIs(t, err, types.ErrZeroAmount)

	snap := p.Snapshot()
	require.Equal(t, "0", snap.TotalLiquidity)
	require.Equal(t, "0", snap.TotalShares)
}

func TestDepositRejectsZeroAddress(t *testing.T) {
	p, _, _ := newTestPool(t, 0)

	_, err := p.Deposit(common.Address{}, big.NewInt(100))
	require.ErrorIs(t, err, types.ErrZeroAddress)
}

func TestDepositProportionalIssuance(t *testing.T) {
	p, ledger, _ := newTestPool(t, 0)
	fund(ledger, lpA, 1000)
	fund(ledger, lpB, 500)

	_, err := p.Deposit(lpA, big.NewInt(1000))
	require.NoError(t, err)

	minted, err := p.Deposit(lpB, big.NewInt(500))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(500), minted)

	snap := p.Snapshot()
	require.Equal(t, "1500", snap.TotalLiquidity)
	require.Equal(t, "1500", snap.TotalShares)
}

func TestTinyDepositAfterPriceRiseFails(t *testing.T) {
	p, ledger, _ := newTestPool(t, 0)
	fund(ledger, lpA, 100)
	fund(ledger, lpB, 100)

	_, err := p.Deposit(lpA, big.NewInt(100))
	require.NoError(t, err)

	// bridged-in lock raises the share price above 1:1
	_, err = p.LockForBridge(lpB, big.NewInt(50), 137, "0xdest")
	require.NoError(t, err)

	before := p.Snapshot()
	_, err = p.Deposit(lpB, big.NewInt(1))
	require.ErrorIs(t, err, types.ErrZeroAmount)
	requireSnapshotEqual(t, before, p.Snapshot())
}

func TestWithdrawRoundTrip(t *testing.T) {
	p, ledger, events := newTestPool(t, 0)
	fund(ledger, lpA, 1000)

	_, err := p.Deposit(lpA, big.NewInt(1000))
	require.NoError(t, err)

	value := p.ValueOf(lpA)
	require.Equal(t, big.NewInt(1000), value)

	burned, err := p.Withdraw(lpA, value)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), burned)
	require.Equal(t, big.NewInt(1000), ledger.BalanceOf(lpA))
	require.Equal(t, big.NewInt(0), ledger.CustodyBalance())

	snap := p.Snapshot()
	require.Equal(t, "0", snap.TotalLiquidity)
	require.Equal(t, "0", snap.TotalShares)
	require.Equal(t, big.NewInt(0), p.SharesOf(lpA))

	ev := events.last()
	require.Equal(t, types.EventWithdraw, ev.Kind)
	require.Equal(t, "1000", ev.Shares)
}

func TestWithdrawRejections(t *testing.T) {
	p, ledger, _ := newTestPool(t, 0)
	fund(ledger, lpA, 1000)

	_, err := p.Withdraw(lpA, big.NewInt(0))
	require.ErrorIs(t, err, types.ErrZeroAmount)

	// more than the pool holds
	_, err = p.Withdraw(lpA, big.NewInt(10))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	_, err = p.Deposit(lpA, big.NewInt(1000))
	require.NoError(t, err)

	// lpB owns no shares
	_, err = p.Withdraw(lpB, big.NewInt(500))
	require.ErrorIs(t, err, types.ErrInsufficientShares)
}

// floor-rounded share issuance can only under-mint, so a deposit never
// lowers the price for existing providers
func TestSharePriceNeverDropsOnDeposits(t *testing.T) {
	p, ledger, _ := newTestPool(t, 0)
	fund(ledger, lpA, 10000)
	fund(ledger, lpB, 10000)

	_, err := p.Deposit(lpA, big.NewInt(3000))
	require.NoError(t, err)
	// lock raises the price so floor rounding has something to bite on
	_, err = p.LockForBridge(lpB, big.NewInt(1000), 137, "0xdest")
	require.NoError(t, err)

	price := sharePrice(p)
	for _, amount := range []int64{777, 1300, 33, 2500, 7} {
		_, err = p.Deposit(lpB, big.NewInt(amount))
		require.NoError(t, err)

		next := sharePrice(p)
		require.NotNil(t, next)
		require.GreaterOrEqual(t, next.Cmp(price), 0, "share price decreased after deposit of %d", amount)
		price = next
	}
}

// depositing and then withdrawing the share-equivalent value loses at most
// one unit to rounding, at a share price that does not divide evenly
func TestWithdrawRoundTripWithRounding(t *testing.T) {
	p, ledger, _ := newTestPool(t, 0)
	fund(ledger, lpA, 10000)
	fund(ledger, lpB, 10000)

	_, err := p.Deposit(lpA, big.NewInt(3000))
	require.NoError(t, err)
	_, err = p.LockForBridge(lpA, big.NewInt(1000), 137, "0xdest")
	require.NoError(t, err)

	// 997 at a 4/3 share price does not divide evenly
	_, err = p.Deposit(lpB, big.NewInt(997))
	require.NoError(t, err)

	value := p.ValueOf(lpB)
	loss := new(big.Int).Sub(big.NewInt(997), value)
	require.True(t, loss.Sign() >= 0 && loss.Cmp(big.NewInt(1)) <= 0,
		"round-trip loss %s exceeds one unit", loss)

	_, err = p.Withdraw(lpB, value)
	require.NoError(t, err)
}

func TestValueOfEmptyPool(t *testing.T) {
	p, _, _ := newTestPool(t, 0)
	require.Equal(t, big.NewInt(0), p.ValueOf(lpA))
}

func TestDepositPullFailureRollsBack(t *testing.T) {
	p, ledger, events := newTestPool(t, 0)
	// balance present but no allowance granted to the pool
	ledger.Credit(lpA, big.NewInt(1000))

	before := p.Snapshot()
	_, err := p.Deposit(lpA, big.NewInt(1000))
	require.ErrorIs(t, err, reserve.ErrInsufficientAllowance)
	requireSnapshotEqual(t, before, p.Snapshot())
	require.Equal(t, big.NewInt(0), p.SharesOf(lpA))
	require.Empty(t, events.evs)
}

// pool starts empty; LP A deposits 1,000,000; relayer releases 100,000 at
// 0 bps; LP A can withdraw exactly the remaining 900,000
func TestDepositReleaseWithdrawScenario(t *testing.T) {
	p, ledger, _ := newTestPool(t, 0)
	fund(ledger, lpA, 1000000)

	minted, err := p.Deposit(lpA, big.NewInt(1000000))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000000), minted)
	require.Equal(t, big.NewInt(1000000), p.SharesOf(lpA))

	net, err := p.ExecuteBridgeRelease(relayerAddr, recipientR, big.NewInt(100000), 1, 1)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100000), net)
	require.Equal(t, big.NewInt(100000), ledger.BalanceOf(recipientR))

	snap := p.Snapshot()
	require.Equal(t, "900000", snap.TotalLiquidity)
	require.Equal(t, "900000", snap.AvailableLiquidity)

	value := p.ValueOf(lpA)
	require.Equal(t, big.NewInt(900000), value)

	_, err = p.Withdraw(lpA, value)
	require.NoError(t, err)
	require.Equal(t, "0", p.Snapshot().TotalShares)
}
