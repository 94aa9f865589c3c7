package reserve

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b22")
)

func TestLedgerPullRequiresAllowance(t *testing.T) {
	l := NewLedger()
	l.Credit(alice, big.NewInt(100))

	err := l.Pull(alice, big.NewInt(50))
	require.ErrorIs(t, err, ErrInsufficientAllowance)

	l.Approve(alice, big.NewInt(50))
	require.NoError(t, l.Pull(alice, big.NewInt(50)))
	require.Equal(t, big.NewInt(50), l.BalanceOf(alice))
	require.Equal(t, big.NewInt(50), l.CustodyBalance())

	// the allowance was consumed
	err = l.Pull(alice, big.NewInt(1))
	require.ErrorIs(t, err, ErrInsufficientAllowance)
}

func TestLedgerPullRequiresBalance(t *testing.T) {
	l := NewLedger()
	l.Approve(alice, big.NewInt(1000))

	err := l.Pull(alice, big.NewInt(1000))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, big.NewInt(0), l.CustodyBalance())
}

func TestLedgerPushRequiresCustody(t *testing.T) {
	l := NewLedger()
	l.Credit(alice, big.NewInt(100))
	l.Approve(alice, big.NewInt(100))
	require.NoError(t, l.Pull(alice, big.NewInt(100)))

	err := l.Push(bob, big.NewInt(101))
	require.ErrorIs(t, err, ErrInsufficientCustody)

	require.NoError(t, l.Push(bob, big.NewInt(100)))
	require.Equal(t, big.NewInt(100), l.BalanceOf(bob))
	require.Equal(t, big.NewInt(0), l.CustodyBalance())
}
