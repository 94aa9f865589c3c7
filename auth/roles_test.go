package auth

import (
	"testing"

	"gostablebridge/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestRoles(t *testing.T) {
	admin := common.HexToAddress("0x0000000000000000000000000000000000000001")
	relayerA := common.HexToAddress("0x0000000000000000000000000000000000000002")
	relayerB := common.HexToAddress("0x0000000000000000000000000000000000000003")
	stranger := common.HexToAddress("0x0000000000000000000000000000000000000004")

	roles, err := New(admin, []common.Address{relayerA, relayerB})
	require.NoError(t, err)

	require.True(t, roles.CanAdminister(admin))
	require.False(t, roles.CanAdminister(relayerA))
	require.False(t, roles.CanAdminister(stranger))

	require.True(t, roles.CanRelay(relayerA))
	require.True(t, roles.CanRelay(relayerB))
	require.False(t, roles.CanRelay(admin))
	require.False(t, roles.CanRelay(stranger))
}

func TestRolesRejectZeroAddresses(t *testing.T) {
	relayer := common.HexToAddress("0x0000000000000000000000000000000000000002")

	_, err := New(common.Address{}, []common.Address{relayer})
	require.ErrorIs(t, err, types.ErrZeroAddress)

	admin := common.HexToAddress("0x0000000000000000000000000000000000000001")
	_, err = New(admin, []common.Address{common.Address{}})
	require.ErrorIs(t, err, types.ErrZeroAddress)
}
