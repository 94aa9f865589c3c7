package auth

import (
	"gostablebridge/types"

	"github.com/ethereum/go-ethereum/common"
)

// Roles is the address-keyed capability set consulted by the pool. One
// administrator, any number of relayers. Satisfies both pool.AdminCapability
// and pool.RelayerCapability.
type Roles struct {
	admin    common.Address
	relayers map[common.Address]bool
}

func New(admin common.Address, relayers []common.Address) (*Roles, error) {
	if admin == (common.Address{}) {
		return nil, types.ErrZeroAddress
	}
	set := make(map[common.Address]bool, len(relayers))
	for _, r := range relayers {
		if r == (common.Address{}) {
			return nil, types.ErrZeroAddress
		}
		set[r] = true
	}
	return &Roles{admin: admin, relayers: set}, nil
}

func (r *Roles) CanAdminister(caller common.Address) bool {
	return caller == r.admin
}

func (r *Roles) CanRelay(caller common.Address) bool {
	return r.relayers[caller]
}
