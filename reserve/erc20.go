// Package reserve implements the pool's reserve asset transfer capability:
// Pull moves tokens from an external owner into pool custody (requires
// prior approval), Push pays tokens out of custody.
package reserve

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log"
	"math/big"
	"strings"

	"gostablebridge/config"
	"gostablebridge/types"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// minimal ERC-20 surface the bridge custodian needs
const erc20ABI = `[
	{"name":"transfer","type":"function","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"name":"transferFrom","type":"function","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

// ERC20 moves the reserve stablecoin through an on-chain token contract.
// The custodian wallet holds the pool's balance; Pull submits a
// transferFrom into it, Push a transfer out of it.
type ERC20 struct {
	chainID   int64
	rpcList   []string
	token     common.Address
	custodian common.Address
	key       *ecdsa.PrivateKey
	abi       abi.ABI
}

func NewERC20(chainID int64, rpcList []string, token, custodian, keyHex string) (*ERC20, error) {
	tokenAddr := common.HexToAddress(token)
	custodianAddr := common.HexToAddress(custodian)
	if tokenAddr == (common.Address{}) || custodianAddr == (common.Address{}) {
		return nil, types.ErrZeroAddress
	}
	if len(rpcList) == 0 {
		return nil, fmt.Errorf("no reserve RPC endpoints configured")
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("error instantiating custodian key: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("error parsing token ABI: %w", err)
	}
	return &ERC20{
		chainID:   chainID,
		rpcList:   rpcList,
		token:     tokenAddr,
		custodian: custodianAddr,
		key:       key,
		abi:       parsed,
	}, nil
}

func (e *ERC20) Pull(from common.Address, amount *big.Int) error {
	return e.transact("transferFrom", from, e.custodian, amount)
}

func (e *ERC20) Push(to common.Address, amount *big.Int) error {
	return e.transact("transfer", to, amount)
}

func (e *ERC20) transact(method string, args ...interface{}) error {
	var reterr error
	for i := 0; i < config.RESERVE_RETRIES; i++ {
		url := e.rpcList[i%len(e.rpcList)]
		client, err := ethclient.Dial(url)
		if err != nil {
			reterr = fmt.Errorf("error connecting to %s: %w", url, err)
			log.Print(reterr.Error())
			continue
		}

		nonce, err := client.PendingNonceAt(context.Background(), e.custodian)
		if err != nil {
			client.Close()
			reterr = fmt.Errorf("error getting nonce for custodian wallet: %w", err)
			log.Print(reterr.Error())
			continue
		}

		gasPrice, err := client.SuggestGasPrice(context.Background())
		if err != nil {
			client.Close()
			reterr = fmt.Errorf("error getting suggested gas price: %w", err)
			log.Print(reterr.Error())
			continue
		}

		auth, err := bind.NewKeyedTransactorWithChainID(e.key, big.NewInt(e.chainID))
		if err != nil {
			client.Close()
			return fmt.Errorf("error instantiating transactor: %w", err)
		}
		auth.Nonce = big.NewInt(int64(nonce))
		auth.Value = big.NewInt(0)
		auth.GasLimit = uint64(200000)
		auth.GasPrice = gasPrice

		contract := bind.NewBoundContract(e.token, e.abi, client, client, client)
		tx, err := contract.Transact(auth, method, args...)
		client.Close()
		if err != nil {
			reterr = fmt.Errorf("error calling %s: %w", method, err)
			log.Print(reterr.Error())
			continue
		}

		log.Printf("Submitted reserve %s tx: %s", method, tx.Hash().Hex())
		return nil
	}
	return reterr
}
