package main

import (
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"gostablebridge/auth"
	"gostablebridge/config"
	"gostablebridge/pool"
	"gostablebridge/redis"
	"gostablebridge/reserve"
	"gostablebridge/workers"
	"gostablebridge/workers/handlers"

	"github.com/ethereum/go-ethereum/common"
)

func main() {
	log.Print("Starting stablecoin bridge pool")

	f, err := os.OpenFile(fmt.Sprintf("logs/log_%s.txt", time.Now().Format("2006-01-02")), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file for writing: %v", err)
	}
	defer f.Close()

	log.SetOutput(f)

	config.Init()

	// connect to Redis, without persistence do not continue
	redis.Init()

	roles, err := newRoles()
	if err != nil {
		log.Fatalf("error configuring roles: %v", err)
	}

	res, err := newReserve()
	if err != nil {
		log.Fatalf("error configuring reserve: %v", err)
	}

	var maxLock *big.Int
	if raw := config.Config.Pool.MaxLockPerTx; raw != "" {
		var ok bool
		maxLock, ok = big.NewInt(0).SetString(raw, 10)
		if !ok {
			log.Fatalf("invalid max_lock_per_tx: %q", raw)
		}
	}

	p, err := pool.New(pool.Options{
		FeeRateBps:   config.Config.Pool.FeeRateBps,
		MaxLockPerTx: maxLock,
		Reserve:      res,
		Admin:        roles,
		Relayer:      roles,
		Store:        redis.Store{},
		Events:       redis.Store{},
	})
	if err != nil {
		log.Fatalf("error creating pool: %v", err)
	}

	if err := restore(p); err != nil {
		log.Fatalf("error restoring pool state: %v", err)
	}

	handlers.Setup(p)

	// two worker threads:
	// * periodic snapshot persistence
	// * API serving HTTP server (serves as main worker thread)
	go workers.Worker_snapshot(p)

	workers.Worker_HTTP()
}

func newRoles() (*auth.Roles, error) {
	relayers := make([]common.Address, 0, len(config.Config.Auth.Relayers))
	for _, rc := range config.Config.Auth.Relayers {
		relayers = append(relayers, common.HexToAddress(rc.Address))
	}
	return auth.New(common.HexToAddress(config.Config.Auth.AdminAddress), relayers)
}

func newReserve() (pool.Reserve, error) {
	cfg := config.Config.Reserve
	if cfg.Mode == "erc20" {
		return reserve.NewERC20(cfg.ChainID, cfg.RPCList, cfg.TokenAddress, cfg.CustodianAddress, cfg.CustodianKey)
	}
	log.Print("Reserve mode is not erc20, using in-process ledger")
	return reserve.NewLedger(), nil
}

func restore(p *pool.Pool) error {
	snap, err := redis.LoadSnapshot()
	if err != nil {
		return err
	}
	providers, err := redis.LoadProviders()
	if err != nil {
		return err
	}
	releases, err := redis.LoadReleases()
	if err != nil {
		return err
	}
	locks, err := redis.LoadLocks()
	if err != nil {
		return err
	}
	if snap == nil {
		log.Print("No pool snapshot found, starting from empty state")
	}
	return p.Restore(snap, providers, releases, locks)
}
