package config

type Configuration struct {
	// Server config
	Server struct {
		UseSSL    bool   `yaml:"ssl"`
		Port      int    `yaml:"port"`
		RedisPort int    `yaml:"redis_port"`
		RedisHost string `yaml:"redis_host"`
	} `yaml:"server"`
	// Pool parameters applied at startup (fee can be changed at runtime by admin)
	Pool struct {
		FeeRateBps   uint64 `yaml:"fee_rate_bps"`
		MaxLockPerTx string `yaml:"max_lock_per_tx"` // base units, empty or "0" disables the limit
	} `yaml:"pool"`
	// API credentials mapped to on-ledger identities
	Auth struct {
		AdminAddress string              `yaml:"admin_address"`
		AdminKey     string              `yaml:"admin_key"`
		Relayers     []RelayerCredential `yaml:"relayers"`
	} `yaml:"auth"`
	// Reserve asset (stablecoin) custody config
	Reserve struct {
		// "erc20" moves real tokens through the configured chain,
		// "memory" keeps an in-process ledger (dev/test)
		Mode string `yaml:"mode"`

		ChainID      int64    `yaml:"chain_id"`
		RPCList      []string `yaml:"rpc_list"`
		TokenAddress string   `yaml:"token_address"`
		// custodian wallet holding the pool's on-chain balance
		CustodianAddress string `yaml:"custodian_address"`
		// important private stuff
		CustodianKey string `yaml:"custodian_key"`
	} `yaml:"reserve"`
}

type RelayerCredential struct {
	Address string `yaml:"address"`
	Key     string `yaml:"key"`
}

var Config Configuration

// fee rates are basis points over this denominator
const BPS_DENOMINATOR = 10000

// maximum number of reserve RPC submission retries
const RESERVE_RETRIES = 3

// how often the snapshot worker persists pool state
const SNAPSHOT_INTERVAL_SECONDS = 30
