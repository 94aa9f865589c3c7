package types

// All stablecoin amounts are strings with decimal integers in the token's
// base units (e.g. 1e6 for USDC-style tokens), same for LP share counts.
// Strings keep redis records and API payloads lossless regardless of the
// token's decimals.

// Release lifecycle for a bridge nonce. A nonce with no record is
// unexecuted; a reverted nonce stays reverted and cannot be executed again.
const (
	ReleaseStatusExecuted = "executed"
	ReleaseStatusReverted = "reverted"
)

// BridgeRelease is the registry record of one inbound release, keyed by the
// relayer-supplied nonce. Created on the first successful execute.
type BridgeRelease struct {
	ID          string
	Nonce       uint64
	Status      string
	Recipient   string // cleared on revert
	Amount      string // net amount after fee; "0" after revert
	Fee         string // retained in the pool, kept for audit after revert
	SourceChain uint64
	Relayer     string
	TsExecuted  int64
	TsReverted  int64
}

// BridgeLock is one outbound lock record: funds pulled into the pool and
// held in the locked tier until the relayer confirms or releases them.
type BridgeLock struct {
	ID        string
	Nonce     uint64
	Sender    string
	Amount    string
	DestChain uint64
	Recipient string // recipient on the destination chain, opaque here
	Released  bool
	TsLocked  int64
}

// ProviderRecord persists one liquidity provider's share balance.
// Records are never deleted; a full withdrawal leaves shares at "0".
type ProviderRecord struct {
	Address   string
	Shares    string
	TsUpdated int64
}

// PoolSnapshot is the persisted copy of the pool counters. The in-memory
// pool is authoritative at runtime; the snapshot seeds it on restart.
type PoolSnapshot struct {
	TotalLiquidity     string
	AvailableLiquidity string
	LockedLiquidity    string
	TotalShares        string
	FeeRateBps         uint64
	Paused             bool
	NextLockNonce      uint64
	TsSaved            int64
}

// Event kinds, one per successful mutating operation. The journal is
// append-only: a revert adds an event, it never retracts the release event.
const (
	EventDeposit      = "deposit"
	EventWithdraw     = "withdraw"
	EventRelease      = "release"
	EventRevert       = "revert"
	EventLock         = "lock"
	EventLockReleased = "lockreleased"
	EventFeeUpdate    = "feeupdate"
	EventPause        = "pause"
)

// BridgeEvent is a single journal entry consumed by off-chain indexers and
// relayers. Unused fields stay at their zero value for a given kind.
type BridgeEvent struct {
	ID          string
	Kind        string
	Provider    string // depositor / withdrawer / lock sender
	Recipient   string
	Amount      string
	Shares      string // minted or burned
	Fee         string
	Nonce       uint64
	SourceChain uint64
	DestChain   uint64
	Relayer     string
	FeeRateBps  uint64
	Paused      bool
	TsCreated   int64
}
