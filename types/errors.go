package types

import "errors"

// Rejection taxonomy for pool operations. All of these are synchronous:
// an operation that returns one of them has not touched any counter or
// record. Compare with errors.Is, callers may see them wrapped.
var (
	ErrZeroAmount            = errors.New("amount or derived quantity is zero")
	ErrInsufficientLiquidity = errors.New("insufficient available liquidity")
	ErrInsufficientShares    = errors.New("insufficient provider shares")
	ErrNonceAlreadyUsed      = errors.New("bridge nonce already used")
	ErrBridgeNotExecuted     = errors.New("bridge nonce not in executed state")
	ErrInvalidFeeRate        = errors.New("fee rate must be between 0 and 10000 bps")
	ErrZeroAddress           = errors.New("zero or missing address")
	ErrUnauthorized          = errors.New("caller lacks required capability")
	ErrPaused                = errors.New("pool is paused")
	ErrLockLimitExceeded     = errors.New("lock amount exceeds per-tx limit")
	ErrLockNotFound          = errors.New("bridge lock not found")
	ErrLockAlreadyReleased   = errors.New("bridge lock already released")
)
