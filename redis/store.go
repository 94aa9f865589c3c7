package redis

import "gostablebridge/types"

// Store adapts the package-level persistence functions to the pool's
// Store and EventSink interfaces.
type Store struct{}

func (Store) SaveSnapshot(snap *types.PoolSnapshot) error { return SaveSnapshot(snap) }

func (Store) SaveProvider(rec *types.ProviderRecord) error { return SaveProvider(rec) }

func (Store) SaveRelease(rec *types.BridgeRelease) error { return SaveRelease(rec) }

func (Store) SaveLock(rec *types.BridgeLock) error { return SaveLock(rec) }

// Emit appends the event to the journal. The pool already logged it;
// a journal write failure must not fail the operation.
func (Store) Emit(ev *types.BridgeEvent) {
	_ = AppendEvent(ev)
}
