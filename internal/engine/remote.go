package engine

import (
	"context"

	"go.uber.org/zap"
)

// ApplyRemote replaces local state with a snapshot from the remote replica.
// Snapshots that fail validation or are not newer than the local revision are
// ignored. Unlocked achievements are never relocked. Observers see the change
// with OriginRemote.
func (e *Engine) ApplyRemote(ctx context.Context, agg Aggregate) bool {
	if err := agg.Validate(); err != nil {
		e.log.Warn("ignoring remote snapshot", zap.Error(err))
		return false
	}

	e.mu.Lock()
	if agg.Revision <= e.revision {
		e.mu.Unlock()
		return false
	}
	e.replaceLocked(agg)
	e.commitLocked(ctx, AllFields, OriginRemote)
	return true
}
