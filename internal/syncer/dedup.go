package syncer

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

// Dedup drops aggregates whose canonical encoding equals the last one
// scheduled. The revision is excluded from the encoding since every local
// write stamps a fresh one.
type Dedup struct {
	mu   sync.Mutex
	last []byte
}

// Canonical returns the encoding Dedup compares. Empty and nil collections
// encode the same.
func Canonical(agg engine.Aggregate) ([]byte, error) {
	agg.Revision = 0
	if len(agg.Habits) == 0 {
		agg.Habits = nil
	}
	if len(agg.Achievements) == 0 {
		agg.Achievements = nil
	}
	if len(agg.DailyActivities) == 0 {
		agg.DailyActivities = nil
	}
	if len(agg.UserRoles.Roles) == 0 {
		agg.UserRoles.Roles = nil
	}
	if len(agg.UserRoles.FitnessTypes) == 0 {
		agg.UserRoles.FitnessTypes = nil
	}
	return json.Marshal(agg)
}

// Changed reports whether agg differs from the last recorded payload and,
// when it does, records it.
func (d *Dedup) Changed(agg engine.Aggregate) bool {
	data, err := Canonical(agg)
	if err != nil {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last != nil && bytes.Equal(d.last, data) {
		return false
	}
	d.last = data
	return true
}

// Mark records agg as the baseline without reporting a change.
func (d *Dedup) Mark(agg engine.Aggregate) {
	data, err := Canonical(agg)
	if err != nil {
		return
	}
	d.mu.Lock()
	d.last = data
	d.mu.Unlock()
}

func (d *Dedup) Reset() {
	d.mu.Lock()
	d.last = nil
	d.mu.Unlock()
}
