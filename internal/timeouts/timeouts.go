// Package timeouts defines shared durations used across the sync pipeline,
// remote stores and the quest generator.
package timeouts

import "time"

// SyncDebounce is the quiet period after the last local change before the
// aggregate is pushed to the remote store.
const SyncDebounce = 1 * time.Second

// RemoteOp caps a single remote store call (load, save, session log).
const RemoteOp = 5 * time.Second

// RemoteConnect caps the initial connection to the remote store.
const RemoteConnect = 10 * time.Second

// Generate caps a single generative model call.
const Generate = 30 * time.Second

// Shutdown limits how long the final flush may take on exit.
const Shutdown = 5 * time.Second
