// Package syncer replicates engine state to a remote store: local changes
// pass through a dedup filter and a debouncer before being pushed, and
// remote snapshots are applied only when newer than local state.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/identity"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/remote"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/timeouts"
)

// Source is the state the coordinator replicates. *engine.Engine satisfies it.
type Source interface {
	Snapshot() engine.Aggregate
	Revision() int64
	ApplyRemote(ctx context.Context, agg engine.Aggregate) bool
	Subscribe(fn func(engine.Change)) (unsubscribe func())
}

type Option func(*Coordinator)

func WithLogger(log *zap.Logger) Option {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		if d >= 0 {
			c.debounce = d
		}
	}
}

// WithOpTimeout bounds each remote attempt.
func WithOpTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.opTimeout = d
		}
	}
}

func WithAttempts(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryInterval sets the first retry delay; later ones grow by 1.5x.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// Status is a point-in-time view of the coordinator for display.
type Status struct {
	UID       string
	Suspended bool
	Pending   bool
	Pushes    int
	LastPush  time.Time
	LastError string
}

type Coordinator struct {
	src   Source
	store remote.Store
	ids   identity.Provider
	log   *zap.Logger

	debounce      time.Duration
	opTimeout     time.Duration
	attempts      int
	retryInterval time.Duration

	// scheduled filters triggers; sent guarantees no identical pushes in a row.
	scheduled *Dedup
	sent      *Dedup
	debouncer *Debouncer

	// pushMu serializes pushes so saves reach the store in order.
	pushMu sync.Mutex

	mu          sync.Mutex
	started     bool
	uid         string
	unsubRemote func()
	unsubLocal  func()
	unsubIDs    func()
	suspended   int
	deferred    bool
	status      Status
}

// New builds a coordinator. A nil store or identity provider makes it
// local-only.
func New(src Source, store remote.Store, ids identity.Provider, opts ...Option) *Coordinator {
	c := &Coordinator{
		src:           src,
		store:         store,
		ids:           ids,
		log:           zap.NewNop(),
		debounce:      timeouts.SyncDebounce,
		opTimeout:     timeouts.RemoteOp,
		attempts:      3,
		retryInterval: 500 * time.Millisecond,
		scheduled:     &Dedup{},
		sent:          &Dedup{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debouncer = NewDebouncer(c.debounce)
	return c
}

// Start subscribes to local changes and identity changes and binds the
// current user.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	unsubLocal := c.src.Subscribe(c.onChange)
	var unsubIDs func()
	var current *identity.User
	if c.ids != nil {
		unsubIDs = c.ids.Subscribe(func(u *identity.User) { c.bind(context.Background(), u) })
		current = c.ids.Current()
	}

	c.mu.Lock()
	c.unsubLocal = unsubLocal
	c.unsubIDs = unsubIDs
	c.mu.Unlock()

	c.bind(ctx, current)
}

// Suspend pauses pushes and remote applies until every returned resume
// function has been called. Local changes made while suspended are pushed
// once on the final resume.
func (c *Coordinator) Suspend() (resume func()) {
	c.mu.Lock()
	c.suspended++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.suspended--
			flush := c.suspended == 0 && c.deferred
			if flush {
				c.deferred = false
			}
			c.mu.Unlock()
			if flush {
				c.schedule(c.src.Snapshot())
			}
		})
	}
}

// Flush runs a pending push now.
func (c *Coordinator) Flush(ctx context.Context) {
	c.debouncer.Flush(ctx)
}

// Push saves the current snapshot immediately, bypassing dedup and the
// debouncer. Unlike background pushes it reports failure to the caller.
func (c *Coordinator) Push(ctx context.Context) error {
	uid := c.currentUID()
	if uid == "" || c.store == nil {
		return ErrLocalOnly
	}
	c.debouncer.Cancel()
	agg := c.src.Snapshot()
	c.scheduled.Mark(agg)
	return c.push(ctx, uid, agg, true)
}

// Close flushes pending work and tears down every subscription. The store is
// left open.
func (c *Coordinator) Close(ctx context.Context) {
	c.mu.Lock()
	unsubLocal, unsubIDs := c.unsubLocal, c.unsubIDs
	c.unsubLocal, c.unsubIDs = nil, nil
	c.mu.Unlock()

	if unsubIDs != nil {
		unsubIDs()
	}
	if unsubLocal != nil {
		unsubLocal()
	}
	c.debouncer.Flush(ctx)
	c.debouncer.Stop()
	c.unbind()
}

func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.status
	st.UID = c.uid
	st.Suspended = c.suspended > 0
	st.Pending = c.debouncer.Pending()
	return st
}

var ErrLocalOnly = errors.New("sync: no signed-in user or remote store")

func (c *Coordinator) currentUID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uid
}

func (c *Coordinator) onChange(ch engine.Change) {
	if ch.Origin == engine.OriginRemote {
		c.scheduled.Mark(ch.Aggregate)
		c.sent.Mark(ch.Aggregate)
		return
	}
	c.mu.Lock()
	if c.suspended > 0 {
		c.deferred = true
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.schedule(ch.Aggregate)
}

// schedule queues agg for a debounced push unless it equals the last
// payload scheduled.
func (c *Coordinator) schedule(agg engine.Aggregate) {
	uid := c.currentUID()
	if uid == "" || c.store == nil {
		return
	}
	if !c.scheduled.Changed(agg) {
		return
	}
	c.debouncer.Trigger(func(ctx context.Context) {
		if err := c.push(ctx, uid, agg, false); err != nil {
			c.log.Warn("sync push abandoned", zap.String("uid", uid), zap.Int64("revision", agg.Revision), zap.Error(err))
		}
	})
}

func (c *Coordinator) push(ctx context.Context, uid string, agg engine.Aggregate, force bool) error {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()

	if force {
		c.sent.Mark(agg)
	} else if !c.sent.Changed(agg) {
		return nil
	}

	_, err := c.retry(ctx, "save", func(attemptCtx context.Context) (struct{}, error) {
		return struct{}{}, c.store.Save(attemptCtx, uid, agg, engine.AllFields)
	})

	if err != nil {
		// Let the next push of the same payload through.
		c.sent.Reset()
	}

	c.mu.Lock()
	if err != nil {
		c.status.LastError = err.Error()
	} else {
		c.status.Pushes++
		c.status.LastPush = time.Now()
		c.status.LastError = ""
	}
	c.mu.Unlock()
	return err
}

// retry runs op with a per-attempt timeout and a bounded exponential backoff.
func (c *Coordinator) retry(ctx context.Context, op string, fn func(context.Context) (struct{}, error)) (struct{}, error) {
	policy := &backoff.ExponentialBackOff{
		InitialInterval:     c.retryInterval,
		RandomizationFactor: 0.1,
		Multiplier:          1.5,
		MaxInterval:         5 * c.retryInterval,
	}
	return backoff.Retry(ctx, func() (struct{}, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
		defer cancel()
		return fn(attemptCtx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.attempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.log.Warn("sync attempt failed", zap.String("op", op), zap.Duration("retry_in", wait), zap.Error(err))
		}),
	)
}

func (c *Coordinator) onRemote(agg engine.Aggregate) {
	c.mu.Lock()
	suspended := c.suspended > 0
	c.mu.Unlock()
	if suspended {
		c.log.Debug("remote snapshot ignored while suspended", zap.Int64("revision", agg.Revision))
		return
	}
	if agg.Revision <= c.src.Revision() {
		return
	}
	c.src.ApplyRemote(context.Background(), agg)
}

// bind switches replication to u. The previous user's pending push is
// flushed first.
func (c *Coordinator) bind(ctx context.Context, u *identity.User) {
	next := ""
	if u != nil {
		next = u.UID
	}
	if next == c.currentUID() && next != "" {
		return
	}

	c.debouncer.Flush(ctx)
	c.unbind()
	c.scheduled.Reset()
	c.sent.Reset()

	c.mu.Lock()
	c.uid = next
	c.mu.Unlock()
	if next == "" || c.store == nil {
		c.log.Info("sync running local-only")
		return
	}

	c.hydrate(ctx, next)

	unsubscribe, err := c.store.Subscribe(ctx, next, c.onRemote)
	if err != nil {
		c.log.Warn("remote subscribe failed", zap.String("uid", next), zap.Error(err))
		return
	}
	c.mu.Lock()
	if c.uid != next {
		c.mu.Unlock()
		unsubscribe()
		return
	}
	c.unsubRemote = unsubscribe
	c.mu.Unlock()
}

// hydrate reconciles with the remote copy: a newer remote replaces local
// state; an older or missing one is overwritten by a push.
func (c *Coordinator) hydrate(ctx context.Context, uid string) {
	var remoteAgg *engine.Aggregate
	_, err := c.retry(ctx, "load", func(attemptCtx context.Context) (struct{}, error) {
		agg, err := c.store.Load(attemptCtx, uid)
		if err != nil {
			var verr *engine.ValidationError
			if errors.As(err, &verr) {
				return struct{}{}, backoff.Permanent(err)
			}
			return struct{}{}, err
		}
		remoteAgg = agg
		return struct{}{}, nil
	})
	if err != nil {
		c.log.Warn("remote load failed", zap.String("uid", uid), zap.Error(err))
		return
	}

	local := c.src.Snapshot()
	switch {
	case remoteAgg != nil && remoteAgg.Revision > local.Revision:
		c.src.ApplyRemote(ctx, *remoteAgg)
	case remoteAgg != nil && remoteAgg.Revision == local.Revision:
		c.scheduled.Mark(local)
		c.sent.Mark(local)
	default:
		c.schedule(local)
	}
}

func (c *Coordinator) unbind() {
	c.mu.Lock()
	unsubscribe := c.unsubRemote
	c.unsubRemote = nil
	c.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}
