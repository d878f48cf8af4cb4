// Package app wires configuration, logging, the local cache, the engine, the
// remote store, identity, the sync coordinator and the quest generator into
// one handle the CLI and TUI share.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/config"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/identity"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/logging"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/questgen"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/remote"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/storage"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/syncer"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/timeouts"
)

type App struct {
	Config    config.Config
	Log       *zap.Logger
	Engine    *engine.Engine
	Sessions  *storage.SessionRepo
	Store     remote.Store
	Identity  *identity.Static
	Sync      *syncer.Coordinator
	Generator questgen.Generator

	db    *sql.DB
	cache *storage.Cache
	now   func() time.Time
}

type Option func(*options)

type options struct {
	log       *zap.Logger
	store     remote.Store
	generator questgen.Generator
	now       func() time.Time
	debounce  *time.Duration
}

// WithLogger replaces the logger built from cfg.Log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithStore replaces the store selected by cfg.Remote.
func WithStore(s remote.Store) Option {
	return func(o *options) { o.store = s }
}

func WithGenerator(g questgen.Generator) Option {
	return func(o *options) { o.generator = g }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = &d }
}

// Open builds the application from cfg: it loads cached state, binds the
// configured user (hydrating from the remote store) and records today's
// login, which also runs the day rollover.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		l, err := logging.New(cfg.Log)
		if err != nil {
			return nil, err
		}
		log = l
	}
	now := o.now
	if now == nil {
		now = time.Now
	}

	user, err := ResolveUser(cfg.Identity)
	if err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		if cfg.DBPath, err = storage.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Sessions: storage.NewSessionRepo(db),
		Identity: identity.NewStatic(user),
		db:       db,
		cache:    storage.NewCache(db),
		now:      now,
	}

	a.Engine = engine.New(a.cache, engine.WithLogger(log.Named("engine")), engine.WithClock(now))
	if err := a.Engine.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load cached state: %w", err)
	}

	a.Store = o.store
	if a.Store == nil {
		store, err := remote.Open(ctx, cfg.Remote, log.Named("remote"))
		if err != nil {
			log.Warn("remote store unavailable, running local-only", zap.String("backend", cfg.Remote.Backend), zap.Error(err))
		} else {
			a.Store = store
		}
	}

	a.Generator = o.generator
	if a.Generator == nil {
		g, err := questgen.New(cfg.LLM, log.Named("questgen"))
		if err != nil {
			log.Warn("quest generator unavailable, using fallback content", zap.Error(err))
			g = questgen.Fallback{}
		}
		a.Generator = g
	}

	debounce := cfg.Sync.Debounce
	if o.debounce != nil {
		debounce = *o.debounce
	}
	a.Sync = syncer.New(a.Engine, a.Store, a.Identity,
		syncer.WithLogger(log.Named("sync")),
		syncer.WithDebounce(debounce),
		syncer.WithOpTimeout(cfg.Sync.OpTimeout),
		syncer.WithAttempts(cfg.Sync.Attempts),
	)
	a.Sync.Start(ctx)
	a.Engine.RecordLogin(ctx)
	return a, nil
}

// ResolveUser picks the signed-in user: a verified token wins over a bare
// UID; neither means signed out.
func ResolveUser(cfg config.IdentityConfig) (*identity.User, error) {
	if strings.TrimSpace(cfg.Token) != "" {
		u, err := identity.FromToken(cfg.Token, cfg.TokenSecret)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	if uid := strings.TrimSpace(cfg.UID); uid != "" {
		return &identity.User{UID: uid, DisplayName: cfg.DisplayName, Email: cfg.Email}, nil
	}
	return nil, nil
}

// ResetLocal wipes local progress and session history. The remote copy is
// untouched and hydrates again on the next open.
func (a *App) ResetLocal(ctx context.Context) error {
	a.Engine.Reset(ctx)
	return a.cache.Clear(ctx)
}

// Close flushes pending sync work and releases the store and database.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()

	a.Sync.Close(ctx)
	var errs []error
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close remote store: %w", err))
		}
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close db: %w", err))
	}
	_ = a.Log.Sync()
	return errors.Join(errs...)
}
