// Package remote replicates the engine aggregate to a per-user document in a
// remote store and streams changes made by other clients.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/config"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

var ErrNoUser = errors.New("remote: user id is required")

// Store is the remote replica of each user's aggregate.
type Store interface {
	// Load returns the stored aggregate, or nil when the user has none.
	Load(ctx context.Context, uid string) (*engine.Aggregate, error)
	// Save merges the named fields of agg into the user's document.
	Save(ctx context.Context, uid string, agg engine.Aggregate, fields engine.Field) error
	// Subscribe calls fn with every snapshot written for uid until the
	// returned function is called.
	Subscribe(ctx context.Context, uid string, fn func(engine.Aggregate)) (unsubscribe func(), err error)
	Close(ctx context.Context) error
}

// SessionRecord is a finished quest session logged for analytics.
type SessionRecord struct {
	QuestID     string    `json:"questId" bson:"quest_id"`
	Pomodoros   int       `json:"pomodoros" bson:"pomodoros"`
	XPAwarded   int       `json:"xpAwarded" bson:"xp_awarded"`
	StartedAt   time.Time `json:"startedAt" bson:"started_at"`
	CompletedAt time.Time `json:"completedAt" bson:"completed_at"`
}

// SessionLog is a best-effort append-only log of finished sessions.
type SessionLog interface {
	LogSession(ctx context.Context, uid string, rec SessionRecord) error
}

// Open connects to the configured backend. It returns a nil Store for the
// local-only backend.
func Open(ctx context.Context, cfg config.RemoteConfig, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case "", config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return NewMemory(log), nil
	case config.BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	default:
		return nil, fmt.Errorf("remote: unknown backend %q", cfg.Backend)
	}
}

func requireUID(uid string) error {
	if uid == "" {
		return ErrNoUser
	}
	return nil
}
