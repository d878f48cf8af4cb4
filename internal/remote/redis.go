package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/timeouts"
)

const redisKeyPrefix = "aq:user:"

func redisProfileKey(uid string) string { return redisKeyPrefix + uid }
func redisChannel(uid string) string { return redisKeyPrefix + uid + ":changed" }
func redisSessionsKey(uid string) string { return redisKeyPrefix + uid + ":sessions" }

// Redis stores each user as a hash of JSON fields and announces writes on a
// per-user pub/sub channel.
type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

func OpenRedis(ctx context.Context, addr, password string, db int, log *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.RemoteConnect)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedis(client, log), nil
}

func NewRedis(client *redis.Client, log *zap.Logger) *Redis {
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis{client: client, log: log}
}

func (r *Redis) Load(ctx context.Context, uid string) (*engine.Aggregate, error) {
	if err := requireUID(uid); err != nil {
		return nil, err
	}
	values, err := r.client.HGetAll(ctx, redisProfileKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load: %w", err)
	}
	return decodeFields(values)
}

func (r *Redis) Save(ctx context.Context, uid string, agg engine.Aggregate, fields engine.Field) error {
	if err := requireUID(uid); err != nil {
		return err
	}
	values, err := encodeFields(agg, fields)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	hash := make(map[string]any, len(values))
	for k, v := range values {
		hash[k] = v
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisProfileKey(uid), hash)
		pipe.Publish(ctx, redisChannel(uid), fields.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

// Subscribe re-reads the hash on every change notification for uid.
func (r *Redis) Subscribe(ctx context.Context, uid string, fn func(engine.Aggregate)) (func(), error) {
	if err := requireUID(uid); err != nil {
		return nil, err
	}
	pubsub := r.client.Subscribe(ctx, redisChannel(uid))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	subCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range pubsub.Channel() {
			loadCtx, cancelLoad := context.WithTimeout(subCtx, timeouts.RemoteOp)
			agg, err := r.Load(loadCtx, uid)
			cancelLoad()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					r.log.Warn("redis snapshot reload failed", zap.String("uid", uid), zap.Error(err))
				}
				continue
			}
			if agg != nil {
				fn(*agg)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			_ = pubsub.Close()
			<-done
		})
	}, nil
}

func (r *Redis) LogSession(ctx context.Context, uid string, rec SessionRecord) error {
	if err := requireUID(uid); err != nil {
		return err
	}
	data, err := jsonString(rec)
	if err != nil {
		return err
	}
	if err := r.client.RPush(ctx, redisSessionsKey(uid), data).Err(); err != nil {
		return fmt.Errorf("redis log session: %w", err)
	}
	return nil
}

func (r *Redis) Close(ctx context.Context) error {
	return r.client.Close()
}
