package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/timeouts"
)

const (
	profilesCollection = "profiles"
	sessionsCollection = "quest_sessions"
)

// Mongo stores one profile document per user, keyed by uid.
type Mongo struct {
	client   *mongo.Client
	profiles *mongo.Collection
	sessions *mongo.Collection
	log      *zap.Logger
}

type profileDoc struct {
	ID               string `bson:"_id"`
	engine.Aggregate `bson:",inline"`
}

type sessionDoc struct {
	UserID        string `bson:"user_id"`
	SessionRecord `bson:",inline"`
}

func OpenMongo(ctx context.Context, uri, database string, log *zap.Logger) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeouts.RemoteConnect)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return NewMongo(client, database, log), nil
}

func NewMongo(client *mongo.Client, database string, log *zap.Logger) *Mongo {
	if log == nil {
		log = zap.NewNop()
	}
	db := client.Database(database)
	return &Mongo{
		client:   client,
		profiles: db.Collection(profilesCollection),
		sessions: db.Collection(sessionsCollection),
		log:      log,
	}
}

func (m *Mongo) Load(ctx context.Context, uid string) (*engine.Aggregate, error) {
	if err := requireUID(uid); err != nil {
		return nil, err
	}
	doc := profileDoc{Aggregate: baseAggregate()}
	err := m.profiles.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo load: %w", err)
	}
	if err := doc.Aggregate.Validate(); err != nil {
		return nil, err
	}
	return &doc.Aggregate, nil
}

// Save upserts the named fields with $set so fields written by other
// clients survive.
func (m *Mongo) Save(ctx context.Context, uid string, agg engine.Aggregate, fields engine.Field) error {
	if err := requireUID(uid); err != nil {
		return err
	}
	set := bson.M{}
	for _, key := range fields.Keys() {
		if key == "revision" {
			set[key] = agg.Revision
			continue
		}
		set[key] = fieldValue(agg, key)
	}
	if len(set) == 0 {
		return nil
	}

	_, err := m.profiles.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo save: %w", err)
	}
	return nil
}

// Subscribe watches the user's profile document with a change stream.
func (m *Mongo) Subscribe(ctx context.Context, uid string, fn func(engine.Aggregate)) (func(), error) {
	if err := requireUID(uid); err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: uid}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := m.profiles.Watch(ctx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("mongo watch: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			ev := struct {
				FullDocument *profileDoc `bson:"fullDocument"`
			}{FullDocument: &profileDoc{Aggregate: baseAggregate()}}
			if err := stream.Decode(&ev); err != nil {
				m.log.Warn("mongo change decode failed", zap.String("uid", uid), zap.Error(err))
				continue
			}
			if ev.FullDocument == nil {
				continue
			}
			if err := ev.FullDocument.Aggregate.Validate(); err != nil {
				m.log.Warn("mongo change rejected", zap.String("uid", uid), zap.Error(err))
				continue
			}
			fn(ev.FullDocument.Aggregate)
		}
		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			m.log.Warn("mongo change stream ended", zap.String("uid", uid), zap.Error(err))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

func (m *Mongo) LogSession(ctx context.Context, uid string, rec SessionRecord) error {
	if err := requireUID(uid); err != nil {
		return err
	}
	if _, err := m.sessions.InsertOne(ctx, sessionDoc{UserID: uid, SessionRecord: rec}); err != nil {
		return fmt.Errorf("mongo log session: %w", err)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
