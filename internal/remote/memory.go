package remote

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/engine"
)

// Memory is an in-process Store. Subscribers are called synchronously from
// Save, after the write is visible.
type Memory struct {
	mu       sync.Mutex
	docs     map[string]map[string]string
	subs     map[string]map[int]func(engine.Aggregate)
	nextSub  int
	sessions map[string][]SessionRecord
	saves    int
	log      *zap.Logger
}

func NewMemory(log *zap.Logger) *Memory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Memory{
		log:      log,
		docs:     map[string]map[string]string{},
		subs:     map[string]map[int]func(engine.Aggregate){},
		sessions: map[string][]SessionRecord{},
	}
}

func (m *Memory) Load(ctx context.Context, uid string) (*engine.Aggregate, error) {
	if err := requireUID(uid); err != nil {
		return nil, err
	}
	m.mu.Lock()
	doc := copyDoc(m.docs[uid])
	m.mu.Unlock()
	return decodeFields(doc)
}

func (m *Memory) Save(ctx context.Context, uid string, agg engine.Aggregate, fields engine.Field) error {
	if err := requireUID(uid); err != nil {
		return err
	}
	values, err := encodeFields(agg, fields)
	if err != nil {
		return err
	}

	m.mu.Lock()
	doc, ok := m.docs[uid]
	if !ok {
		doc = map[string]string{}
		m.docs[uid] = doc
	}
	for k, v := range values {
		doc[k] = v
	}
	m.saves++
	snapshot := copyDoc(doc)
	subs := make([]func(engine.Aggregate), 0, len(m.subs[uid]))
	for _, fn := range m.subs[uid] {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	if len(subs) == 0 {
		return nil
	}
	// The write has landed; a document that no longer decodes is only
	// withheld from subscribers.
	full, err := decodeFields(snapshot)
	if err != nil {
		m.log.Warn("memory fan-out decode failed", zap.String("uid", uid), zap.Error(err))
		return nil
	}
	if full == nil {
		return nil
	}
	for _, fn := range subs {
		fn(full.Clone())
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, uid string, fn func(engine.Aggregate)) (func(), error) {
	if err := requireUID(uid); err != nil {
		return nil, err
	}
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	if m.subs[uid] == nil {
		m.subs[uid] = map[int]func(engine.Aggregate){}
	}
	m.subs[uid][id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs[uid], id)
			m.mu.Unlock()
		})
	}, nil
}

func (m *Memory) LogSession(ctx context.Context, uid string, rec SessionRecord) error {
	if err := requireUID(uid); err != nil {
		return err
	}
	m.mu.Lock()
	m.sessions[uid] = append(m.sessions[uid], rec)
	m.mu.Unlock()
	return nil
}

// Sessions returns the sessions logged for uid.
func (m *Memory) Sessions(uid string) []SessionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SessionRecord(nil), m.sessions[uid]...)
}

// Saves counts Save calls across all users.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Put overwrites a raw field value. Tests use it to simulate foreign writers.
func (m *Memory) Put(uid, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[uid] == nil {
		m.docs[uid] = map[string]string{}
	}
	m.docs[uid][key] = value
}

func (m *Memory) Close(ctx context.Context) error { return nil }

func copyDoc(doc map[string]string) map[string]string {
	if doc == nil {
		return nil
	}
	out := make(map[string]string, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
