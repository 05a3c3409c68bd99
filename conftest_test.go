package redisearch

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// memStore is an in-memory Store: FT.ADD writes hashes, FT.SEARCH returns
// every hash of the index in key order and records the compiled args.
type memStore struct {
	mu          sync.Mutex
	indexes     map[string][]string // name -> FT.CREATE args
	hashes      map[string]map[string]string
	kv          map[string][]byte
	calls       map[string]int
	lastArgs    []string
	suggestions []db.Suggestion
	closed      bool
}

func newMemStore() *memStore {
	return &memStore{
		indexes: make(map[string][]string),
		hashes:  make(map[string]map[string]string),
		kv:      make(map[string][]byte),
		calls:   make(map[string]int),
	}
}

func (m *memStore) record(op string) {
	m.calls[op]++
}

func (m *memStore) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) Close() { m.closed = true }

func (m *memStore) WaitForReady(context.Context, time.Duration) error { return nil }

func (m *memStore) CreateIndex(_ context.Context, args []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpCreate)
	if _, ok := m.indexes[args[0]]; ok {
		return &db.Error{Op: db.OpCreate, Err: db.ErrIndexExists}
	}
	m.indexes[args[0]] = args
	return nil
}

func (m *memStore) DropIndex(_ context.Context, name string, deleteDocuments bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpDropIndex)
	if _, ok := m.indexes[name]; !ok {
		return &db.Error{Op: db.OpDropIndex, Err: db.ErrIndexNotFound}
	}
	delete(m.indexes, name)
	if deleteDocuments {
		for key := range m.hashes {
			if strings.HasPrefix(key, name+":") {
				delete(m.hashes, key)
			}
		}
	}
	return nil
}

func (m *memStore) IndexExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpInfo)
	_, ok := m.indexes[name]
	return ok, nil
}

func (m *memStore) AddDocument(_ context.Context, req *db.AddRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpAdd)
	if _, ok := m.indexes[req.Index]; !ok {
		return &db.Error{Op: db.OpAdd, Err: db.ErrIndexNotFound}
	}
	if _, ok := m.hashes[req.Key]; ok && !req.Options.Replace {
		return &db.Error{Op: db.OpAdd, Err: db.ErrDocumentConflict}
	}
	h := make(map[string]string, len(req.Fields)/2)
	for i := 0; i+1 < len(req.Fields); i += 2 {
		h[req.Fields[i]] = req.Fields[i+1]
	}
	m.hashes[req.Key] = h
	return nil
}

func (m *memStore) DeleteDocument(_ context.Context, _, key string, deleteDocument bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpDel)
	if deleteDocument {
		delete(m.hashes, key)
	}
	return nil
}

func (m *memStore) GetDocument(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpGet)
	h, ok := m.hashes[key]
	if !ok {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrDocumentNotFound}
	}
	return h, nil
}

func (m *memStore) Search(_ context.Context, index string, term *string, q *query.Search) (*db.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpSearch)
	args, err := query.BuildSearchArgs(index, term, q)
	if err != nil {
		return nil, err
	}
	m.lastArgs = args
	if _, ok := m.indexes[index]; !ok {
		return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
	}

	keys := m.keysOf(index)
	res := &db.SearchResult{Total: len(keys)}
	for _, k := range keys {
		res.Entries = append(res.Entries, db.SearchEntry{Key: k, Fields: m.hashes[k]})
	}
	return res, nil
}

func (m *memStore) Count(_ context.Context, index string, term *string, q *query.Search) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpSearch)
	args, err := query.BuildCountArgs(index, term, q)
	if err != nil {
		return 0, err
	}
	m.lastArgs = args
	return len(m.keysOf(index)), nil
}

func (m *memStore) Spellcheck(_ context.Context, index, term string, distance int) ([]db.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpSpellcheck)
	args, err := query.BuildSpellcheckArgs(index, term, distance)
	if err != nil {
		return nil, err
	}
	m.lastArgs = args
	return m.suggestions, nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpKeyGet)
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(db.OpKeySet)
	m.kv[key] = value
	return nil
}

func (m *memStore) keysOf(index string) []string {
	var keys []string
	for k := range m.hashes {
		if strings.HasPrefix(k, index+":") {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func (m *memStore) args() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(m.lastArgs, " ")
}

// Widget is the host type used across SDK tests.
type Widget struct {
	ID    string   `redisearch:"id,id"`
	Title string   `redisearch:"title"`
	Color []string `redisearch:"color"`
	Price float64  `redisearch:"price"`
}

func widgetFields() []Field {
	return []Field{NewSortableText("title"), NewTag("color"), NewNumeric("price")}
}

func newTestClient(opts ...Option) (*Client, *memStore) {
	ms := newMemStore()
	opts = append([]Option{WithRegistry(NewRegistry())}, opts...)
	return NewClientWithStore(ms, opts...), ms
}

func widgets(n int) []*Widget {
	out := make([]*Widget, n)
	for i := range out {
		out[i] = &Widget{ID: fmt.Sprint(i + 1), Title: fmt.Sprintf("widget %d", i+1), Price: float64(i + 1)}
	}
	return out
}
