package index

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/query"
	"github.com/kailas-cloud/redisearch/internal/schema"
)

// mockStore implements Store for tests and records every engine call.
type mockStore struct {
	mu    sync.Mutex
	calls []string

	createIndexFn    func(ctx context.Context, args []string) error
	dropIndexFn      func(ctx context.Context, name string, deleteDocuments bool) error
	indexExistsFn    func(ctx context.Context, name string) (bool, error)
	addDocumentFn    func(ctx context.Context, req *db.AddRequest) error
	deleteDocumentFn func(ctx context.Context, index, key string, deleteDocument bool) error
	getDocumentFn    func(ctx context.Context, key string) (map[string]string, error)
	searchFn         func(ctx context.Context, index string, term *string, q *query.Search) (*db.SearchResult, error)
	countFn          func(ctx context.Context, index string, term *string, q *query.Search) (int, error)
	spellcheckFn     func(ctx context.Context, index, term string, distance int) ([]db.Suggestion, error)
}

func (m *mockStore) record(cmd string) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()
}

func (m *mockStore) count(cmd string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == cmd {
			n++
		}
	}
	return n
}

func (m *mockStore) CreateIndex(ctx context.Context, args []string) error {
	m.record(db.OpCreate)
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, args)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string, deleteDocuments bool) error {
	m.record(db.OpDropIndex)
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name, deleteDocuments)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	m.record(db.OpInfo)
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return true, nil
}

func (m *mockStore) AddDocument(ctx context.Context, req *db.AddRequest) error {
	m.record(db.OpAdd)
	if m.addDocumentFn != nil {
		return m.addDocumentFn(ctx, req)
	}
	return nil
}

func (m *mockStore) DeleteDocument(ctx context.Context, index, key string, deleteDocument bool) error {
	m.record(db.OpDel)
	if m.deleteDocumentFn != nil {
		return m.deleteDocumentFn(ctx, index, key, deleteDocument)
	}
	return nil
}

func (m *mockStore) GetDocument(ctx context.Context, key string) (map[string]string, error) {
	m.record(db.OpGet)
	if m.getDocumentFn != nil {
		return m.getDocumentFn(ctx, key)
	}
	return nil, db.ErrDocumentNotFound
}

func (m *mockStore) Search(ctx context.Context, index string, term *string, q *query.Search) (*db.SearchResult, error) {
	m.record(db.OpSearch)
	if m.searchFn != nil {
		return m.searchFn(ctx, index, term, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Count(ctx context.Context, index string, term *string, q *query.Search) (int, error) {
	m.record(db.OpSearch)
	if m.countFn != nil {
		return m.countFn(ctx, index, term, q)
	}
	return 0, nil
}

func (m *mockStore) Spellcheck(ctx context.Context, index, term string, distance int) ([]db.Suggestion, error) {
	m.record(db.OpSpellcheck)
	if m.spellcheckFn != nil {
		return m.spellcheckFn(ctx, index, term, distance)
	}
	return nil, nil
}

type widget struct {
	ID    string `redisearch:"id,id"`
	Title string `redisearch:"title"`
	Color string `redisearch:"color"`
}

func newTestIndex(t *testing.T) (*Index, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	sch := schema.NewBuilder("widgets").SortableText("title").Tag("color").MustBuild()
	ix, err := New(sch, ms)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ix, ms
}

func mustDoc(t *testing.T, ix *Index, w widget) *document.Document {
	t.Helper()
	doc, err := ix.Document(&w, nil)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	return doc
}
