package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/index"
	"github.com/kailas-cloud/redisearch/internal/query"
	"github.com/kailas-cloud/redisearch/internal/schema"
)

// fakeStore embeds index.Store so unused methods panic when called.
type fakeStore struct {
	index.Store
	pingErr      error
	searchFn     func(term *string, q *query.Search) (*db.SearchResult, error)
	countFn      func(term *string) (int, error)
	spellcheckFn func(term string, distance int) ([]db.Suggestion, error)
	getFn        func(key string) (map[string]string, error)
	exists       bool
	addFn        func(req *db.AddRequest) error
	delFn        func(key string, deleteDocument bool) error
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) Search(_ context.Context, _ string, term *string, q *query.Search) (*db.SearchResult, error) {
	return f.searchFn(term, q)
}

func (f *fakeStore) Count(_ context.Context, _ string, term *string, _ *query.Search) (int, error) {
	return f.countFn(term)
}

func (f *fakeStore) Spellcheck(_ context.Context, _, term string, distance int) ([]db.Suggestion, error) {
	return f.spellcheckFn(term, distance)
}

func (f *fakeStore) GetDocument(_ context.Context, key string) (map[string]string, error) {
	return f.getFn(key)
}

func (f *fakeStore) IndexExists(context.Context, string) (bool, error) { return f.exists, nil }

func (f *fakeStore) AddDocument(_ context.Context, req *db.AddRequest) error {
	return f.addFn(req)
}

func (f *fakeStore) DeleteDocument(_ context.Context, _, key string, deleteDocument bool) error {
	return f.delFn(key, deleteDocument)
}

func newTestServer(t *testing.T, fs *fakeStore) http.Handler {
	t.Helper()
	return newTestServerWith(t, fs, nil)
}

func newTestServerWith(t *testing.T, fs *fakeStore, serializers map[string]document.Serializer) http.Handler {
	t.Helper()
	reg := index.NewRegistry()
	_, err := reg.Register("widget", func() (*index.Index, error) {
		sch := schema.NewBuilder("widgets").SortableText("title").Tag("color").MustBuild()
		return index.New(sch, fs)
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	cfg := Config{DefaultLimit: 10, MaxLimit: 50, SpellcheckDistance: 1, Serializers: serializers}
	srv := NewServer(reg, fs, cfg, zap.NewNop())
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestSearch_WildcardDefaults(t *testing.T) {
	var gotTerm *string
	var gotQuery query.Search
	fs := &fakeStore{searchFn: func(term *string, q *query.Search) (*db.SearchResult, error) {
		gotTerm, gotQuery = term, *q
		return &db.SearchResult{Total: 7, Entries: []db.SearchEntry{
			{Key: "widgets:1", Fields: map[string]string{"title": "lamp"}},
		}}, nil
	}}

	rr := do(t, newTestServer(t, fs), "/indexes/widget/search")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if gotTerm != nil {
		t.Errorf("expected nil term, got %q", *gotTerm)
	}
	if gotQuery.Limit != 10 || gotQuery.Offset != 0 {
		t.Errorf("unexpected paging %d/%d", gotQuery.Offset, gotQuery.Limit)
	}

	resp := decode[searchResponse](t, rr)
	if resp.Total != 7 || len(resp.Results) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Results[0].ID != "1" || resp.Results[0].Key != "widgets:1" {
		t.Errorf("unexpected hit %+v", resp.Results[0])
	}
	if resp.Results[0].Score != nil {
		t.Errorf("expected no score without scores=true")
	}
}

func TestSearch_Params(t *testing.T) {
	var gotTerm *string
	var gotQuery query.Search
	fs := &fakeStore{searchFn: func(term *string, q *query.Search) (*db.SearchResult, error) {
		gotTerm, gotQuery = term, *q
		return &db.SearchResult{Entries: []db.SearchEntry{{Key: "widgets:2", Score: 1.5}}}, nil
	}}

	rr := do(t, newTestServer(t, fs),
		"/indexes/widget/search?q=lamp&offset=5&limit=500&sort=title&desc=true&fields=title,color&scores=1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if gotTerm == nil || *gotTerm != "lamp" {
		t.Errorf("unexpected term %v", gotTerm)
	}
	if gotQuery.Offset != 5 || gotQuery.Limit != 50 {
		t.Errorf("expected offset 5 and clamped limit 50, got %d/%d", gotQuery.Offset, gotQuery.Limit)
	}
	if gotQuery.SortBy != "title" || !gotQuery.SortDesc || !gotQuery.WithScores {
		t.Errorf("unexpected query %+v", gotQuery)
	}
	if len(gotQuery.Return) != 2 || gotQuery.Return[1] != "color" {
		t.Errorf("unexpected return fields %v", gotQuery.Return)
	}
	resp := decode[searchResponse](t, rr)
	if resp.Results[0].Score == nil || *resp.Results[0].Score != 1.5 {
		t.Errorf("expected score 1.5, got %+v", resp.Results[0])
	}
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
		wantBody string
	}{
		{"unregistered", "/indexes/gadget/search", nil, http.StatusNotFound, CodeIndexNotFound},
		{"bad offset", "/indexes/widget/search?offset=-1", nil, http.StatusBadRequest, CodeBadRequest},
		{"bad limit", "/indexes/widget/search?limit=ten", nil, http.StatusBadRequest, CodeBadRequest},
		{"missing index", "/indexes/widget/search",
			&db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}, http.StatusNotFound, CodeIndexNotFound},
		{"invalid query", "/indexes/widget/search",
			fmt.Errorf("sort: %w", query.ErrInvalidQuery), http.StatusBadRequest, CodeInvalidQuery},
		{"connectivity", "/indexes/widget/search",
			&db.ConnectivityError{Op: db.OpSearch, Err: context.DeadlineExceeded}, http.StatusServiceUnavailable, CodeUnavailable},
		{"internal", "/indexes/widget/search",
			&db.Error{Op: db.OpSearch, Err: errors.New("Syntax error")}, http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &fakeStore{searchFn: func(*string, *query.Search) (*db.SearchResult, error) {
				if tc.err == nil {
					t.Error("unexpected engine call")
					return &db.SearchResult{}, nil
				}
				return nil, tc.err
			}}
			rr := do(t, newTestServer(t, fs), tc.target)
			if rr.Code != tc.wantCode {
				t.Fatalf("got %d, want %d: %s", rr.Code, tc.wantCode, rr.Body.String())
			}
			if resp := decode[ErrorResponse](t, rr); resp.Code != tc.wantBody {
				t.Errorf("got code %q, want %q", resp.Code, tc.wantBody)
			}
		})
	}
}

func TestCount(t *testing.T) {
	fs := &fakeStore{countFn: func(term *string) (int, error) {
		if term == nil || *term != "lamp" {
			t.Errorf("unexpected term %v", term)
		}
		return 3, nil
	}}
	rr := do(t, newTestServer(t, fs), "/indexes/widget/count?q=lamp")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if resp := decode[map[string]int](t, rr); resp["count"] != 3 {
		t.Errorf("unexpected count %v", resp)
	}
}

func TestSpellcheck_PreservesOrder(t *testing.T) {
	fs := &fakeStore{spellcheckFn: func(term string, distance int) ([]db.Suggestion, error) {
		if term != "helo wrld" || distance != 1 {
			t.Errorf("unexpected args %q %d", term, distance)
		}
		return []db.Suggestion{
			{Term: "helo", Candidates: []db.Candidate{{Value: "hello", Score: 0.6}, {Value: "help", Score: 0.2}}},
			{Term: "wrld", Candidates: []db.Candidate{{Value: "world", Score: 1}}},
		}, nil
	}}
	rr := do(t, newTestServer(t, fs), "/indexes/widget/spellcheck?q=helo+wrld")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decode[struct {
		Suggestions []suggestionResponse `json:"suggestions"`
	}](t, rr)
	if len(resp.Suggestions) != 2 || resp.Suggestions[0].Term != "helo" || resp.Suggestions[1].Term != "wrld" {
		t.Fatalf("unexpected suggestions %+v", resp.Suggestions)
	}
	if resp.Suggestions[0].Candidates[0].Value != "hello" {
		t.Errorf("candidate order changed: %+v", resp.Suggestions[0].Candidates)
	}
}

func TestSpellcheck_Validation(t *testing.T) {
	fs := &fakeStore{spellcheckFn: func(_ string, distance int) ([]db.Suggestion, error) {
		return nil, fmt.Errorf("distance %d: %w", distance, query.ErrInvalidQuery)
	}}
	h := newTestServer(t, fs)

	if rr := do(t, h, "/indexes/widget/spellcheck"); rr.Code != http.StatusBadRequest {
		t.Errorf("missing q: got %d", rr.Code)
	}
	if rr := do(t, h, "/indexes/widget/spellcheck?q=x&distance=9"); rr.Code != http.StatusBadRequest {
		t.Errorf("bad distance: got %d", rr.Code)
	}
}

func TestGetDocument(t *testing.T) {
	fs := &fakeStore{getFn: func(key string) (map[string]string, error) {
		if key == "widgets:1" {
			return map[string]string{"title": "lamp"}, nil
		}
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrDocumentNotFound}
	}}
	h := newTestServer(t, fs)

	rr := do(t, h, "/indexes/widget/documents/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if hit := decode[hitResponse](t, rr); hit.Key != "widgets:1" || hit.Fields["title"] != "lamp" {
		t.Errorf("unexpected hit %+v", hit)
	}

	rr = do(t, h, "/indexes/widget/documents/2")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing doc: got %d", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != CodeDocumentNotFound {
		t.Errorf("unexpected code %q", resp.Code)
	}
}

func TestHealthAndListing(t *testing.T) {
	fs := &fakeStore{}
	h := newTestServer(t, fs)

	if rr := do(t, h, "/healthz"); rr.Code != http.StatusOK {
		t.Errorf("healthz: got %d", rr.Code)
	}
	fs.pingErr = &db.ConnectivityError{Op: db.OpPing, Err: errors.New("refused")}
	if rr := do(t, h, "/healthz"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("healthz down: got %d", rr.Code)
	}

	rr := do(t, h, "/indexes")
	if rr.Code != http.StatusOK {
		t.Fatalf("list: got %d", rr.Code)
	}
	resp := decode[struct {
		Indexes []indexResponse `json:"indexes"`
	}](t, rr)
	if len(resp.Indexes) != 1 || resp.Indexes[0].Name != "widgets" || len(resp.Indexes[0].Fields) != 2 {
		t.Errorf("unexpected listing %+v", resp.Indexes)
	}

	if rr := do(t, h, "/metrics"); rr.Code != http.StatusOK {
		t.Errorf("metrics: got %d", rr.Code)
	}
}

func TestRecovererReturnsJSON(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := do(t, h, "/")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != CodeInternal {
		t.Errorf("unexpected code %q", resp.Code)
	}
}
