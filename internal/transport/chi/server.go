// Package chi serves search and document endpoints over registered indexes.
package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/index"
	logpkg "github.com/kailas-cloud/redisearch/internal/logger"
	"github.com/kailas-cloud/redisearch/internal/metrics"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// Resolver finds indexes by their registered type name.
type Resolver interface {
	Lookup(typeName string) (*index.Index, bool)
	All() []*index.Index
}

// Pinger reports engine reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config tunes paging and authentication. Serializers, keyed by type name,
// override attribute mapping for documents written over HTTP.
type Config struct {
	DefaultLimit       int
	MaxLimit           int
	SpellcheckDistance int
	APIKeys            []string
	Serializers        map[string]document.Serializer
}

// Server maps HTTP requests onto index operations.
type Server struct {
	indexes       Resolver
	pinger        Pinger
	cfg           Config
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the gateway server.
func NewServer(indexes Resolver, pinger Pinger, cfg Config, logger *zap.Logger) *Server {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}
	if cfg.SpellcheckDistance <= 0 {
		cfg.SpellcheckDistance = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		indexes:       indexes,
		pinger:        pinger,
		cfg:           cfg,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes builds the router with the full middleware chain.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(s.cfg.APIKeys))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/indexes", func(r chi.Router) {
		r.Get("/", s.ListIndexes)
		r.Get("/{name}/search", s.Search)
		r.Get("/{name}/count", s.Count)
		r.Get("/{name}/spellcheck", s.Spellcheck)
		r.Get("/{name}/documents/{id}", s.GetDocument)
		r.Put("/{name}/documents/{id}", s.PutDocument)
		r.Delete("/{name}/documents/{id}", s.DeleteDocument)
	})
	return r
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.pinger.Ping(r.Context()); err != nil {
		logpkg.FromContext(r.Context()).Warn("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListIndexes handles GET /indexes.
func (s *Server) ListIndexes(w http.ResponseWriter, _ *http.Request) {
	all := s.indexes.All()
	items := make([]indexResponse, len(all))
	for i, ix := range all {
		items[i] = indexResponse{Name: ix.Name(), Fields: ix.Schema().Names()}
	}
	writeJSON(w, http.StatusOK, map[string]any{"indexes": items})
}

// Search handles GET /indexes/{name}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	ix, r, ok := s.lookup(w, r)
	if !ok {
		return
	}
	q, err := s.searchFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	res, err := ix.Search(r.Context(), termParam(r), q)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultToResponse(ix.Name(), res))
}

// Count handles GET /indexes/{name}/count.
func (s *Server) Count(w http.ResponseWriter, r *http.Request) {
	ix, r, ok := s.lookup(w, r)
	if !ok {
		return
	}
	q := query.Search{Verbatim: boolParam(r, "verbatim")}
	n, err := ix.Count(r.Context(), termParam(r), q)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// Spellcheck handles GET /indexes/{name}/spellcheck.
func (s *Server) Spellcheck(w http.ResponseWriter, r *http.Request) {
	ix, r, ok := s.lookup(w, r)
	if !ok {
		return
	}
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "q is required")
		return
	}
	distance, err := intParam(r, "distance", s.cfg.SpellcheckDistance)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	sugs, err := ix.Spellcheck(r.Context(), term, distance)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	items := make([]suggestionResponse, len(sugs))
	for i, sg := range sugs {
		cands := make([]candidateResponse, len(sg.Candidates))
		for j, c := range sg.Candidates {
			cands[j] = candidateResponse{Value: c.Value, Score: c.Score}
		}
		items[i] = suggestionResponse{Term: sg.Term, Candidates: cands}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": items})
}

// GetDocument handles GET /indexes/{name}/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	ix, r, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	fields, err := ix.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hitResponse{
		ID:     id,
		Key:    document.Key(ix.Name(), id),
		Fields: fields,
	})
}

// lookup resolves {name} and tags the request logger with the index.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*index.Index, *http.Request, bool) {
	name := chi.URLParam(r, "name")
	ix, ok := s.indexes.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, CodeIndexNotFound, "index "+strconv.Quote(name)+" is not registered")
		return nil, r, false
	}
	return ix, r.WithContext(logpkg.With(r.Context(), zap.String("index", ix.Name()))), true
}

func (s *Server) searchFromRequest(r *http.Request) (query.Search, error) {
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		return query.Search{}, err
	}
	limit, err := intParam(r, "limit", s.cfg.DefaultLimit)
	if err != nil {
		return query.Search{}, err
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	q := query.Search{
		Offset:     offset,
		Limit:      limit,
		SortBy:     r.URL.Query().Get("sort"),
		SortDesc:   boolParam(r, "desc"),
		Verbatim:   boolParam(r, "verbatim"),
		WithScores: boolParam(r, "scores"),
	}
	if fields := r.URL.Query().Get("fields"); fields != "" {
		q.Return = strings.Split(fields, ",")
	}
	return q, nil
}

// termParam returns nil for an absent or blank q so the engine searches everything.
func termParam(r *http.Request) *string {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		return nil
	}
	return query.Term(q)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &paramError{name: name, value: raw}
	}
	return n, nil
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " " + strconv.Quote(e.value) + ": must be a non-negative integer"
}

type indexResponse struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

type hitResponse struct {
	ID     string            `json:"id"`
	Key    string            `json:"key"`
	Score  *float64          `json:"score,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type searchResponse struct {
	Total   int           `json:"total"`
	Results []hitResponse `json:"results"`
}

type suggestionResponse struct {
	Term       string              `json:"term"`
	Candidates []candidateResponse `json:"candidates"`
}

type candidateResponse struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

func searchResultToResponse(indexName string, res *index.SearchResult) searchResponse {
	prefix := indexName + document.KeySeparator
	out := searchResponse{Total: res.Total, Results: make([]hitResponse, len(res.Entries))}
	for i, e := range res.Entries {
		hit := hitResponse{
			ID:     strings.TrimPrefix(e.Key, prefix),
			Key:    e.Key,
			Fields: e.Fields,
		}
		if e.Score != 0 {
			score := e.Score
			hit.Score = &score
		}
		out.Results[i] = hit
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
