package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/redisearch/internal/query"
)

// Store is the engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	IndexManager
	DocumentStore
	Searcher
	SpellChecker
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	// CreateIndex issues FT.CREATE with args as produced by schema.Compile.
	CreateIndex(ctx context.Context, args []string) error
	DropIndex(ctx context.Context, name string, deleteDocuments bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// AddRequest is a single FT.ADD call.
type AddRequest struct {
	Index   string
	Key     string
	Fields  []string // flattened field/value pairs in schema order
	Options query.AddOptions
}

// DocumentStore provides per-document index operations.
type DocumentStore interface {
	AddDocument(ctx context.Context, req *AddRequest) error
	DeleteDocument(ctx context.Context, index, key string, deleteDocument bool) error
	// GetDocument returns the stored hash; db.ErrDocumentNotFound when absent.
	GetDocument(ctx context.Context, key string) (map[string]string, error)
}

// Searcher provides FT.SEARCH operations.
type Searcher interface {
	// Search runs FT.SEARCH. A nil term searches the wildcard.
	Search(ctx context.Context, index string, term *string, q *query.Search) (*SearchResult, error)
	Count(ctx context.Context, index string, term *string, q *query.Search) (int, error)
}

// SpellChecker provides FT.SPELLCHECK.
type SpellChecker interface {
	Spellcheck(ctx context.Context, index, term string, distance int) ([]Suggestion, error)
}

// KVStore provides plain key-value operations outside any index.
type KVStore interface {
	// Get returns db.ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
