// Package index binds a schema to a RediSearch index and runs the index
// lifecycle, document, search and spellcheck commands against a Store.
package index

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/query"
	"github.com/kailas-cloud/redisearch/internal/schema"
)

// Index is one RediSearch index. It is safe for concurrent use; the schema
// is immutable after New.
type Index struct {
	name     string
	schema   *schema.Schema
	store    Store
	logger   *zap.Logger
	recorder Recorder
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(ix *Index) {
		if l != nil {
			ix.logger = l
		}
	}
}

// WithRecorder sets the reindex outcome recorder.
func WithRecorder(r Recorder) Option {
	return func(ix *Index) { ix.recorder = r }
}

// New creates an Index over sch. The index name is the schema's.
func New(sch *schema.Schema, store Store, opts ...Option) (*Index, error) {
	if sch == nil {
		return nil, fmt.Errorf("index: schema is required: %w", schema.ErrInvalidSchema)
	}
	if store == nil {
		return nil, errors.New("index: store is required")
	}
	ix := &Index{
		name:   sch.IndexName(),
		schema: sch,
		store:  store,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(ix)
	}
	ix.logger = ix.logger.With(zap.String("index", ix.name))
	return ix, nil
}

// Name returns the engine-side index name.
func (ix *Index) Name() string { return ix.name }

// Schema returns the bound schema.
func (ix *Index) Schema() *schema.Schema { return ix.schema }

// Create issues FT.CREATE. An existing index yields ErrIndexAlreadyExists.
func (ix *Index) Create(ctx context.Context) error {
	if err := ix.store.CreateIndex(ctx, ix.schema.Compile()); err != nil {
		return fmt.Errorf("create index %s: %w", ix.name, err)
	}
	ix.logger.Info("Index created", zap.Int("fields", len(ix.schema.Names())))
	return nil
}

// Exists reports whether the index is present. Only failures to reach
// the engine are returned as errors.
func (ix *Index) Exists(ctx context.Context) (bool, error) {
	ok, err := ix.store.IndexExists(ctx, ix.name)
	if err != nil {
		return false, fmt.Errorf("probe index %s: %w", ix.name, err)
	}
	return ok, nil
}

// Drop removes the index, keeping stored hashes. A missing index yields
// ErrIndexNotFound.
func (ix *Index) Drop(ctx context.Context) error {
	return ix.drop(ctx, false)
}

// DropWithDocuments removes the index and its stored hashes.
func (ix *Index) DropWithDocuments(ctx context.Context) error {
	return ix.drop(ctx, true)
}

func (ix *Index) drop(ctx context.Context, deleteDocuments bool) error {
	if err := ix.store.DropIndex(ctx, ix.name, deleteDocuments); err != nil {
		return fmt.Errorf("drop index %s: %w", ix.name, err)
	}
	ix.logger.Info("Index dropped", zap.Bool("documents", deleteDocuments))
	return nil
}

// Document maps obj onto a document of this index.
func (ix *Index) Document(obj any, serializer document.Serializer) (*document.Document, error) {
	return document.ForObject(ix.schema, obj, serializer)
}

// DocumentContext is Document passing ctx to a context-aware serializer.
func (ix *Index) DocumentContext(ctx context.Context, obj any, serializer document.Serializer) (*document.Document, error) {
	return document.ForObjectContext(ctx, ix.schema, obj, serializer)
}

// DocumentFor returns obj's document reduced to its key.
func (ix *Index) DocumentFor(obj any) (*document.Document, error) {
	return document.ForIdentity(ix.schema, obj)
}

// BoundTo reports whether ix issues its commands through store.
func (ix *Index) BoundTo(store Store) bool {
	a, b := reflect.ValueOf(ix.store), reflect.ValueOf(store)
	if !a.IsValid() || !b.IsValid() || a.Type() != b.Type() || !a.Type().Comparable() {
		return false
	}
	return a.Interface() == b.Interface()
}

// Add issues FT.ADD for doc. When the index does not exist yet the call
// is a no-op returning nil.
func (ix *Index) Add(ctx context.Context, doc *document.Document, opts query.AddOptions) error {
	if doc == nil {
		return fmt.Errorf("add to %s: nil document: %w", ix.name, document.ErrInvalidDocument)
	}
	ok, err := ix.Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		ix.logger.Debug("Skipping add, index does not exist", zap.String("key", doc.Key()))
		return nil
	}

	fields, err := doc.FieldValues(ix.schema)
	if err != nil {
		return fmt.Errorf("add to %s: %w", ix.name, err)
	}
	req := &db.AddRequest{Index: ix.name, Key: doc.Key(), Fields: fields, Options: opts}
	if err := ix.store.AddDocument(ctx, req); err != nil {
		return fmt.Errorf("add %s: %w", doc.Key(), err)
	}
	return nil
}

// Del issues FT.DEL for doc; deleteDocument also removes the stored hash.
// When the index does not exist yet the call is a no-op returning nil.
func (ix *Index) Del(ctx context.Context, doc *document.Document, deleteDocument bool) error {
	if doc == nil {
		return fmt.Errorf("delete from %s: nil document: %w", ix.name, document.ErrInvalidDocument)
	}
	ok, err := ix.Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		ix.logger.Debug("Skipping delete, index does not exist", zap.String("key", doc.Key()))
		return nil
	}

	if err := ix.store.DeleteDocument(ctx, ix.name, doc.Key(), deleteDocument); err != nil {
		return fmt.Errorf("delete %s: %w", doc.Key(), err)
	}
	return nil
}

// Get returns the stored attributes of the document with the given id.
func (ix *Index) Get(ctx context.Context, id string) (map[string]string, error) {
	key := document.Key(ix.name, id)
	m, err := ix.store.GetDocument(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return m, nil
}

// Search runs FT.SEARCH. A nil term matches every document.
func (ix *Index) Search(ctx context.Context, term *string, q query.Search) (*SearchResult, error) {
	res, err := ix.store.Search(ctx, ix.name, term, &q)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", ix.name, err)
	}
	return res, nil
}

// Count returns the number of documents matching term and q's filters.
func (ix *Index) Count(ctx context.Context, term *string, q query.Search) (int, error) {
	n, err := ix.store.Count(ctx, ix.name, term, &q)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", ix.name, err)
	}
	return n, nil
}

// Spellcheck runs FT.SPELLCHECK with the given edit distance. Suggestions
// keep the engine's order.
func (ix *Index) Spellcheck(ctx context.Context, term string, distance int) ([]Suggestion, error) {
	sugs, err := ix.store.Spellcheck(ctx, ix.name, term, distance)
	if err != nil {
		return nil, fmt.Errorf("spellcheck %s: %w", ix.name, err)
	}
	return sugs, nil
}
