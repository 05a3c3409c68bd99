package redisearch

import (
	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/index"
	"github.com/kailas-cloud/redisearch/internal/query"
	"github.com/kailas-cloud/redisearch/internal/schema"
	"github.com/kailas-cloud/redisearch/internal/schema/field"
)

// Engine-facing types.
type (
	Store    = db.Store
	Index    = index.Index
	Registry = index.Registry
	Schema   = schema.Schema
	Document = document.Document
	GeoPoint = document.GeoPoint
	Hooks    = index.Hooks
	Observer = index.Observer
)

// Field types.
type (
	Field          = field.Field
	Text           = field.Text
	Tag            = field.Tag
	Numeric        = field.Numeric
	Geo            = field.Geo
	Vector         = field.Vector
	VectorOption   = field.VectorOption
	Algorithm      = field.Algorithm
	VectorType     = field.VectorType
	DistanceMetric = field.DistanceMetric
)

// Vector parameters.
const (
	AlgorithmFlat  = field.AlgorithmFlat
	AlgorithmHNSW  = field.AlgorithmHNSW
	Float32        = field.Float32
	Float64        = field.Float64
	DistanceL2     = field.DistanceL2
	DistanceIP     = field.DistanceIP
	DistanceCosine = field.DistanceCosine
)

// Query and result types.
type (
	Query         = query.Search
	AddOptions    = query.AddOptions
	NumericFilter = query.NumericFilter
	GeoFilter     = query.GeoFilter
	GeoUnit       = query.GeoUnit
	Highlight     = query.Highlight
	SearchResult  = index.SearchResult
	SearchEntry   = index.SearchEntry
	Suggestion    = index.Suggestion
	Candidate     = index.Candidate
	ReindexOption = index.ReindexOption
	ItemResult    = index.ItemResult
)

// Geo radius units.
const (
	Meters     = query.Meters
	Kilometers = query.Kilometers
	Miles      = query.Miles
	Feet       = query.Feet
)

// Errors, matchable with errors.Is.
var (
	ErrConnectivity     = db.ErrConnectivity
	ErrIndexExists      = db.ErrIndexExists
	ErrIndexNotFound    = db.ErrIndexNotFound
	ErrDocumentConflict = db.ErrDocumentConflict
	ErrDocumentNotFound = db.ErrDocumentNotFound
	ErrMalformedSchema  = db.ErrMalformedSchema
	ErrInvalidSchema    = schema.ErrInvalidSchema
	ErrInvalidField     = field.ErrInvalidField
	ErrInvalidDocument  = document.ErrInvalidDocument
	ErrInvalidQuery     = query.ErrInvalidQuery
	ErrRegistryConflict = index.ErrRegistryConflict
)

// NewRegistry creates a registry isolated from the process-wide one.
func NewRegistry() *Registry { return index.NewRegistry() }

// NewText returns a TEXT field.
func NewText(name string) Text { return field.NewText(name) }

// NewSortableText returns a SORTABLE TEXT field.
func NewSortableText(name string) Text { return Text{FieldName: name, Sortable: true} }

// NewTag returns a TAG field.
func NewTag(name string) Tag { return field.NewTag(name) }

// NewNumeric returns a NUMERIC field.
func NewNumeric(name string) Numeric { return field.NewNumeric(name) }

// NewGeo returns a GEO field.
func NewGeo(name string) Geo { return field.NewGeo(name) }

// NewVector returns a VECTOR field with FLAT/FLOAT32/COSINE defaults. The
// attribute count is derived from the options.
func NewVector(name string, opts ...VectorOption) Vector {
	return field.NewVector(name, opts...).WithComputedCount()
}

// Dim sets the vector dimension.
func Dim(n int) VectorOption { return field.WithDim(n) }

// Metric sets the vector distance metric.
func Metric(m DistanceMetric) VectorOption { return field.WithDistanceMetric(m) }

// UseAlgorithm sets the vector index algorithm.
func UseAlgorithm(a Algorithm) VectorOption { return field.WithAlgorithm(a) }

// ElementType sets the stored vector element type.
func ElementType(t VectorType) VectorOption { return field.WithType(t) }

// BlockSize sets the FLAT block size.
func BlockSize(n int) VectorOption { return field.WithBlockSize(n) }

// InitialCap sets the initial vector index capacity.
func InitialCap(n int) VectorOption { return field.WithInitialCap(n) }

// Term wraps s for Search; a nil term matches every document.
func Term(s string) *string { return query.Term(s) }

// WithRecreate drops and recreates the index before reindexing.
func WithRecreate() ReindexOption { return index.WithRecreate() }

// WithConcurrency bounds parallel document submissions during reindex.
func WithConcurrency(n int) ReindexOption { return index.WithConcurrency(n) }

// WithReport collects one ItemResult per reindexed document into dst.
func WithReport(dst *[]ItemResult) ReindexOption { return index.WithReport(dst) }
