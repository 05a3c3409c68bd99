package field

import (
	"fmt"
	"strconv"
)

// Algorithm selects the vector indexing algorithm.
type Algorithm string

// Vector algorithms.
const (
	AlgorithmFlat Algorithm = "FLAT"
	AlgorithmHNSW Algorithm = "HNSW"
)

// VectorType is the element type of stored vectors.
type VectorType string

// Vector element types.
const (
	Float32 VectorType = "FLOAT32"
	Float64 VectorType = "FLOAT64"
)

// DistanceMetric is the vector similarity metric.
type DistanceMetric string

// Distance metrics.
const (
	DistanceL2     DistanceMetric = "L2"
	DistanceIP     DistanceMetric = "IP"
	DistanceCosine DistanceMetric = "COSINE"
)

// DefaultBlockSize is the FLAT block size applied by NewVector.
const DefaultBlockSize = 1024

// Vector is a dense vector field. A zero-value literal emits no optional
// pairs; NewVector applies the documented defaults.
type Vector struct {
	FieldName      string
	Algorithm      Algorithm
	Count          int
	Type           VectorType
	Dim            int
	DistanceMetric DistanceMetric
	InitialCap     int
	BlockSize      int
	Sortable       bool
	NoIndex        bool
}

// VectorOption configures a Vector built by NewVector.
type VectorOption func(*Vector)

// WithAlgorithm sets the indexing algorithm.
func WithAlgorithm(a Algorithm) VectorOption { return func(v *Vector) { v.Algorithm = a } }

// WithCount sets the attribute token count emitted after the algorithm.
func WithCount(n int) VectorOption { return func(v *Vector) { v.Count = n } }

// WithType sets the element type.
func WithType(t VectorType) VectorOption { return func(v *Vector) { v.Type = t } }

// WithDim sets the vector dimension.
func WithDim(dim int) VectorOption { return func(v *Vector) { v.Dim = dim } }

// WithDistanceMetric sets the similarity metric.
func WithDistanceMetric(m DistanceMetric) VectorOption {
	return func(v *Vector) { v.DistanceMetric = m }
}

// WithInitialCap sets the initial vector capacity.
func WithInitialCap(n int) VectorOption { return func(v *Vector) { v.InitialCap = n } }

// WithBlockSize sets the block size.
func WithBlockSize(n int) VectorOption { return func(v *Vector) { v.BlockSize = n } }

// Sortable marks the vector field SORTABLE.
func Sortable() VectorOption { return func(v *Vector) { v.Sortable = true } }

// NoIndex marks the vector field NOINDEX.
func NoIndex() VectorOption { return func(v *Vector) { v.NoIndex = true } }

// NewVector returns a vector field with defaults FLAT, FLOAT32, COSINE, block size 1024.
func NewVector(name string, opts ...VectorOption) Vector {
	v := Vector{
		FieldName:      name,
		Algorithm:      AlgorithmFlat,
		Type:           Float32,
		DistanceMetric: DistanceCosine,
		BlockSize:      DefaultBlockSize,
	}
	for _, o := range opts {
		o(&v)
	}
	return v
}

// Name returns the field name.
func (v Vector) Name() string { return v.FieldName }

// Kind returns KindVector.
func (v Vector) Kind() Kind { return KindVector }

// ElementType returns the stored element type, FLOAT32 when unset.
func (v Vector) ElementType() VectorType {
	if v.Type == "" {
		return Float32
	}
	return v.Type
}

// Compile returns
// name VECTOR algorithm count [TYPE t] [DIM d] [DISTANCE_METRIC m] [INITIAL_CAP c] [BLOCK_SIZE b] [SORTABLE] [NOINDEX].
func (v Vector) Compile() []string {
	algo := v.Algorithm
	if algo == "" {
		algo = AlgorithmFlat
	}
	args := []string{v.FieldName, string(KindVector), string(algo), strconv.Itoa(v.Count)}
	args = appendPair(args, "TYPE", string(v.Type))
	args = appendIntPair(args, "DIM", v.Dim)
	args = appendPair(args, "DISTANCE_METRIC", string(v.DistanceMetric))
	args = appendIntPair(args, "INITIAL_CAP", v.InitialCap)
	args = appendIntPair(args, "BLOCK_SIZE", v.BlockSize)
	return appendFlags(args,
		flag{"SORTABLE", v.Sortable},
		flag{"NOINDEX", v.NoIndex},
	)
}

// AttributeCount returns the number of KEY VALUE tokens Compile emits, the
// value the engine expects in Count.
func (v Vector) AttributeCount() int {
	return len(v.Compile()) - 4 - boolCount(v.Sortable) - boolCount(v.NoIndex)
}

// WithComputedCount returns a copy whose Count equals AttributeCount.
func (v Vector) WithComputedCount() Vector {
	v.Count = v.AttributeCount()
	return v
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (v Vector) validate() error {
	switch v.Algorithm {
	case "", AlgorithmFlat, AlgorithmHNSW:
	default:
		return fmt.Errorf("vector %q: unknown algorithm %q: %w", v.FieldName, v.Algorithm, ErrInvalidField)
	}
	switch v.Type {
	case "", Float32, Float64:
	default:
		return fmt.Errorf("vector %q: unknown type %q: %w", v.FieldName, v.Type, ErrInvalidField)
	}
	switch v.DistanceMetric {
	case "", DistanceL2, DistanceIP, DistanceCosine:
	default:
		return fmt.Errorf("vector %q: unknown distance metric %q: %w", v.FieldName, v.DistanceMetric, ErrInvalidField)
	}
	if v.Dim <= 0 {
		return fmt.Errorf("vector %q requires positive DIM: %w", v.FieldName, ErrInvalidField)
	}
	if v.Count < 0 || v.InitialCap < 0 || v.BlockSize < 0 {
		return fmt.Errorf("vector %q: negative count, initial cap or block size: %w", v.FieldName, ErrInvalidField)
	}
	if v.Count != v.AttributeCount() {
		return fmt.Errorf("vector %q: count %d does not match %d attribute tokens: %w",
			v.FieldName, v.Count, v.AttributeCount(), ErrInvalidField)
	}
	return nil
}
