package redisearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/query"
	"github.com/kailas-cloud/redisearch/internal/query/filter"
)

// Hit is a typed search result.
type Hit[T any] struct {
	ID    string
	Key   string
	Score float64 // set only with WithScores
	Item  T
}

// Results is one page of typed hits.
type Results[T any] struct {
	Total int
	Hits  []Hit[T]
}

// SearchBuilder is a fluent builder for typed search queries.
type SearchBuilder[T any] struct {
	model *Model[T]
	term  *string
	q     query.Search
	must  []filter.Condition
	not   []filter.Condition
	err   error
}

// Query starts a typed search over the model's index.
func (m *Model[T]) Query() *SearchBuilder[T] {
	return &SearchBuilder[T]{model: m}
}

// Term sets the full-text term. Without it the builder searches everything.
func (b *SearchBuilder[T]) Term(t string) *SearchBuilder[T] {
	b.term = &t
	return b
}

// Where adds an exact tag match.
func (b *SearchBuilder[T]) Where(key, value string) *SearchBuilder[T] {
	return b.addCondition(&b.must, func() (filter.Condition, error) { return filter.NewMatch(key, value) })
}

// WhereNot excludes an exact tag match.
func (b *SearchBuilder[T]) WhereNot(key, value string) *SearchBuilder[T] {
	return b.addCondition(&b.not, func() (filter.Condition, error) { return filter.NewMatch(key, value) })
}

// Matching adds a full-text condition scoped to one field.
func (b *SearchBuilder[T]) Matching(key, words string) *SearchBuilder[T] {
	return b.addCondition(&b.must, func() (filter.Condition, error) { return filter.NewText(key, words) })
}

func (b *SearchBuilder[T]) addCondition(dst *[]filter.Condition, build func() (filter.Condition, error)) *SearchBuilder[T] {
	if b.err != nil {
		return b
	}
	c, err := build()
	if err != nil {
		b.err = fmt.Errorf("%w: %w", query.ErrInvalidQuery, err)
		return b
	}
	*dst = append(*dst, c)
	return b
}

// Between restricts a numeric field to [minVal, maxVal].
func (b *SearchBuilder[T]) Between(fieldName string, minVal, maxVal float64) *SearchBuilder[T] {
	b.q.NumericFilters = append(b.q.NumericFilters, query.Between(fieldName, minVal, maxVal))
	return b
}

// Near restricts a geo field to a radius around lon/lat.
func (b *SearchBuilder[T]) Near(fieldName string, lon, lat, radius float64, unit GeoUnit) *SearchBuilder[T] {
	b.q.GeoFilters = append(b.q.GeoFilters, query.GeoFilter{
		Field: fieldName, Longitude: lon, Latitude: lat, Radius: radius, Unit: unit,
	})
	return b
}

// SortBy orders results by a sortable field.
func (b *SearchBuilder[T]) SortBy(fieldName string, desc bool) *SearchBuilder[T] {
	b.q.SortBy = fieldName
	b.q.SortDesc = desc
	return b
}

// Page sets the result window.
func (b *SearchBuilder[T]) Page(offset, limit int) *SearchBuilder[T] {
	b.q.Offset = offset
	b.q.Limit = limit
	return b
}

// WithScores requests per-hit relevance scores.
func (b *SearchBuilder[T]) WithScores() *SearchBuilder[T] {
	b.q.WithScores = true
	return b
}

// Verbatim disables stemming of the term.
func (b *SearchBuilder[T]) Verbatim() *SearchBuilder[T] {
	b.q.Verbatim = true
	return b
}

func (b *SearchBuilder[T]) build() (query.Search, error) {
	if b.err != nil {
		return query.Search{}, b.err
	}
	q := b.q
	if len(b.must) > 0 || len(b.not) > 0 {
		expr, err := filter.NewExpression(b.must, nil, b.not)
		if err != nil {
			return query.Search{}, fmt.Errorf("%w: %w", query.ErrInvalidQuery, err)
		}
		q.Filters = expr
	}
	return q, nil
}

// Do executes the search and decodes every hit into T.
func (b *SearchBuilder[T]) Do(ctx context.Context) (*Results[T], error) {
	q, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", b.model.Name(), err)
	}
	res, err := b.model.Search(ctx, b.term, q)
	if err != nil {
		return nil, err //nolint:wrapcheck // index adds the name
	}

	sch := b.model.index.Schema()
	prefix := b.model.Name() + document.KeySeparator
	out := &Results[T]{Total: res.Total, Hits: make([]Hit[T], len(res.Entries))}
	for i, e := range res.Entries {
		id := strings.TrimPrefix(e.Key, prefix)
		hit := Hit[T]{ID: id, Key: e.Key, Score: e.Score}
		if err := document.Populate(sch, id, e.Fields, &hit.Item); err != nil {
			return nil, fmt.Errorf("search %s: decode %s: %w", b.model.Name(), e.Key, err)
		}
		out.Hits[i] = hit
	}
	return out, nil
}

// Count returns the number of matching documents without fetching them.
func (b *SearchBuilder[T]) Count(ctx context.Context) (int, error) {
	q, err := b.build()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", b.model.Name(), err)
	}
	return b.model.Count(ctx, b.term, q)
}
