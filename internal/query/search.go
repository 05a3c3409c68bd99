package query

import (
	"fmt"

	"github.com/kailas-cloud/redisearch/internal/query/filter"
)

// DefaultPageSize is the engine's page size when LIMIT is not sent.
const DefaultPageSize = 10

// Search holds FT.SEARCH options. The zero value searches with engine defaults.
type Search struct {
	Filters        filter.Expression
	NumericFilters []NumericFilter
	GeoFilters     []GeoFilter
	InFields       []string
	Return         []string
	Highlight      *Highlight
	Slop           *int
	InOrder        bool
	Language       string
	SortBy         string
	SortDesc       bool
	Offset         int
	Limit          int // 0 leaves the engine default page size
	Verbatim       bool
	NoContent      bool
	NoStopWords    bool
	WithScores     bool
	Dialect        int
}

// NumericFilter is a FILTER clause. Exclusive bounds are sent with a "(" prefix.
type NumericFilter struct {
	Field    string
	Min, Max string // "-inf", "+inf", "(5", "10"
}

// Between returns an inclusive NumericFilter.
func Between(fieldName string, minVal, maxVal float64) NumericFilter {
	return NumericFilter{Field: fieldName, Min: formatFloat(minVal), Max: formatFloat(maxVal)}
}

// GeoUnit is a GEOFILTER radius unit.
type GeoUnit string

// Geo radius units.
const (
	Meters     GeoUnit = "m"
	Kilometers GeoUnit = "km"
	Miles      GeoUnit = "mi"
	Feet       GeoUnit = "ft"
)

// GeoFilter is a GEOFILTER clause.
type GeoFilter struct {
	Field     string
	Longitude float64
	Latitude  float64
	Radius    float64
	Unit      GeoUnit
}

// Highlight configures HIGHLIGHT; empty Fields highlights all text fields.
type Highlight struct {
	Fields   []string
	OpenTag  string
	CloseTag string
}

// QueryString merges the optional term with the filter expression.
// A nil or empty term without filters yields the wildcard.
func QueryString(term *string, expr filter.Expression) string {
	f := BuildFilter(expr)
	hasTerm := term != nil && *term != ""
	switch {
	case !hasTerm && f == "":
		return Wildcard
	case !hasTerm:
		return f
	case f == "":
		return *term
	default:
		return "(" + *term + ") " + f
	}
}

// BuildSearchArgs returns FT.SEARCH arguments: index, query string, options.
func BuildSearchArgs(index string, term *string, q *Search) ([]string, error) {
	if index == "" {
		return nil, fmt.Errorf("index name is required: %w", ErrInvalidQuery)
	}
	if q == nil {
		q = &Search{}
	}
	if q.Offset < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("negative offset or limit: %w", ErrInvalidQuery)
	}

	args := []string{index, QueryString(term, q.Filters)}
	args = appendFlag(args, "VERBATIM", q.Verbatim)
	args = appendFlag(args, "NOCONTENT", q.NoContent)
	args = appendFlag(args, "NOSTOPWORDS", q.NoStopWords)
	args = appendFlag(args, "WITHSCORES", q.WithScores)

	for _, nf := range q.NumericFilters {
		if nf.Field == "" {
			return nil, fmt.Errorf("numeric filter field is required: %w", ErrInvalidQuery)
		}
		args = append(args, "FILTER", nf.Field, boundOr(nf.Min, "-inf"), boundOr(nf.Max, "+inf"))
	}
	for _, gf := range q.GeoFilters {
		if gf.Field == "" {
			return nil, fmt.Errorf("geo filter field is required: %w", ErrInvalidQuery)
		}
		unit := gf.Unit
		if unit == "" {
			unit = Kilometers
		}
		args = append(args, "GEOFILTER", gf.Field,
			formatFloat(gf.Longitude), formatFloat(gf.Latitude), formatFloat(gf.Radius), string(unit))
	}

	args = appendCounted(args, "INFIELDS", q.InFields)
	args = appendCounted(args, "RETURN", q.Return)

	if h := q.Highlight; h != nil {
		args = append(args, "HIGHLIGHT")
		args = appendCounted(args, "FIELDS", h.Fields)
		if h.OpenTag != "" || h.CloseTag != "" {
			args = append(args, "TAGS", h.OpenTag, h.CloseTag)
		}
	}
	if q.Slop != nil {
		args = append(args, "SLOP", itoa(*q.Slop))
	}
	args = appendFlag(args, "INORDER", q.InOrder)
	if q.Language != "" {
		args = append(args, "LANGUAGE", q.Language)
	}
	if q.SortBy != "" {
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		args = append(args, "SORTBY", q.SortBy, dir)
	}
	if q.Offset > 0 || q.Limit > 0 {
		limit := q.Limit
		if limit == 0 {
			limit = DefaultPageSize
		}
		args = append(args, "LIMIT", itoa(q.Offset), itoa(limit))
	}
	if q.Dialect > 0 {
		args = append(args, "DIALECT", itoa(q.Dialect))
	}
	return args, nil
}

// BuildCountArgs returns FT.SEARCH arguments that only fetch the total.
func BuildCountArgs(index string, term *string, q *Search) ([]string, error) {
	var c Search
	if q != nil {
		c = *q
	}
	c.Return, c.Highlight, c.SortBy = nil, nil, ""
	c.NoContent, c.WithScores = false, false
	c.Offset, c.Limit = 0, 0

	args, err := BuildSearchArgs(index, term, &c)
	if err != nil {
		return nil, err
	}
	return append(args, "LIMIT", "0", "0"), nil
}

func boundOr(b, def string) string {
	if b == "" {
		return def
	}
	return b
}

func appendFlag(args []string, token string, set bool) []string {
	if set {
		return append(args, token)
	}
	return args
}

func appendCounted(args []string, key string, values []string) []string {
	if len(values) == 0 {
		return args
	}
	args = append(args, key, itoa(len(values)))
	return append(args, values...)
}
