package query

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/redisearch/internal/query/filter"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildSearchArgs_NilTermIsWildcard(t *testing.T) {
	args, err := BuildSearchArgs("widgets", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(args, []string{"widgets", "*"}) {
		t.Errorf("args = %v", args)
	}

	args, _ = BuildSearchArgs("widgets", Term(""), nil)
	if args[1] != Wildcard {
		t.Errorf("empty term query = %q, want wildcard", args[1])
	}
}

func TestBuildSearchArgs_TermPassedThrough(t *testing.T) {
	args, err := BuildSearchArgs("widgets", Term("foo"), &Search{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args[1] != "foo" {
		t.Errorf("query = %q, want foo", args[1])
	}
}

func TestBuildSearchArgs_AllOptionsOrder(t *testing.T) {
	slop := 2
	q := &Search{
		Verbatim: true, NoContent: true, NoStopWords: true, WithScores: true,
		NumericFilters: []NumericFilter{Between("price", 1, 9.5), {Field: "stock", Min: "(0"}},
		GeoFilters:     []GeoFilter{{Field: "loc", Longitude: 13.4, Latitude: 52.5, Radius: 5}},
		InFields:       []string{"title"},
		Return:         []string{"title", "price"},
		Highlight:      &Highlight{Fields: []string{"title"}, OpenTag: "<b>", CloseTag: "</b>"},
		Slop:           &slop,
		InOrder:        true,
		Language:       "english",
		SortBy:         "price",
		SortDesc:       true,
		Offset:         20,
		Limit:          10,
		Dialect:        2,
	}
	args, err := BuildSearchArgs("idx", Term("hello"), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "idx hello VERBATIM NOCONTENT NOSTOPWORDS WITHSCORES " +
		"FILTER price 1 9.5 FILTER stock (0 +inf " +
		"GEOFILTER loc 13.4 52.5 5 km " +
		"INFIELDS 1 title RETURN 2 title price " +
		"HIGHLIGHT FIELDS 1 title TAGS <b> </b> " +
		"SLOP 2 INORDER LANGUAGE english SORTBY price DESC LIMIT 20 10 DIALECT 2"
	if got := strings.Join(args, " "); got != want {
		t.Errorf("args =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildSearchArgs_Limit(t *testing.T) {
	args, _ := BuildSearchArgs("idx", nil, &Search{Offset: 30})
	if got := strings.Join(args[2:], " "); got != "LIMIT 30 10" {
		t.Errorf("offset-only limit = %q", got)
	}
	args, _ = BuildSearchArgs("idx", nil, &Search{SortBy: "n"})
	if got := strings.Join(args[2:], " "); got != "SORTBY n ASC" {
		t.Errorf("sort = %q", got)
	}
}

func TestBuildSearchArgs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		index string
		q     *Search
	}{
		{"no_index", "", nil},
		{"negative_offset", "idx", &Search{Offset: -1}},
		{"numeric_no_field", "idx", &Search{NumericFilters: []NumericFilter{{}}}},
		{"geo_no_field", "idx", &Search{GeoFilters: []GeoFilter{{}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildSearchArgs(tc.index, nil, tc.q); !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestQueryString_WithFilters(t *testing.T) {
	red, _ := filter.NewMatch("color", "dark red")
	blue, _ := filter.NewMatch("color", "blue")
	title, _ := filter.NewText("title", "lamp")
	rng, _ := filter.NewRangeFilter(floatPtr(10), nil, nil, floatPtr(100))
	price, _ := filter.NewRange("price", rng)
	expr, err := filter.NewExpression([]filter.Condition{price, title}, []filter.Condition{red, blue}, []filter.Condition{blue})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `@price:[(10 100] @title:(lamp) (@color:{dark\ red} | @color:{blue}) -@color:{blue}`
	if got := QueryString(nil, expr); got != want {
		t.Errorf("QueryString(nil) =\n%s\nwant\n%s", got, want)
	}
	if got := QueryString(Term("foo"), filter.Must(blue)); got != "(foo) @color:{blue}" {
		t.Errorf("QueryString(foo) = %q", got)
	}
}

func TestBuildCountArgs(t *testing.T) {
	args, err := BuildCountArgs("idx", Term("foo"), &Search{Limit: 50, SortBy: "x", Return: []string{"a"}, Verbatim: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(args, " "); got != "idx foo VERBATIM LIMIT 0 0" {
		t.Errorf("args = %q", got)
	}
	args, _ = BuildCountArgs("idx", nil, nil)
	if got := strings.Join(args, " "); got != "idx * LIMIT 0 0" {
		t.Errorf("args = %q", got)
	}
}

func TestEscape(t *testing.T) {
	if got := EscapeTag("a-b c"); got != `a\-b\ c` {
		t.Errorf("EscapeTag = %q", got)
	}
	if got := EscapeTerm("@title:(x)"); got != `\@title:\(x\)` {
		t.Errorf("EscapeTerm = %q", got)
	}
}
