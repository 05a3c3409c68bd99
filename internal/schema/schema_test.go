package schema

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/redisearch/internal/schema/field"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := New("app_widgets",
		field.Text{FieldName: "name", Sortable: true},
		field.NewTag("color"),
		field.NewNumeric("price"),
		field.NewVector("embedding", field.WithDim(4), field.WithCount(8)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestCompile_Layout(t *testing.T) {
	want := []string{
		"app_widgets", "SCHEMA",
		"name", "TEXT", "SORTABLE",
		"color", "TAG",
		"price", "NUMERIC",
		"embedding", "VECTOR", "FLAT", "8", "TYPE", "FLOAT32", "DIM", "4",
		"DISTANCE_METRIC", "COSINE", "BLOCK_SIZE", "1024",
	}
	if got := testSchema(t).Compile(); !reflect.DeepEqual(got, want) {
		t.Errorf("Compile() =\n%v\nwant\n%v", got, want)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	a := testSchema(t).Compile()
	b := testSchema(t).Compile()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical schemas compiled differently:\n%v\n%v", a, b)
	}
	s := testSchema(t)
	if !reflect.DeepEqual(s.Compile(), s.Compile()) {
		t.Error("repeated compile differs")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		index  string
		fields []field.Field
	}{
		{"empty_index", "", []field.Field{field.NewText("a")}},
		{"no_fields", "idx", nil},
		{"empty_field_name", "idx", []field.Field{field.NewText("")}},
		{"nil_field", "idx", []field.Field{nil}},
		{"duplicate", "idx", []field.Field{field.NewText("a"), field.NewTag("a")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.index, tc.fields...)
			if !errors.Is(err, ErrInvalidSchema) {
				t.Errorf("expected ErrInvalidSchema, got %v", err)
			}
		})
	}
}

func TestSchema_Lookup(t *testing.T) {
	s := testSchema(t)
	f, ok := s.Field("price")
	if !ok || f.Kind() != field.KindNumeric {
		t.Errorf("Field(price) = %v, %v", f, ok)
	}
	if _, ok := s.Field("missing"); ok {
		t.Error("expected missing field")
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"name", "color", "price", "embedding"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestSchema_FieldsIsCopy(t *testing.T) {
	s := testSchema(t)
	fs := s.Fields()
	fs[0] = field.NewTag("mutated")
	if s.Fields()[0].Name() != "name" {
		t.Error("Fields() exposed internal slice")
	}
}

func TestSchema_Validate(t *testing.T) {
	if err := testSchema(t).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	bad := MustNew("idx", field.NewVector("v"))
	err := bad.Validate()
	if !errors.Is(err, ErrInvalidSchema) || !errors.Is(err, field.ErrInvalidField) {
		t.Errorf("expected both sentinels, got %v", err)
	}
}

func TestSchema_String(t *testing.T) {
	got := MustNew("idx", field.NewTag("t")).String()
	if got != "FT.CREATE idx SCHEMA t TAG" {
		t.Errorf("String() = %q", got)
	}
}

func TestBuilder(t *testing.T) {
	s := NewBuilder("idx").
		Text("title").
		SortableText("body").
		TagWithOpts("tags", "|", true).
		Numeric("n").
		Geo("loc").
		Vector("v", field.WithAlgorithm(field.AlgorithmHNSW), field.WithDim(3)).
		MustBuild()

	got := strings.Join(s.Compile(), " ")
	want := "idx SCHEMA title TEXT body TEXT SORTABLE tags TAG SEPARATOR | CASESENSITIVE " +
		"n NUMERIC loc GEO v VECTOR HNSW 0 TYPE FLOAT32 DIM 3 DISTANCE_METRIC COSINE BLOCK_SIZE 1024"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant\n%s", got, want)
	}

	if _, err := NewBuilder("idx").Tag("a").Tag("a").Build(); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestIndexName(t *testing.T) {
	tests := []struct {
		prefix, typeName, env string
		want                  string
	}{
		{"app", "Widget", "", "app_widgets"},
		{"", "Widget", "test", "widgets_test"},
		{"app", "Widget", "prod", "app_widgets_prod"},
		{"", "BlogPost", "", "blog_posts"},
		{"", "Category", "", "categories"},
		{"", "", "", ""},
	}
	for _, tc := range tests {
		got := IndexName(tc.prefix, tc.typeName, tc.env)
		if got != tc.want {
			t.Errorf("IndexName(%q, %q, %q) = %q, want %q", tc.prefix, tc.typeName, tc.env, got, tc.want)
		}
	}
}

func TestJoinName(t *testing.T) {
	if got := JoinName("app", "widgets", ""); got != "app_widgets" {
		t.Errorf("got %q", got)
	}
	if got := JoinName("", "widgets", "test"); got != "widgets_test" {
		t.Errorf("got %q", got)
	}
	if got := JoinName("a", JoinName("b", "c")); got != JoinName(JoinName("a", "b"), "c") {
		t.Errorf("join is not associative: %q", got)
	}
}
