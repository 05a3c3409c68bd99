package schema

import "github.com/kailas-cloud/redisearch/internal/schema/field"

// Builder is a fluent builder for schemas.
type Builder struct {
	name   string
	fields []field.Field
}

// NewBuilder starts building a schema for the given index name.
func NewBuilder(indexName string) *Builder {
	return &Builder{name: indexName}
}

// Text adds a TEXT field.
func (b *Builder) Text(name string) *Builder {
	return b.Field(field.NewText(name))
}

// SortableText adds a SORTABLE TEXT field.
func (b *Builder) SortableText(name string) *Builder {
	return b.Field(field.Text{FieldName: name, Sortable: true})
}

// Tag adds a TAG field.
func (b *Builder) Tag(name string) *Builder {
	return b.Field(field.NewTag(name))
}

// TagWithOpts adds a TAG field with custom separator and case sensitivity.
func (b *Builder) TagWithOpts(name, separator string, caseSensitive bool) *Builder {
	return b.Field(field.Tag{FieldName: name, Separator: separator, CaseSensitive: caseSensitive})
}

// Numeric adds a NUMERIC field.
func (b *Builder) Numeric(name string) *Builder {
	return b.Field(field.NewNumeric(name))
}

// Geo adds a GEO field.
func (b *Builder) Geo(name string) *Builder {
	return b.Field(field.NewGeo(name))
}

// Vector adds a VECTOR field built by field.NewVector.
func (b *Builder) Vector(name string, opts ...field.VectorOption) *Builder {
	return b.Field(field.NewVector(name, opts...))
}

// Field appends any field value.
func (b *Builder) Field(f field.Field) *Builder {
	b.fields = append(b.fields, f)
	return b
}

// Build validates names and returns the schema.
func (b *Builder) Build() (*Schema, error) {
	return New(b.name, b.fields...)
}

// MustBuild calls Build and panics on error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
