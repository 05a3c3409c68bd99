// Package schema aggregates fields into an index definition compiled for FT.CREATE.
package schema

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/redisearch/internal/schema/field"
)

// ErrInvalidSchema signals a schema that cannot be compiled.
var ErrInvalidSchema = errors.New("invalid schema")

// Schema is an ordered, immutable set of fields bound to an index name.
type Schema struct {
	indexName string
	fields    []field.Field
	byName    map[string]int
}

// New validates and creates a Schema. Field order is preserved.
func New(indexName string, fields ...field.Field) (*Schema, error) {
	if indexName == "" {
		return nil, fmt.Errorf("index name is required: %w", ErrInvalidSchema)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("index %q: at least one field is required: %w", indexName, ErrInvalidSchema)
	}

	s := &Schema{
		indexName: indexName,
		fields:    make([]field.Field, len(fields)),
		byName:    make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f == nil || f.Name() == "" {
			return nil, fmt.Errorf("index %q: field name is required at position %d: %w", indexName, i, ErrInvalidSchema)
		}
		if _, dup := s.byName[f.Name()]; dup {
			return nil, fmt.Errorf("index %q: duplicate field name %q: %w", indexName, f.Name(), ErrInvalidSchema)
		}
		s.byName[f.Name()] = i
		s.fields[i] = f
	}
	return s, nil
}

// MustNew calls New and panics on error.
func MustNew(indexName string, fields ...field.Field) *Schema {
	s, err := New(indexName, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// IndexName returns the engine-side index name.
func (s *Schema) IndexName() string { return s.indexName }

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []field.Field {
	out := make([]field.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks a field up by name.
func (s *Schema) Field(name string) (field.Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Names returns field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name()
	}
	return names
}

// Compile returns the FT.CREATE arguments: INDEX_NAME SCHEMA <field tokens...>.
func (s *Schema) Compile() []string {
	args := []string{s.indexName, "SCHEMA"}
	for _, f := range s.fields {
		args = append(args, f.Compile()...)
	}
	return args
}

// Validate runs field.Validate on every field.
func (s *Schema) Validate() error {
	var errs []error
	for _, f := range s.fields {
		if err := field.Validate(f); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("index %q: %w: %w", s.indexName, ErrInvalidSchema, errors.Join(errs...))
	}
	return nil
}

// String returns a debug representation resembling the FT.CREATE command.
func (s *Schema) String() string {
	out := "FT.CREATE"
	for _, a := range s.Compile() {
		out += " " + a
	}
	return out
}
