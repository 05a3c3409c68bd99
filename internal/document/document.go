// Package document maps host objects onto the attribute lists stored by FT.ADD.
package document

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/redisearch/internal/schema"
)

// KeySeparator joins the index name and the object id into the document key.
const KeySeparator = ":"

// ErrInvalidDocument signals an object that cannot be mapped to a document.
var ErrInvalidDocument = errors.New("invalid document")

// Attribute is one named value of a document.
type Attribute struct {
	Name  string
	Value any
}

// Document is the engine-side form of one host object.
type Document struct {
	id         string
	key        string
	attributes []Attribute
}

// New creates a Document for the given index. Attributes keep the given order.
func New(indexName, id string, attrs ...Attribute) (*Document, error) {
	if id == "" {
		return nil, fmt.Errorf("document id is required: %w", ErrInvalidDocument)
	}
	return &Document{id: id, key: Key(indexName, id), attributes: attrs}, nil
}

// Key returns the engine document key for id within indexName.
func Key(indexName, id string) string {
	return indexName + KeySeparator + id
}

// ID returns the host object's identity.
func (d *Document) ID() string { return d.id }

// Key returns the engine document key.
func (d *Document) Key() string { return d.key }

// Attributes returns the attribute values keyed by name.
func (d *Document) Attributes() map[string]any {
	m := make(map[string]any, len(d.attributes))
	for _, a := range d.attributes {
		m[a.Name] = a.Value
	}
	return m
}

// Ordered returns a copy of the attributes in document order.
func (d *Document) Ordered() []Attribute {
	out := make([]Attribute, len(d.attributes))
	copy(out, d.attributes)
	return out
}

// Get returns the named attribute value.
func (d *Document) Get(name string) (any, bool) {
	for _, a := range d.attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// FieldValues flattens the document into [f1, v1, f2, v2, ...] following
// the schema's declaration order. Attributes the schema does not declare
// and nil values are skipped.
func (d *Document) FieldValues(sch *schema.Schema) ([]string, error) {
	values := d.Attributes()
	out := make([]string, 0, 2*len(values))
	for _, f := range sch.Fields() {
		v, ok := values[f.Name()]
		if !ok || v == nil {
			continue
		}
		enc, err := Encode(f, v)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", d.key, err)
		}
		out = append(out, f.Name(), enc)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("document %q: no schema attributes set: %w", d.key, ErrInvalidDocument)
	}
	return out, nil
}
