package document

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/kailas-cloud/redisearch/internal/schema"
)

const tagKey = "redisearch"

// Identifier is implemented by host objects that expose their identity directly.
type Identifier interface {
	SearchID() string
}

// AttributeReader is implemented by host objects that resolve attributes by name.
type AttributeReader interface {
	SearchAttribute(name string) (any, bool)
}

// Serializer replaces per-field attribute extraction for a host object.
type Serializer interface {
	Serialize(obj any) (map[string]any, error)
}

// ContextSerializer is a Serializer whose work can honor the caller's
// context, such as one calling a remote embedding provider.
type ContextSerializer interface {
	Serializer
	SerializeContext(ctx context.Context, obj any) (map[string]any, error)
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc func(obj any) (map[string]any, error)

// Serialize calls f(obj).
func (f SerializerFunc) Serialize(obj any) (map[string]any, error) { return f(obj) }

// ForObject maps obj onto a Document of sch. With a nil serializer every
// schema field is read off obj by name and missing attributes are omitted;
// otherwise the serializer alone decides the attributes. The key always
// comes from obj's identity.
func ForObject(sch *schema.Schema, obj any, serializer Serializer) (*Document, error) {
	return ForObjectContext(context.Background(), sch, obj, serializer)
}

// ForObjectContext is ForObject passing ctx to a ContextSerializer.
func ForObjectContext(ctx context.Context, sch *schema.Schema, obj any, serializer Serializer) (*Document, error) {
	id, err := objectID(obj)
	if err != nil {
		return nil, err
	}

	var attrs []Attribute
	if serializer != nil {
		var m map[string]any
		if cs, ok := serializer.(ContextSerializer); ok {
			m, err = cs.SerializeContext(ctx, obj)
		} else {
			m, err = serializer.Serialize(obj)
		}
		if err != nil {
			return nil, fmt.Errorf("serialize %q: %w", id, err)
		}
		attrs = orderAttributes(sch, m)
	} else {
		attrs, err = readAttributes(sch, obj)
		if err != nil {
			return nil, err
		}
	}

	return New(sch.IndexName(), id, attrs...)
}

// ForIdentity returns a Document of sch carrying only obj's key, enough
// for FT.DEL. No attribute is read and no serializer runs.
func ForIdentity(sch *schema.Schema, obj any) (*Document, error) {
	id, err := objectID(obj)
	if err != nil {
		return nil, err
	}
	return New(sch.IndexName(), id)
}

func objectID(obj any) (string, error) {
	if obj == nil {
		return "", fmt.Errorf("nil object: %w", ErrInvalidDocument)
	}
	if rv := reflect.ValueOf(obj); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", fmt.Errorf("nil %s: %w", rv.Type(), ErrInvalidDocument)
	}
	return identity(obj)
}

// orderAttributes puts schema-declared attributes first in declaration
// order, followed by the rest sorted by name for determinism.
func orderAttributes(sch *schema.Schema, m map[string]any) []Attribute {
	attrs := make([]Attribute, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range sch.Names() {
		if v, ok := m[name]; ok {
			attrs = append(attrs, Attribute{Name: name, Value: v})
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(m)-len(seen))
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		attrs = append(attrs, Attribute{Name: name, Value: m[name]})
	}
	return attrs
}

// Attributes reads every schema field off obj the way ForObject does without
// a serializer. Serializers that only augment the defaults start from it.
func Attributes(sch *schema.Schema, obj any) (map[string]any, error) {
	attrs, err := readAttributes(sch, obj)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m, nil
}

func readAttributes(sch *schema.Schema, obj any) ([]Attribute, error) {
	if r, ok := obj.(AttributeReader); ok {
		attrs := make([]Attribute, 0, len(sch.Names()))
		for _, name := range sch.Names() {
			if v, ok := r.SearchAttribute(name); ok {
				attrs = append(attrs, Attribute{Name: name, Value: v})
			}
		}
		return attrs, nil
	}

	meta, err := structMeta(obj)
	if err != nil {
		return nil, err
	}
	v := indirect(reflect.ValueOf(obj))
	attrs := make([]Attribute, 0, len(meta.attrs))
	for _, name := range sch.Names() {
		idx, ok := meta.attrs[name]
		if !ok {
			continue
		}
		fv := v.Field(idx)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		attrs = append(attrs, Attribute{Name: name, Value: fv.Interface()})
	}
	return attrs, nil
}

func identity(obj any) (string, error) {
	if i, ok := obj.(Identifier); ok {
		id := i.SearchID()
		if id == "" {
			return "", fmt.Errorf("empty id: %w", ErrInvalidDocument)
		}
		return id, nil
	}

	meta, err := structMeta(obj)
	if err != nil {
		return "", err
	}
	if meta.idIdx == -1 {
		return "", fmt.Errorf("no field with `%s:\"...,id\"` tag in %s: %w", tagKey, meta.typ, ErrInvalidDocument)
	}
	id := fmt.Sprint(indirect(reflect.ValueOf(obj)).Field(meta.idIdx).Interface())
	if id == "" {
		return "", fmt.Errorf("%s: empty id: %w", meta.typ, ErrInvalidDocument)
	}
	return id, nil
}

// objectMeta holds parsed struct tag metadata.
type objectMeta struct {
	typ   reflect.Type
	idIdx int
	attrs map[string]int // attribute name → struct field index
	names []string       // attribute names in field order
}

// TagNames returns the attribute names declared by T's struct tags in field order.
func TagNames(t reflect.Type) ([]string, error) {
	meta, err := parseStruct(t)
	if err != nil {
		return nil, err
	}
	return meta.names, nil
}

func structMeta(obj any) (*objectMeta, error) {
	return parseStruct(reflect.TypeOf(obj))
}

func parseStruct(t reflect.Type) (*objectMeta, error) {
	if t == nil {
		return nil, fmt.Errorf("nil type: %w", ErrInvalidDocument)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s is not a struct: %w", t, ErrInvalidDocument)
	}

	meta := &objectMeta{typ: t, idIdx: -1, attrs: make(map[string]int)}
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" || !f.IsExported() {
			continue
		}
		name, modifier, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		switch modifier {
		case "id":
			if meta.idIdx != -1 {
				return nil, fmt.Errorf("duplicate id tag on field %s: %w", f.Name, ErrInvalidDocument)
			}
			meta.idIdx = i
		case "":
			if _, dup := meta.attrs[name]; dup {
				return nil, fmt.Errorf("duplicate attribute %q on field %s: %w", name, f.Name, ErrInvalidDocument)
			}
			meta.attrs[name] = i
			meta.names = append(meta.names, name)
		default:
			return nil, fmt.Errorf("unknown modifier %q on field %s: %w", modifier, f.Name, ErrInvalidDocument)
		}
	}
	return meta, nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}
