package config

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/redisearch/internal/schema"
	"github.com/kailas-cloud/redisearch/internal/schema/field"
)

// IndexConfig declares one index by host type name and its fields.
type IndexConfig struct {
	Type   string        `yaml:"type"` // host type name, e.g. "BlogPost"
	Fields []FieldConfig `yaml:"fields"`
	Embed  *EmbedConfig  `yaml:"embed"`
}

// EmbedConfig fills the vector field Target by embedding the text of Source
// whenever a document is written without a vector.
type EmbedConfig struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// FieldConfig declares one schema field. Only the keys relevant to the
// field type are read.
type FieldConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"` // text, tag, numeric, geo, vector
	Sortable bool   `yaml:"sortable"`
	NoIndex  bool   `yaml:"no_index"`

	// text
	Weight   float64 `yaml:"weight"`
	Phonetic string  `yaml:"phonetic"`
	NoStem   bool    `yaml:"no_stem"`

	// tag
	Separator     string `yaml:"separator"`
	CaseSensitive bool   `yaml:"case_sensitive"`

	// vector
	Algorithm      string `yaml:"algorithm"`
	ElementType    string `yaml:"element_type"`
	Dim            int    `yaml:"dim"`
	DistanceMetric string `yaml:"distance_metric"`
	InitialCap     int    `yaml:"initial_cap"`
	BlockSize      int    `yaml:"block_size"`
}

// IndexName derives the engine index name for ic.
func (c SearchConfig) IndexName(ic IndexConfig) string {
	return schema.IndexName(c.IndexPrefix, ic.Type, c.Env)
}

// Schema builds the schema declared by ic, named with the search prefix and env.
func (c SearchConfig) Schema(ic IndexConfig) (*schema.Schema, error) {
	fields := make([]field.Field, 0, len(ic.Fields))
	for _, fc := range ic.Fields {
		f, err := fc.Field()
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", ic.Type, err)
		}
		fields = append(fields, f)
	}
	return schema.New(c.IndexName(ic), fields...)
}

func (ic *IndexConfig) validate() error {
	if len(ic.Fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	types := make(map[string]string, len(ic.Fields))
	for i, fc := range ic.Fields {
		if _, err := fc.Field(); err != nil {
			return fmt.Errorf("fields[%d]: %w", i, err)
		}
		types[fc.Name] = strings.ToLower(fc.Type)
	}
	if e := ic.Embed; e != nil {
		if _, ok := types[e.Source]; !ok {
			return fmt.Errorf("embed.source %q is not a declared field", e.Source)
		}
		if types[e.Target] != "vector" {
			return fmt.Errorf("embed.target %q must be a vector field", e.Target)
		}
	}
	return nil
}

// Field converts the declaration into a schema field.
func (fc FieldConfig) Field() (field.Field, error) {
	if fc.Name == "" {
		return nil, fmt.Errorf("field name is required")
	}
	switch strings.ToLower(fc.Type) {
	case "text":
		return field.Text{
			FieldName: fc.Name, Weight: fc.Weight, Phonetic: fc.Phonetic,
			NoStem: fc.NoStem, Sortable: fc.Sortable, NoIndex: fc.NoIndex,
		}, nil
	case "tag":
		return field.Tag{
			FieldName: fc.Name, Separator: fc.Separator, CaseSensitive: fc.CaseSensitive,
			Sortable: fc.Sortable, NoIndex: fc.NoIndex,
		}, nil
	case "numeric":
		return field.Numeric{FieldName: fc.Name, Sortable: fc.Sortable, NoIndex: fc.NoIndex}, nil
	case "geo":
		return field.Geo{FieldName: fc.Name, Sortable: fc.Sortable, NoIndex: fc.NoIndex}, nil
	case "vector":
		return fc.vector()
	default:
		return nil, fmt.Errorf("field %q: unknown type %q", fc.Name, fc.Type)
	}
}

func (fc FieldConfig) vector() (field.Field, error) {
	opts := []field.VectorOption{field.WithDim(fc.Dim)}
	if fc.Algorithm != "" {
		opts = append(opts, field.WithAlgorithm(field.Algorithm(strings.ToUpper(fc.Algorithm))))
	}
	if fc.ElementType != "" {
		opts = append(opts, field.WithType(field.VectorType(strings.ToUpper(fc.ElementType))))
	}
	if fc.DistanceMetric != "" {
		opts = append(opts, field.WithDistanceMetric(field.DistanceMetric(strings.ToUpper(fc.DistanceMetric))))
	}
	if fc.InitialCap > 0 {
		opts = append(opts, field.WithInitialCap(fc.InitialCap))
	}
	if fc.BlockSize > 0 {
		opts = append(opts, field.WithBlockSize(fc.BlockSize))
	}
	if fc.Sortable {
		opts = append(opts, field.Sortable())
	}
	if fc.NoIndex {
		opts = append(opts, field.NoIndex())
	}

	v := field.NewVector(fc.Name, opts...).WithComputedCount()
	if err := field.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}
