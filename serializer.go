package redisearch

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/schema"
	openaiEmb "github.com/kailas-cloud/redisearch/internal/transport/openai"
)

const defaultEmbedTimeout = 30 * time.Second

// Serializer turns a host object into its attribute map.
type Serializer = document.Serializer

// SerializerFunc adapts a function to Serializer.
type SerializerFunc = document.SerializerFunc

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIConfig configures NewOpenAIEmbedder.
type OpenAIConfig = openaiEmb.Config

// NewOpenAIEmbedder returns an Embedder for any OpenAI-compatible endpoint.
func NewOpenAIEmbedder(cfg OpenAIConfig) Embedder {
	return openaiEmb.NewEmbedder(&cfg)
}

// EmbeddingSerializer fills a vector attribute from a text attribute. The
// other attributes come from the wrapped serializer, or from struct tags
// when there is none.
type EmbeddingSerializer struct {
	schema   *schema.Schema
	base     Serializer
	source   string
	target   string
	embedder Embedder
	timeout  time.Duration
}

// NewEmbeddingSerializer embeds attribute source into attribute target.
// base may be nil.
func NewEmbeddingSerializer(sch *Schema, base Serializer, source, target string, e Embedder) *EmbeddingSerializer {
	return &EmbeddingSerializer{
		schema:   sch,
		base:     base,
		source:   source,
		target:   target,
		embedder: e,
		timeout:  defaultEmbedTimeout,
	}
}

// WithTimeout bounds each embedding call.
func (s *EmbeddingSerializer) WithTimeout(d time.Duration) *EmbeddingSerializer {
	if d > 0 {
		s.timeout = d
	}
	return s
}

var _ document.ContextSerializer = (*EmbeddingSerializer)(nil)

// Serialize implements Serializer for callers without a context.
func (s *EmbeddingSerializer) Serialize(obj any) (map[string]any, error) {
	return s.SerializeContext(context.Background(), obj)
}

// SerializeContext embeds under ctx, bounded by the serializer timeout. An
// attribute already holding a target value or an empty source skips the
// embedding call.
func (s *EmbeddingSerializer) SerializeContext(ctx context.Context, obj any) (map[string]any, error) {
	var (
		attrs map[string]any
		err   error
	)
	if s.base != nil {
		attrs, err = s.base.Serialize(obj)
	} else {
		attrs, err = document.Attributes(s.schema, obj)
	}
	if err != nil {
		return nil, err //nolint:wrapcheck // ForObject adds the id
	}
	if attrs == nil {
		attrs = make(map[string]any)
	}
	if !isUnset(attrs[s.target]) {
		return attrs, nil
	}

	text := sourceText(attrs[s.source])
	if text == "" {
		delete(attrs, s.target)
		return attrs, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", s.source, err)
	}
	attrs[s.target] = vec
	return attrs, nil
}

func isUnset(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func sourceText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, " ")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
