package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/document"
	logpkg "github.com/kailas-cloud/redisearch/internal/logger"
	"github.com/kailas-cloud/redisearch/internal/query"
)

const maxDocumentBytes = 1 << 20

// payload is a document submitted over HTTP. It resolves its own identity
// and attributes so the index maps it without struct tags.
type payload struct {
	id    string
	attrs map[string]any
}

func (p *payload) SearchID() string { return p.id }

func (p *payload) SearchAttribute(name string) (any, bool) {
	v, ok := p.attrs[name]
	return v, ok
}

// PutDocument handles PUT /indexes/{name}/documents/{id}. The body is a JSON
// object of attributes; the document is replaced as a whole.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	ix, r, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var attrs map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err := dec.Decode(&attrs); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}
	if err := normalizeAttributes(attrs); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidDocument, err.Error())
		return
	}

	p := &payload{id: chi.URLParam(r, "id"), attrs: attrs}
	doc, err := ix.DocumentContext(r.Context(), p, s.cfg.Serializers[chi.URLParam(r, "name")])
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := ix.Add(r.Context(), doc, query.AddOptions{Replace: true}); err != nil {
		s.handleError(w, r, err)
		return
	}
	logpkg.FromContext(r.Context()).Debug("Document saved", zap.String("key", doc.Key()))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocument handles DELETE /indexes/{name}/documents/{id}, removing the
// document together with its hash.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ix, r, ok := s.lookup(w, r)
	if !ok {
		return
	}
	doc, err := document.New(ix.Name(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := ix.Del(r.Context(), doc, true); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// normalizeAttributes turns JSON arrays into the typed slices the encoders
// accept: numbers become []float64 (vectors), strings become []string (tags).
func normalizeAttributes(attrs map[string]any) error {
	for name, v := range attrs {
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		typed, err := typedSlice(arr)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}
		attrs[name] = typed
	}
	return nil
}

func typedSlice(arr []any) (any, error) {
	if len(arr) == 0 {
		return []string{}, nil
	}
	switch arr[0].(type) {
	case float64:
		out := make([]float64, len(arr))
		for i, x := range arr {
			f, ok := x.(float64)
			if !ok {
				return nil, fmt.Errorf("mixed array element %d", i)
			}
			out[i] = f
		}
		return out, nil
	case string:
		out := make([]string, len(arr))
		for i, x := range arr {
			str, ok := x.(string)
			if !ok {
				return nil, fmt.Errorf("mixed array element %d", i)
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported array element %T", arr[0])
	}
}
