package index

import (
	"context"

	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// Observer is called by a persistence layer after host objects change.
type Observer interface {
	OnAfterCreateOrUpdate(ctx context.Context, obj any) error
	OnAfterDestroy(ctx context.Context, obj any) error
}

var _ Observer = (*Hooks)(nil)

// Hooks keeps an Index in sync with host object saves and deletes.
type Hooks struct {
	index      *Index
	serializer document.Serializer
}

// NewHooks binds hooks to ix; serializer may be nil.
func NewHooks(ix *Index, serializer document.Serializer) *Hooks {
	return &Hooks{index: ix, serializer: serializer}
}

// OnAfterCreateOrUpdate replaces the object's document.
func (h *Hooks) OnAfterCreateOrUpdate(ctx context.Context, obj any) error {
	doc, err := h.index.DocumentContext(ctx, obj, h.serializer)
	if err != nil {
		return err
	}
	return h.index.Add(ctx, doc, query.AddOptions{Replace: true})
}

// OnAfterDestroy removes the object's document and its stored hash. Only
// the object's identity is read; the serializer is not called.
func (h *Hooks) OnAfterDestroy(ctx context.Context, obj any) error {
	doc, err := h.index.DocumentFor(obj)
	if err != nil {
		return err
	}
	return h.index.Del(ctx, doc, true)
}
