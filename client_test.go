package redisearch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNew_NoAddress(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	logger := zap.NewNop()
	reg := NewRegistry()
	cfg := newClientConfig([]Option{
		WithRedis([]string{"a:6379", "b:6379"}, "secret"),
		WithUsername("app"),
		WithDB(2),
		WithIndexPrefix("shop"),
		WithEnv("test"),
		WithReadinessTimeout(3 * time.Second),
		WithLogger(logger),
		WithMetrics(),
		WithRegistry(reg),
	})

	if len(cfg.addrs) != 2 || cfg.password != "secret" || cfg.username != "app" || cfg.db != 2 {
		t.Errorf("connection options not applied: %+v", cfg)
	}
	if cfg.indexPrefix != "shop" || cfg.env != "test" {
		t.Errorf("naming options not applied: %+v", cfg)
	}
	if cfg.readinessTimeout != 3*time.Second || cfg.logger != logger || !cfg.metrics || cfg.registry != reg {
		t.Errorf("misc options not applied: %+v", cfg)
	}
}

func TestClientOptions_Defaults(t *testing.T) {
	cfg := newClientConfig([]Option{WithLogger(nil), WithRegistry(nil), WithReadinessTimeout(0)})
	if cfg.logger == nil || cfg.registry == nil {
		t.Fatal("nil options must keep defaults")
	}
	if cfg.readinessTimeout != defaultReadinessTimeout {
		t.Errorf("readiness timeout = %v", cfg.readinessTimeout)
	}
}

func TestClient_IndexName(t *testing.T) {
	tests := []struct {
		prefix, env, typeName, want string
	}{
		{"", "", "Widget", "widgets"},
		{"app", "", "Widget", "app_widgets"},
		{"", "test", "Widget", "widgets_test"},
		{"app", "prod", "BlogPost", "app_blog_posts_prod"},
	}
	for _, tc := range tests {
		c, _ := newTestClient(WithIndexPrefix(tc.prefix), WithEnv(tc.env))
		if got := c.IndexName(tc.typeName); got != tc.want {
			t.Errorf("IndexName(%q) with %q/%q = %q, want %q", tc.typeName, tc.prefix, tc.env, got, tc.want)
		}
	}
}

func TestClient_NewIndexRegistersOnce(t *testing.T) {
	c, _ := newTestClient()

	first, err := c.NewIndex("Widget", widgetFields()...)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	second, err := c.NewIndex("Widget", NewText("other"))
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if first != second {
		t.Error("expected the registered index to be reused")
	}
	if ix, ok := c.Lookup("Widget"); !ok || ix != first {
		t.Error("Lookup did not return the registered index")
	}
	if len(c.Indexes()) != 1 {
		t.Errorf("expected 1 index, got %d", len(c.Indexes()))
	}
}

func TestClient_NewIndexErrors(t *testing.T) {
	c, _ := newTestClient()
	if _, err := c.NewIndex(""); err == nil {
		t.Error("expected error for empty type name")
	}
	if _, err := c.NewIndex("Widget"); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("expected ErrInvalidSchema for no fields, got %v", err)
	}
	if _, ok := c.Lookup("Widget"); ok {
		t.Error("failed build must not be registered")
	}
}

func TestClient_PingAndClose(t *testing.T) {
	c, ms := newTestClient()
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	c.Close()
	if !ms.closed {
		t.Error("expected store to be closed")
	}
}

func TestClient_WithMetricsInstrumentsStore(t *testing.T) {
	c, ms := newTestClient(WithMetrics())
	if c.store == Store(ms) {
		t.Fatal("expected store to be wrapped")
	}
	if c.recorder == nil {
		t.Error("expected reindex recorder")
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping through instrumented store: %v", err)
	}
}

func TestNewIndex_VectorCount(t *testing.T) {
	c, ms := newTestClient()
	ix, err := c.NewIndex("Article", NewText("body"), NewVector("embedding", Dim(2)))
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if err := ix.Create(context.Background()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := "articles SCHEMA body TEXT embedding VECTOR FLAT 8 TYPE FLOAT32 DIM 2 DISTANCE_METRIC COSINE BLOCK_SIZE 1024"
	if got := strings.Join(ms.indexes["articles"], " "); got != want {
		t.Errorf("FT.CREATE args:\n got %q\nwant %q", got, want)
	}
}
