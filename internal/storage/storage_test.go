package storage

import (
	"context"
	"os"
	"testing"

	"github.com/eyexzy/serde-practice/pkg/factory"
)

func TestMemoryStore_SaveAndList(t *testing.T) {
	store, err := NewStoreFromConfig(factory.StorageSection{Driver: "memory"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	docs := []Document{
		{Kind: "request", Format: "json", Body: []byte(`{}`)},
		{Kind: "request", Format: "yaml", Body: []byte("{}\n")},
		{Kind: "event", Format: "json", Body: []byte(`{"name":"x"}`)},
	}
	for _, doc := range docs {
		if err := store.Save(ctx, doc); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	all, err := store.List(ctx, Query{})
	if err != nil || len(all) != 3 {
		t.Fatalf("list all = %d, %v", len(all), err)
	}
	if all[0].CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not filled")
	}

	requests, _ := store.List(ctx, Query{Kind: "request"})
	if len(requests) != 2 || requests[0].Format != "json" || requests[1].Format != "yaml" {
		t.Fatalf("request docs = %+v", requests)
	}

	jsonDocs, _ := store.List(ctx, Query{Format: "json", Limit: 1})
	if len(jsonDocs) != 1 || jsonDocs[0].Kind != "request" {
		t.Fatalf("limited json docs = %+v", jsonDocs)
	}
}

func TestMemoryStore_CopiesBody(t *testing.T) {
	store := newMemoryStore(0)
	body := []byte("abc")
	if err := store.Save(context.Background(), Document{Kind: "k", Format: "json", Body: body}); err != nil {
		t.Fatalf("save: %v", err)
	}
	body[0] = 'z'

	docs, _ := store.List(context.Background(), Query{})
	if string(docs[0].Body) != "abc" {
		t.Fatalf("stored body aliased caller slice: %q", docs[0].Body)
	}
}

func TestMemoryStore_MaxItemsDropsOldest(t *testing.T) {
	store := newMemoryStore(2)
	ctx := context.Background()
	for _, format := range []string{"json", "yaml", "toml"} {
		if err := store.Save(ctx, Document{Kind: "request", Format: format}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	docs, _ := store.List(ctx, Query{})
	if len(docs) != 2 || docs[0].Format != "yaml" || docs[1].Format != "toml" {
		t.Fatalf("docs after overflow = %+v", docs)
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := newMemoryStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, Document{Kind: "k"}); err == nil {
		t.Fatalf("expected error on canceled context")
	}
}

func TestFileStore_WritesDocuments(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStoreFromConfig(factory.StorageSection{Driver: "file", Dir: dir})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, Document{Kind: "event", Format: "toml", Body: []byte("name = 'a'\n")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, Document{Kind: "event", Format: "toml", Body: []byte("name = 'b'\n")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(Path(dir, "event", "toml"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "name = 'b'\n" {
		t.Fatalf("file content = %q, want latest document", data)
	}

	docs, _ := store.List(ctx, Query{Kind: "event"})
	if len(docs) != 2 {
		t.Fatalf("index holds %d docs, want 2", len(docs))
	}

	if err := store.Save(ctx, Document{Format: "json"}); err == nil {
		t.Fatalf("expected error for missing kind")
	}
}

func TestNewStoreFromConfig_Errors(t *testing.T) {
	if _, err := NewStoreFromConfig(factory.StorageSection{Driver: "mongo"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
	if _, err := NewStoreFromConfig(factory.StorageSection{Driver: "file"}); err == nil {
		t.Fatalf("expected missing dir error")
	}
}
