// Package storage keeps the documents rendered by the pipeline. The memory
// backend holds them in a bounded slice; the file backend additionally writes
// each document to <dir>/<kind>.<format>.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/eyexzy/serde-practice/internal/logger"
	"github.com/eyexzy/serde-practice/pkg/factory"
)

// Document is one encoded record.
type Document struct {
	Kind      string // entity name, e.g. "request" or "event"
	Format    string // "json" | "yaml" | "toml"
	Body      []byte
	CreatedAt time.Time
}

// Store is safe for concurrent use.
type Store interface {
	// Save persists a document. CreatedAt is filled in when zero.
	Save(ctx context.Context, doc Document) error

	// List returns matching documents in insertion order.
	List(ctx context.Context, query Query) ([]Document, error)
}

// Query filters List results. Empty fields match everything.
type Query struct {
	Kind   string
	Format string

	// Limit <= 0 means no limit.
	Limit int
}

func (query Query) matches(doc Document) bool {
	if query.Kind != "" && query.Kind != doc.Kind {
		return false
	}
	if query.Format != "" && query.Format != doc.Format {
		return false
	}
	return true
}

// NewStoreFromConfig creates a Store based on the storage configuration.
func NewStoreFromConfig(storageConfig factory.StorageSection) (Store, error) {
	switch storageConfig.Driver {
	case "memory", "":
		logger.StorageLog.Infof("Using in-memory storage backend (maxItems=%d)", storageConfig.MaxItems)
		return newMemoryStore(storageConfig.MaxItems), nil
	case "file":
		if storageConfig.Dir == "" {
			return nil, fmt.Errorf("file storage requires a directory")
		}
		if err := os.MkdirAll(storageConfig.Dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create storage dir %s", storageConfig.Dir)
		}
		logger.StorageLog.Infof("Using file storage backend (dir=%s, maxItems=%d)",
			storageConfig.Dir, storageConfig.MaxItems)
		return &fileStore{
			dir:   storageConfig.Dir,
			index: newMemoryStore(storageConfig.MaxItems),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", storageConfig.Driver)
	}
}

// -----------------------------------------------------------------------------
// In-memory implementation
// -----------------------------------------------------------------------------

type memoryStore struct {
	mutexForEntries sync.RWMutex
	entries         []Document

	maxItems int // 0 means "no explicit limit"
}

func newMemoryStore(maxItems int) *memoryStore {
	return &memoryStore{
		entries:  make([]Document, 0),
		maxItems: maxItems,
	}
}

func (store *memoryStore) Save(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	doc.Body = append([]byte(nil), doc.Body...)

	store.mutexForEntries.Lock()
	defer store.mutexForEntries.Unlock()

	store.entries = append(store.entries, doc)

	if store.maxItems > 0 && len(store.entries) > store.maxItems {
		overflow := len(store.entries) - store.maxItems
		logger.StorageLog.Warnf(
			"memory storage reached maxItems=%d, dropping oldest %d entries",
			store.maxItems, overflow,
		)
		store.entries = append([]Document(nil), store.entries[overflow:]...)
	}
	return nil
}

func (store *memoryStore) List(ctx context.Context, query Query) ([]Document, error) {
	store.mutexForEntries.RLock()
	defer store.mutexForEntries.RUnlock()

	results := make([]Document, 0)
	for _, doc := range store.entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !query.matches(doc) {
			continue
		}
		results = append(results, doc)

		if query.Limit > 0 && len(results) >= query.Limit {
			break
		}
	}
	return results, nil
}

// -----------------------------------------------------------------------------
// File implementation
// -----------------------------------------------------------------------------

// fileStore writes the latest document per (kind, format) to disk and keeps
// the full history in a memory index for List.
type fileStore struct {
	mutexForFiles sync.Mutex
	dir           string
	index         *memoryStore
}

// Path returns the file a document of the given kind and format is written to.
func Path(dir, kind, format string) string {
	return filepath.Join(dir, kind+"."+format)
}

func (store *fileStore) Save(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Kind == "" || doc.Format == "" {
		return fmt.Errorf("file storage requires kind and format, got %q/%q", doc.Kind, doc.Format)
	}

	path := Path(store.dir, doc.Kind, doc.Format)

	store.mutexForFiles.Lock()
	err := os.WriteFile(path, doc.Body, 0o644)
	store.mutexForFiles.Unlock()
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	logger.StorageLog.Debugf("wrote %d byte(s) to %s", len(doc.Body), path)

	return store.index.Save(ctx, doc)
}

func (store *fileStore) List(ctx context.Context, query Query) ([]Document, error) {
	return store.index.List(ctx, query)
}
