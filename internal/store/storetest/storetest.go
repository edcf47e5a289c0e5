// Package storetest provides an in-memory store for package tests.
package storetest

import (
	"context"
	"testing"

	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/config"
	"github.com/mazajretail/shishapos-backend/pkg/db"
	"github.com/mazajretail/shishapos-backend/pkg/migrate"
)

// New returns a store backed by an in-memory SQLite database with the full
// schema applied. Snapshots are disabled.
func New(t *testing.T) *store.Store {
	t.Helper()
	return newStore(t, "")
}

// NewWithExport returns a store that writes JSON snapshots to dir.
func NewWithExport(t *testing.T, dir string) *store.Store {
	t.Helper()
	return newStore(t, dir)
}

func newStore(t *testing.T, exportDir string) *store.Store {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{Path: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	if err := migrate.Run(client); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	s, err := store.New(client, nil, exportDir, nil)
	if err != nil {
		t.Fatalf("building store: %v", err)
	}
	return s
}
