package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("Load on empty store = ok=%v err=%v, want not found", ok, err)
	}

	doc := []byte(`{"contacts":[{"id":"c1","name":"김철수"}]}`)
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load = ok=%v err=%v", ok, err)
	}
	if string(got) != string(doc) {
		t.Errorf("Load = %s, want %s", got, doc)
	}

	// Saving again replaces the previous document.
	doc2 := []byte(`{"contacts":[]}`)
	if err := store.Save(ctx, doc2); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, _, _ = store.Load(ctx)
	if string(got) != string(doc2) {
		t.Errorf("Load after upsert = %s, want %s", got, doc2)
	}
}

func TestNewCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")
	store, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	store.Close()
}
