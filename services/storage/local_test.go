package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"glowbook/utils"
)

func TestLocalFileStore_SaveAndDelete(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	name, err := store.Save(ctx, []byte("fake-png-bytes"), "avatar.png", "image/png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(name) != ".png" {
		t.Errorf("stored name %q should keep the extension", name)
	}

	data, err := os.ReadFile(filepath.Join(store.dir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(data, []byte("fake-png-bytes")) {
		t.Error("stored bytes differ from input")
	}

	if err := store.Delete(ctx, name); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.dir, name)); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, name); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestLocalFileStore_RejectsNonImages(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, err = store.Save(context.Background(), []byte("pdf"), "doc.pdf", "application/pdf")
	if utils.KindOf(err) != utils.KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLocalFileStore_RejectsOversizedFiles(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	big := make([]byte, MaxImageSize+1)
	_, err = store.Save(context.Background(), big, "huge.jpg", "image/jpeg")
	if utils.KindOf(err) != utils.KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLocalFileStore_RejectsPathTraversalOnDelete(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Delete(context.Background(), "../escape.png"); utils.KindOf(err) != utils.KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
