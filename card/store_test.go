package card

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStorePaths(t *testing.T) {
	store := NewStore(filepath.Join("site", "assets", "og_images"))

	want := filepath.Join("site", "assets", "og_images", "posts-hello-world.png")
	if got := store.Path("posts-hello-world"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestOutputDir(t *testing.T) {
	want := filepath.Join("site", "assets", "og_images")
	if got := OutputDir("site"); got != want {
		t.Errorf("OutputDir = %q, want %q", got, want)
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "og_images"))

	if err := store.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}

	if store.Exists("posts-hello") {
		t.Error("Artifact should not exist yet")
	}

	if err := store.Create("posts-hello"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !store.Exists("posts-hello") {
		t.Error("Artifact should exist after Create")
	}

	// A second claim on the same key must fail with an exists error.
	err := store.Create("posts-hello")
	if err == nil {
		t.Fatal("Expected second Create to fail")
	}
	if !os.IsExist(err) {
		t.Errorf("Expected os.IsExist error, got %v", err)
	}

	if err := store.Remove("posts-hello"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if store.Exists("posts-hello") {
		t.Error("Artifact should be gone after Remove")
	}

	// Removing again is a no-op, not an error.
	if err := store.Remove("posts-hello"); err != nil {
		t.Errorf("Remove of missing artifact should not fail: %v", err)
	}
}
