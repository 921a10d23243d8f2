package certloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cert-checker/internal/entity"
	"cert-checker/internal/infrastructure/log"
	"cert-checker/internal/testutils"
)

func TestDirLoader_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	loader := NewDirLoader(log.Discard())

	paths, err := loader.ListCandidates(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected 0 candidates, got %d", len(paths))
	}
}

func TestDirLoader_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	der := testutils.GenerateCert(t, testutils.CertOptions{CommonName: "a", NotAfter: time.Now().Add(time.Hour)})

	testutils.WriteFile(t, dir, "a.pem", testutils.PEM(der))
	testutils.WriteFile(t, dir, "b.CER", der)
	testutils.WriteFile(t, dir, "c.crt", der)
	testutils.WriteFile(t, dir, "readme.txt", []byte("README"))
	testutils.WriteFile(t, dir, "data.bin", []byte{0x00, 0xFF, 0xAA})

	paths, err := NewDirLoader(log.Discard()).ListCandidates(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.pem"),
		filepath.Join(dir, "b.CER"),
		filepath.Join(dir, "c.crt"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestDirLoader_NotRecursive(t *testing.T) {
	dir := t.TempDir()
	der := testutils.GenerateCert(t, testutils.CertOptions{CommonName: "root", NotAfter: time.Now().Add(time.Hour)})
	testutils.WriteFile(t, dir, "root.pem", testutils.PEM(der))

	subDir := filepath.Join(dir, "nested.pem")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	testutils.WriteFile(t, subDir, "sub.pem", testutils.PEM(der))

	paths, err := NewDirLoader(log.Discard()).ListCandidates(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "root.pem" {
		t.Fatalf("expected only root.pem, got %v", paths)
	}
}

func TestDirLoader_NonExistentDirectory(t *testing.T) {
	loader := NewDirLoader(log.Discard())

	_, err := loader.ListCandidates(context.Background(), "/path/that/does/not/exist")
	if err == nil {
		t.Fatalf("expected an error for non-existent directory")
	}
	cerr, ok := err.(*entity.CertError)
	if !ok || cerr.Type != entity.ErrTypeRead {
		t.Errorf("expected ErrTypeRead, got %v", err)
	}
}

func TestDirLoader_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewDirLoader(log.Discard()).ListCandidates(ctx, t.TempDir()); err == nil {
		t.Fatalf("expected an error for a cancelled context")
	}
}

func TestNewDirLoader(t *testing.T) {
	loader := NewDirLoader(log.Discard())

	if loader == nil {
		t.Fatal("NewDirLoader returned nil")
	}
	if loader.Logger == nil {
		t.Error("expected Logger to be set")
	}
}
