package mockd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStorePutGetDigest(t *testing.T) {
	s := NewStore()
	info := s.Put("m:latest", "FROM llama2\n")
	if info.Digest == "" || info.Size == 0 {
		t.Fatalf("incomplete info: %+v", info)
	}
	got, modelfile, ok := s.Get("m:latest")
	if !ok || got.Digest != info.Digest || modelfile != "FROM llama2\n" {
		t.Fatalf("get mismatch: %+v %q %v", got, modelfile, ok)
	}
	// same content, same digest
	if s.Put("other", "FROM llama2\n").Digest != info.Digest {
		t.Fatalf("digest not content-addressed")
	}
}

func TestStoreCopyIsIndependent(t *testing.T) {
	s := NewStore()
	s.Put("src", "FROM a\n")
	if !s.Copy("src", "dst") {
		t.Fatalf("copy failed")
	}
	if s.Copy("ghost", "x") {
		t.Fatalf("copy of missing source succeeded")
	}
	if !s.Delete("src") {
		t.Fatalf("delete failed")
	}
	if _, _, ok := s.Get("dst"); !ok {
		t.Fatalf("copy removed with source")
	}
}

func TestStoreLoad(t *testing.T) {
	s := NewStore()
	if s.Load("ghost") {
		t.Fatalf("load of missing model succeeded")
	}
	s.Put("m", "FROM a\n")
	if !s.Load("m") {
		t.Fatalf("load failed")
	}
}

func TestSeedDir(t *testing.T) {
	d := t.TempDir()
	for _, n := range []string{"tiny.gguf", "big.Q4.gguf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(d, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	s := NewStore()
	n, err := s.SeedDir(d)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("seeded %d models, want 2", n)
	}
	if _, _, ok := s.Get("tiny:latest"); !ok {
		t.Fatalf("tiny:latest missing")
	}
	if _, _, ok := s.Get("big.Q4:latest"); !ok {
		t.Fatalf("big.Q4:latest missing")
	}
}

func TestSeedDirMissing(t *testing.T) {
	s := NewStore()
	if _, err := s.SeedDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
