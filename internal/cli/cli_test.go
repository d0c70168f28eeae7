package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modeldctl/internal/mockd"
)

func startMock(t *testing.T) (*mockd.Store, *httptest.Server) {
	t.Helper()
	store := mockd.NewStore()
	srv := httptest.NewServer(mockd.NewMux(store, mockd.Options{Version: "9.9.9"}))
	t.Cleanup(srv.Close)
	return store, srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(&out)
	root.SetArgs(append([]string{"--host", srv.URL, "--log-level", "off"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCreateCommandStreamsProgress(t *testing.T) {
	store, srv := startMock(t)
	d := t.TempDir()
	mf := filepath.Join(d, "Modelfile")
	if err := os.WriteFile(mf, []byte("FROM llama2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := run(t, srv, "create", "mymodel", "-f", mf)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "success") {
		t.Fatalf("output=%q", out)
	}
	if _, _, ok := store.Get("mymodel"); !ok {
		t.Fatalf("model not created on server")
	}
}

func TestCreateCommandMissingModelfile(t *testing.T) {
	_, srv := startMock(t)
	if _, err := run(t, srv, "create", "mymodel", "-f", "/nonexistent/Modelfile"); err == nil {
		t.Fatalf("expected error for missing modelfile")
	}
}

func TestPushCommandUnknownModel(t *testing.T) {
	_, srv := startMock(t)
	_, err := run(t, srv, "push", "ghost")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err=%v", err)
	}
}

func TestListCommand(t *testing.T) {
	store, srv := startMock(t)
	store.Put("a:latest", "FROM a\n")
	out, err := run(t, srv, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "a:latest") {
		t.Fatalf("output=%q", out)
	}
}

func TestCopyAndDeleteCommands(t *testing.T) {
	store, srv := startMock(t)
	store.Put("src", "FROM a\n")
	if _, err := run(t, srv, "cp", "src", "dst"); err != nil {
		t.Fatalf("cp: %v", err)
	}
	if _, err := run(t, srv, "rm", "src"); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, _, ok := store.Get("dst"); !ok {
		t.Fatalf("dst missing after copy")
	}
	if _, _, ok := store.Get("src"); ok {
		t.Fatalf("src present after rm")
	}
}

func TestVersionCommand(t *testing.T) {
	_, srv := startMock(t)
	out, err := run(t, srv, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "client "+Version) || !strings.Contains(out, "server 9.9.9") {
		t.Fatalf("output=%q", out)
	}
}

func TestArgValidation(t *testing.T) {
	_, srv := startMock(t)
	if _, err := run(t, srv, "create"); err == nil {
		t.Fatalf("create without args should fail")
	}
	if _, err := run(t, srv, "cp", "only-one"); err == nil {
		t.Fatalf("cp with one arg should fail")
	}
}

func TestConfigFileFlag(t *testing.T) {
	store, srv := startMock(t)
	store.Put("cfg-model", "FROM x\n")
	t.Setenv("MODELD_HOST", "")
	d := t.TempDir()
	cfgPath := filepath.Join(d, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("host: "+srv.URL+"\nlog_level: \"off\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	root := NewRootCmd(&out)
	root.SetArgs([]string{"--config", cfgPath, "list"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list via config: %v", err)
	}
	if !strings.Contains(out.String(), "cfg-model") {
		t.Fatalf("output=%q", out.String())
	}
}
