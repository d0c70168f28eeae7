package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"modeldctl/pkg/types"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestCreateReturnsStatus(t *testing.T) {
	var gotBody []byte
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/create" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success"}`))
	})
	out, err := c.Create(context.Background(), &types.CreateRequest{Name: "mymodel", Modelfile: "FROM llama2"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.Status != "success" {
		t.Fatalf("status=%q", out.Status)
	}
	var req map[string]any
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if req["name"] != "mymodel" || req["modelfile"] != "FROM llama2" || req["stream"] != false {
		t.Fatalf("unexpected request body: %s", gotBody)
	}
}

func TestCreateMissingStatusIsDecodeError(t *testing.T) {
	raw := `{"unrelated":true}`
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(raw))
	})
	_, err := c.Create(context.Background(), &types.CreateRequest{Name: "m", Modelfile: "FROM x"})
	de, ok := AsDecodeError(err)
	if !ok {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if string(de.Body) != raw {
		t.Fatalf("raw body=%q", de.Body)
	}
}

func TestCreateUnparsableBodyIsDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})
	_, err := c.Create(context.Background(), &types.CreateRequest{Name: "m", Modelfile: "FROM x"})
	de, ok := AsDecodeError(err)
	if !ok {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if string(de.Body) != "not-json" {
		t.Fatalf("raw body=%q", de.Body)
	}
}

func TestServerErrorIsStatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model not found: m","code":404}`))
	})
	_, err := c.Push(context.Background(), &types.PushRequest{Name: "ns/m:tag"})
	se, ok := AsStatusError(err)
	if !ok {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound || se.Message != "model not found: m" {
		t.Fatalf("unexpected status error: %+v", se)
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound=false")
	}
	if !strings.Contains(string(se.Body), "model not found") {
		t.Fatalf("body=%q", se.Body)
	}
}

func TestValidationIssuesNoRequest(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	if _, err := c.Create(context.Background(), &types.CreateRequest{Name: "", Modelfile: "FROM x"}); !IsInvalidRequest(err) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if _, err := c.Create(context.Background(), &types.CreateRequest{Name: "m", Modelfile: "  "}); !IsInvalidRequest(err) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if _, err := c.PushStream(context.Background(), &types.PushRequest{Name: "a/b/c"}); !IsInvalidRequest(err) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if err := c.Copy(context.Background(), &types.CopyRequest{Source: "ok", Destination: ""}); !IsInvalidRequest(err) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("issued %d HTTP requests", n)
	}
}

func TestCancellationSurfacesContextError(t *testing.T) {
	started := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body: the server only detects the client disconnect
		// (and cancels r.Context()) once the request body is consumed.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	_, err := c.Create(ctx, &types.CreateRequest{Name: "m", Modelfile: "FROM x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok := AsStatusError(err); ok {
		t.Fatalf("cancellation mapped to StatusError: %v", err)
	}
	if _, ok := AsDecodeError(err); ok {
		t.Fatalf("cancellation mapped to DecodeError: %v", err)
	}
}

func TestPushBodyInsecureOmission(t *testing.T) {
	var bodies [][]byte
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, b)
		w.Write([]byte(`{"status":"success"}`))
	})
	if _, err := c.Push(context.Background(), &types.PushRequest{Name: "ns/model:tag"}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := c.Push(context.Background(), &types.PushRequest{Name: "ns/model:tag", Insecure: true}); err != nil {
		t.Fatalf("push insecure: %v", err)
	}
	if bytes.Contains(bodies[0], []byte("insecure")) {
		t.Fatalf("unset insecure serialized: %s", bodies[0])
	}
	if !bytes.Contains(bodies[1], []byte(`"insecure":true`)) {
		t.Fatalf("insecure=true missing: %s", bodies[1])
	}
}

func TestLoad(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/load" {
			t.Errorf("path=%s", r.URL.Path)
		}
		w.Write([]byte(`{"model":"mymodel","done":true}`))
	})
	out, err := c.Load(context.Background(), &types.LoadRequest{Model: "mymodel"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Model != "mymodel" || !out.Done {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestLoadMissingModelIsDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	_, err := c.Load(context.Background(), &types.LoadRequest{Model: "m"})
	if de, ok := AsDecodeError(err); !ok || string(de.Body) != `{}` {
		t.Fatalf("expected DecodeError with raw body, got %v", err)
	}
}

func TestListAndVersion(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/list":
			w.Write([]byte(`{"models":[{"name":"a:latest"},{"name":"b:latest"}]}`))
		case "/api/version":
			w.Write([]byte(`{"version":"0.3.1"}`))
		default:
			t.Errorf("path=%s", r.URL.Path)
		}
	})
	out, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Models) != 2 {
		t.Fatalf("models len=%d", len(out.Models))
	}
	v, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != "0.3.1" {
		t.Fatalf("version=%q", v)
	}
}

func TestNewDefaultsScheme(t *testing.T) {
	c, err := New("127.0.0.1:9000")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Base() != "http://127.0.0.1:9000" {
		t.Fatalf("base=%s", c.Base())
	}
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv("MODELD_HOST", "example.test:1234")
	c, err := FromEnvironment()
	if err != nil {
		t.Fatalf("from environment: %v", err)
	}
	if c.Base() != "http://example.test:1234" {
		t.Fatalf("base=%s", c.Base())
	}
}

func TestDeadlineSurfacesContextError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Version(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
