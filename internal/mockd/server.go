package mockd

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"modeldctl/pkg/types"
)

// maxBodyBytes caps request bodies on JSON endpoints.
const maxBodyBytes int64 = 1 << 20

// Options configures the mock server mux.
type Options struct {
	// Version reported by /api/version.
	Version string
	// StreamDelay is the pause between streamed progress frames. Zero
	// streams as fast as the connection allows.
	StreamDelay time.Duration
	// CORSOrigins enables CORS for the given origins when non-empty.
	CORSOrigins []string
	// Logger receives request logs. The zero value disables logging.
	Logger zerolog.Logger
}

// NewMux builds the mock server handler around a Store.
func NewMux(store *Store, opts Options) http.Handler {
	if opts.Version == "" {
		opts.Version = "0.0.0-mock"
	}
	log := opts.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodHead},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			start := time.Now()
			next.ServeHTTP(w, req)
			log.Debug().Str("method", req.Method).Str("path", req.URL.Path).Dur("dur", time.Since(start)).Msg("request")
		})
	})

	r.Post("/api/create", func(w http.ResponseWriter, req *http.Request) {
		var body types.CreateRequest
		if !decodeBody(w, req, &body) {
			return
		}
		if err := body.Name.Validate(); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(body.Modelfile) == "" {
			writeJSONError(w, http.StatusBadRequest, "modelfile is required")
			return
		}
		info := store.Put(body.Name, body.Modelfile)
		if !wantsStream(body.Stream) {
			writeJSON(w, types.StatusResponse{Status: "success"})
			return
		}
		streamUpdates(w, req.Context(), opts.StreamDelay, []types.ProgressUpdate{
			{Status: "reading modelfile"},
			{Status: "creating layer", Digest: info.Digest, Total: info.Size, Completed: info.Size},
			{Status: "writing manifest"},
			{Status: "success"},
		})
	})

	r.Post("/api/push", func(w http.ResponseWriter, req *http.Request) {
		var body types.PushRequest
		if !decodeBody(w, req, &body) {
			return
		}
		info, _, ok := store.Get(body.Name)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "model not found: "+string(body.Name))
			return
		}
		if !wantsStream(body.Stream) {
			writeJSON(w, types.StatusResponse{Status: "success"})
			return
		}
		streamUpdates(w, req.Context(), opts.StreamDelay, []types.ProgressUpdate{
			{Status: "retrieving manifest"},
			{Status: "pushing " + info.Digest, Digest: info.Digest, Total: info.Size, Completed: info.Size / 2},
			{Status: "pushing " + info.Digest, Digest: info.Digest, Total: info.Size, Completed: info.Size},
			{Status: "success"},
		})
	})

	r.Post("/api/pull", func(w http.ResponseWriter, req *http.Request) {
		var body types.PullRequest
		if !decodeBody(w, req, &body) {
			return
		}
		if err := body.Name.Validate(); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Pulling an unknown model synthesizes it, like a registry fetch.
		info, _, ok := store.Get(body.Name)
		if !ok {
			info = store.Put(body.Name, "FROM "+string(body.Name)+"\n")
		}
		if !wantsStream(body.Stream) {
			writeJSON(w, types.StatusResponse{Status: "success"})
			return
		}
		streamUpdates(w, req.Context(), opts.StreamDelay, []types.ProgressUpdate{
			{Status: "pulling manifest"},
			{Status: "pulling " + info.Digest, Digest: info.Digest, Total: info.Size, Completed: 0},
			{Status: "pulling " + info.Digest, Digest: info.Digest, Total: info.Size, Completed: info.Size},
			{Status: "verifying sha256 digest"},
			{Status: "success"},
		})
	})

	r.Post("/api/load", func(w http.ResponseWriter, req *http.Request) {
		var body types.LoadRequest
		if !decodeBody(w, req, &body) {
			return
		}
		if !store.Load(body.Model) {
			writeJSONError(w, http.StatusNotFound, "model not found: "+string(body.Model))
			return
		}
		writeJSON(w, types.LoadResponse{Model: body.Model, Done: true})
	})

	r.Get("/api/list", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, types.ListResponse{Models: store.List()})
	})

	r.Post("/api/show", func(w http.ResponseWriter, req *http.Request) {
		var body types.ShowRequest
		if !decodeBody(w, req, &body) {
			return
		}
		_, modelfile, ok := store.Get(body.Name)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "model not found: "+string(body.Name))
			return
		}
		writeJSON(w, types.ShowResponse{Modelfile: modelfile})
	})

	r.Post("/api/copy", func(w http.ResponseWriter, req *http.Request) {
		var body types.CopyRequest
		if !decodeBody(w, req, &body) {
			return
		}
		if err := body.Destination.Validate(); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !store.Copy(body.Source, body.Destination) {
			writeJSONError(w, http.StatusNotFound, "model not found: "+string(body.Source))
			return
		}
		writeJSON(w, struct{}{})
	})

	r.Post("/api/delete", func(w http.ResponseWriter, req *http.Request) {
		var body types.DeleteRequest
		if !decodeBody(w, req, &body) {
			return
		}
		if !store.Delete(body.Name) {
			writeJSONError(w, http.StatusNotFound, "model not found: "+string(body.Name))
			return
		}
		writeJSON(w, struct{}{})
	})

	r.Get("/api/version", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, types.VersionResponse{Version: opts.Version})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// wantsStream interprets the tri-state stream field; the API streams by
// default when the field is absent.
func wantsStream(stream *bool) bool {
	return stream == nil || *stream
}

// decodeBody decodes a JSON request body, writing the error response itself
// when the payload is unusable.
func decodeBody(w http.ResponseWriter, req *http.Request, out any) bool {
	ct := req.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(out); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// streamUpdates writes progress frames as NDJSON, flushing after each one
// and stopping early when the client goes away.
func streamUpdates(w http.ResponseWriter, ctx context.Context, delay time.Duration, updates []types.ProgressUpdate) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)
	flush := func() {}
	if f, ok := w.(http.Flusher); ok {
		flush = f.Flush
	}
	for _, u := range updates {
		if ctx.Err() != nil {
			return
		}
		if err := enc.Encode(u); err != nil {
			return
		}
		flush()
		if delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}
}
