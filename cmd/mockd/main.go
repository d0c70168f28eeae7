package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"modeldctl/internal/mockd"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("MOCKD_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	modelsDir := flag.String("models-dir", "", "Optional directory to seed with *.gguf model files")
	version := flag.String("version", "0.0.0-mock", "Version reported by /api/version")
	streamDelay := flag.Duration("stream-delay", 50*time.Millisecond, "Pause between streamed progress frames")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated CORS origins (empty disables CORS)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	store := mockd.NewStore()
	if *modelsDir != "" {
		n, err := store.SeedDir(*modelsDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", *modelsDir).Msg("failed to seed models")
		}
		logger.Info().Int("models", n).Str("dir", *modelsDir).Msg("seeded model store")
	}

	opts := mockd.Options{
		Version:     *version,
		StreamDelay: *streamDelay,
		Logger:      logger,
	}
	opts.CORSOrigins = splitCSV(*corsOrigins)

	srv := &http.Server{Addr: *addr, Handler: mockd.NewMux(store, opts)}

	go func() {
		logger.Info().Str("addr", *addr).Msg("mockd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
