// Package client implements a typed HTTP client for a modeld-compatible
// model server. Each method issues one request against a fixed /api path,
// serializes its typed request body and decodes the typed result; streaming
// variants return a lazy Stream over the incremental progress events.
//
// The client never retries and recovers nothing internally: transport
// failures, non-success statuses and malformed payloads are logged and
// returned to the caller unchanged.
package client

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	defaultHost = "http://127.0.0.1:8080"
	userAgent   = "modeldctl"
)

// Client talks to one model server. It is safe for concurrent use; every
// call owns its own request lifetime and only the underlying connection
// pool of the http.Client is shared.
type Client struct {
	base *url.URL
	http *http.Client
	ua   string
	log  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (timeouts, transport,
// proxies). The default client has no timeout so streams can stay open.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger installs a structured logger used for error reporting.
// Logging is a side effect only; errors are returned regardless.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.ua = ua
		}
	}
}

// New creates a Client for the given host, e.g. "http://127.0.0.1:8080".
// A bare host:port is accepted and defaults to http.
func New(host string, opts ...Option) (*Client, error) {
	if host == "" {
		host = defaultHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse host %q: %w", host, err)
	}
	c := &Client{
		base: base,
		http: &http.Client{Timeout: 0},
		ua:   userAgent,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FromEnvironment creates a Client from the MODELD_HOST environment
// variable, falling back to the default local address.
func FromEnvironment(opts ...Option) (*Client, error) {
	return New(os.Getenv("MODELD_HOST"), opts...)
}

// Base returns the server base URL the client targets.
func (c *Client) Base() string { return c.base.String() }

// opErr logs a failed operation with its context and returns err unchanged.
func (c *Client) opErr(op string, model string, err error) error {
	c.log.Error().Str("op", op).Str("model", model).Err(err).Msg("modeld request failed")
	return err
}
