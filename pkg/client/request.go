package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"modeldctl/pkg/types"
)

// maxErrorBody caps how much of an error response body is retained.
const maxErrorBody = 1 << 20

// send builds and executes one HTTP round trip and returns the live
// response. Non-2xx responses are drained, closed and mapped to a
// *StatusError; a canceled context surfaces as the context error, never as
// a transport error.
func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		se := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: raw}
		var er types.ErrorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			se.Message = er.Error
		}
		return nil, se
	}
	return resp, nil
}

// do executes a request and returns the full response body. When out is
// non-nil the body is also decoded into it; parse failures become a
// *DecodeError carrying the raw text.
func (c *Client) do(ctx context.Context, method, path string, in, out any) ([]byte, error) {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if out == nil {
		return raw, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return raw, &DecodeError{Message: "malformed response body", Body: raw, cause: err}
	}
	return raw, nil
}

// requireRef validates a model ref parameter before any network call.
func requireRef(field string, r types.Ref) error {
	if err := r.Validate(); err != nil {
		return &InvalidRequestError{Field: field, Reason: err.Error()}
	}
	return nil
}

// requireText validates a non-empty text parameter before any network call.
func requireText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return &InvalidRequestError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
