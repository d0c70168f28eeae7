package client

import (
	"context"
	"net/http"

	"modeldctl/pkg/types"
)

// Version returns the server version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var out types.VersionResponse
	raw, err := c.do(ctx, http.MethodGet, "/api/version", nil, &out)
	if err != nil {
		return "", c.opErr("version", "", err)
	}
	if out.Version == "" {
		err := &DecodeError{Message: "response missing version", Body: raw}
		return "", c.opErr("version", "", err)
	}
	return out.Version, nil
}

// Heartbeat reports whether the server is reachable and answering.
func (c *Client) Heartbeat(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return c.opErr("heartbeat", "", err)
	}
	resp.Body.Close()
	return nil
}
