package client

import (
	"context"
	"net/http"

	"modeldctl/pkg/types"
)

// List returns the models known to the server.
func (c *Client) List(ctx context.Context) (*types.ListResponse, error) {
	var out types.ListResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/list", nil, &out); err != nil {
		return nil, c.opErr("list", "", err)
	}
	return &out, nil
}

// Show returns the Modelfile and parameters of one model.
func (c *Client) Show(ctx context.Context, req *types.ShowRequest) (*types.ShowResponse, error) {
	if err := requireRef("name", req.Name); err != nil {
		return nil, c.opErr("show", string(req.Name), err)
	}
	var out types.ShowResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/show", req, &out); err != nil {
		return nil, c.opErr("show", string(req.Name), err)
	}
	return &out, nil
}

// Copy duplicates a model under a new ref.
func (c *Client) Copy(ctx context.Context, req *types.CopyRequest) error {
	if err := requireRef("source", req.Source); err != nil {
		return c.opErr("copy", string(req.Source), err)
	}
	if err := requireRef("destination", req.Destination); err != nil {
		return c.opErr("copy", string(req.Source), err)
	}
	if _, err := c.do(ctx, http.MethodPost, "/api/copy", req, nil); err != nil {
		return c.opErr("copy", string(req.Source), err)
	}
	return nil
}

// Delete removes a model from the server.
func (c *Client) Delete(ctx context.Context, req *types.DeleteRequest) error {
	if err := requireRef("name", req.Name); err != nil {
		return c.opErr("delete", string(req.Name), err)
	}
	if _, err := c.do(ctx, http.MethodPost, "/api/delete", req, nil); err != nil {
		return c.opErr("delete", string(req.Name), err)
	}
	return nil
}
