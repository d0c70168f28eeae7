package client

import (
	"context"
	"net/http"

	"modeldctl/pkg/types"
)

// Pull downloads a model from its registry and waits for the terminal
// status.
func (c *Client) Pull(ctx context.Context, req *types.PullRequest) (*types.StatusResponse, error) {
	if err := requireRef("name", req.Name); err != nil {
		return nil, c.opErr("pull", string(req.Name), err)
	}
	body := *req
	body.Stream = boolPtr(false)
	var out types.StatusResponse
	raw, err := c.do(ctx, http.MethodPost, "/api/pull", &body, &out)
	if err != nil {
		return nil, c.opErr("pull", string(req.Name), err)
	}
	if out.Status == "" {
		err := &DecodeError{Message: "response missing status", Body: raw}
		return nil, c.opErr("pull", string(req.Name), err)
	}
	return &out, nil
}

// PullStream downloads a model and returns the stream of progress updates
// (layer digests with total/completed byte counts).
func (c *Client) PullStream(ctx context.Context, req *types.PullRequest) (*Stream[types.ProgressUpdate], error) {
	if err := requireRef("name", req.Name); err != nil {
		return nil, c.opErr("pull", string(req.Name), err)
	}
	body := *req
	body.Stream = boolPtr(true)
	resp, err := c.send(ctx, http.MethodPost, "/api/pull", &body)
	if err != nil {
		return nil, c.opErr("pull", string(req.Name), err)
	}
	return newStream[types.ProgressUpdate](ctx, resp.Body), nil
}
