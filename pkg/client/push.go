package client

import (
	"context"
	"net/http"

	"modeldctl/pkg/types"
)

// Push uploads a model to its registry and waits for the terminal status.
func (c *Client) Push(ctx context.Context, req *types.PushRequest) (*types.StatusResponse, error) {
	if err := requireRef("name", req.Name); err != nil {
		return nil, c.opErr("push", string(req.Name), err)
	}
	body := *req
	body.Stream = boolPtr(false)
	var out types.StatusResponse
	raw, err := c.do(ctx, http.MethodPost, "/api/push", &body, &out)
	if err != nil {
		return nil, c.opErr("push", string(req.Name), err)
	}
	if out.Status == "" {
		err := &DecodeError{Message: "response missing status", Body: raw}
		return nil, c.opErr("push", string(req.Name), err)
	}
	return &out, nil
}

// PushStream uploads a model and returns the stream of progress updates.
func (c *Client) PushStream(ctx context.Context, req *types.PushRequest) (*Stream[types.ProgressUpdate], error) {
	if err := requireRef("name", req.Name); err != nil {
		return nil, c.opErr("push", string(req.Name), err)
	}
	body := *req
	body.Stream = boolPtr(true)
	resp, err := c.send(ctx, http.MethodPost, "/api/push", &body)
	if err != nil {
		return nil, c.opErr("push", string(req.Name), err)
	}
	return newStream[types.ProgressUpdate](ctx, resp.Body), nil
}
