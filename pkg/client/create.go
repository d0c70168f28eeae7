package client

import (
	"context"
	"net/http"

	"modeldctl/pkg/types"
)

// Create builds a model from its Modelfile and waits for the terminal
// status. The server must answer with a non-empty status or the response is
// treated as malformed.
func (c *Client) Create(ctx context.Context, req *types.CreateRequest) (*types.StatusResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, c.opErr("create", string(req.Name), err)
	}
	body := *req
	body.Stream = boolPtr(false)
	var out types.StatusResponse
	raw, err := c.do(ctx, http.MethodPost, "/api/create", &body, &out)
	if err != nil {
		return nil, c.opErr("create", string(req.Name), err)
	}
	if out.Status == "" {
		err := &DecodeError{Message: "response missing status", Body: raw}
		return nil, c.opErr("create", string(req.Name), err)
	}
	return &out, nil
}

// CreateStream builds a model and returns the stream of progress updates.
// The request is issued exactly once; closing the stream releases the
// connection.
func (c *Client) CreateStream(ctx context.Context, req *types.CreateRequest) (*Stream[types.ProgressUpdate], error) {
	if err := validateCreate(req); err != nil {
		return nil, c.opErr("create", string(req.Name), err)
	}
	body := *req
	body.Stream = boolPtr(true)
	resp, err := c.send(ctx, http.MethodPost, "/api/create", &body)
	if err != nil {
		return nil, c.opErr("create", string(req.Name), err)
	}
	return newStream[types.ProgressUpdate](ctx, resp.Body), nil
}

func validateCreate(req *types.CreateRequest) error {
	if err := requireRef("name", req.Name); err != nil {
		return err
	}
	return requireText("modelfile", req.Modelfile)
}
