package client

import (
	"context"
	"net/http"

	"modeldctl/pkg/types"
)

// Load brings an already present model into server memory. The server must
// answer with the loaded model name or the response is treated as malformed.
func (c *Client) Load(ctx context.Context, req *types.LoadRequest) (*types.LoadResponse, error) {
	if err := requireRef("model", req.Model); err != nil {
		return nil, c.opErr("load", string(req.Model), err)
	}
	var out types.LoadResponse
	raw, err := c.do(ctx, http.MethodPost, "/api/load", req, &out)
	if err != nil {
		return nil, c.opErr("load", string(req.Model), err)
	}
	if out.Model == "" {
		err := &DecodeError{Message: "response missing model", Body: raw}
		return nil, c.opErr("load", string(req.Model), err)
	}
	return &out, nil
}
