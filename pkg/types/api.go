// Package types defines the request and response payloads exchanged with a
// modeld-compatible model server. All values are transient: a request is
// constructed per call, serialized once and discarded. Optional fields carry
// omitempty so an unset value is absent from the wire, never null.
package types

import "time"

// CreateRequest is the JSON body for POST /api/create.
type CreateRequest struct {
	// Name of the model to create, as namespace/model:tag.
	Name Ref `json:"name"`
	// Modelfile is the full text of the build manifest.
	Modelfile string `json:"modelfile"`
	// Stream requests incremental progress updates. Unset lets the server
	// decide; the client sets it explicitly per call.
	Stream *bool `json:"stream,omitempty"`
}

// PushRequest is the JSON body for POST /api/push.
type PushRequest struct {
	// Name of the model to upload.
	Name Ref `json:"name"`
	// Insecure allows plain-HTTP registries. Absent from the body when unset.
	Insecure bool  `json:"insecure,omitempty"`
	Stream   *bool `json:"stream,omitempty"`
}

// PullRequest is the JSON body for POST /api/pull.
type PullRequest struct {
	Name     Ref   `json:"name"`
	Insecure bool  `json:"insecure,omitempty"`
	Stream   *bool `json:"stream,omitempty"`
}

// LoadRequest is the JSON body for POST /api/load. Loading brings an already
// present model into server memory without generating anything.
type LoadRequest struct {
	Model Ref `json:"model"`
}

// DeleteRequest is the JSON body for POST /api/delete.
type DeleteRequest struct {
	Name Ref `json:"name"`
}

// CopyRequest is the JSON body for POST /api/copy.
type CopyRequest struct {
	Source      Ref `json:"source"`
	Destination Ref `json:"destination"`
}

// ShowRequest is the JSON body for POST /api/show.
type ShowRequest struct {
	Name Ref `json:"name"`
}

// StatusResponse is the terminal result of a create, push or pull call.
// Status is required; an empty status marks the payload as malformed.
type StatusResponse struct {
	Status string `json:"status"`
}

// ProgressUpdate is one decoded frame of a streamed create/push/pull response.
type ProgressUpdate struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

// LoadResponse is returned by POST /api/load. Model is required; an empty
// model name marks the payload as malformed.
type LoadResponse struct {
	Model Ref  `json:"model"`
	Done  bool `json:"done,omitempty"`
}

// ModelInfo describes one model known to the server.
type ModelInfo struct {
	Name       Ref       `json:"name"`
	Digest     string    `json:"digest,omitempty"`
	Size       int64     `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}

// ListResponse wraps the model list returned by GET /api/list.
type ListResponse struct {
	Models []ModelInfo `json:"models"`
}

// ShowResponse is returned by POST /api/show.
type ShowResponse struct {
	Modelfile  string `json:"modelfile"`
	Parameters string `json:"parameters,omitempty"`
	Template   string `json:"template,omitempty"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}

// ErrorResponse is the consistent JSON error payload produced by the server.
type ErrorResponse struct {
	// Error message.
	Error string `json:"error"`
	// HTTP status code.
	Code int `json:"code"`
}
