package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrStreamClosed is returned by Recv after Close has been called.
var ErrStreamClosed = errors.New("client: stream closed")

// Stream is a lazy, forward-only sequence of events decoded from a live
// streaming response body. It is finite (it ends when the server closes the
// stream) and not restartable: a fresh call must reissue the request.
//
// Each event corresponds to one frame of the stream, parsed independently;
// a malformed frame fails only that Recv without ending the sequence.
type Stream[T any] struct {
	ctx    context.Context
	body   io.ReadCloser
	r      *bufio.Reader
	done   bool
	closed bool
}

func newStream[T any](ctx context.Context, body io.ReadCloser) *Stream[T] {
	return &Stream[T]{ctx: ctx, body: body, r: bufio.NewReaderSize(body, 64*1024)}
}

// Recv returns the next event. io.EOF signals the normal end of the stream,
// after which the underlying connection is already released. A frame that
// fails to decode returns a *DecodeError and leaves the stream open.
func (s *Stream[T]) Recv() (T, error) {
	var zero T
	if s.done {
		return zero, io.EOF
	}
	if s.closed {
		return zero, ErrStreamClosed
	}
	frame, err := s.nextFrame()
	if err != nil {
		if err == io.EOF {
			s.done = true
			s.Close()
			return zero, io.EOF
		}
		if s.ctx.Err() != nil {
			s.Close()
			return zero, s.ctx.Err()
		}
		s.Close()
		return zero, fmt.Errorf("read stream: %w", err)
	}
	var v T
	if err := json.Unmarshal(frame, &v); err != nil {
		return zero, &DecodeError{Message: "malformed event frame", Body: frame, cause: err}
	}
	return v, nil
}

// Close releases the underlying connection. It is safe to call on every
// exit path, including after a transport error or cancellation.
func (s *Stream[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}

// nextFrame returns the payload of the next event frame. Frames are
// newline-delimited JSON objects; SSE framing ("data:" prefixes, ":"
// comment lines, blank separators) is tolerated and decodes identically.
func (s *Stream[T]) nextFrame() ([]byte, error) {
	var data [][]byte
	for {
		line, err := s.r.ReadBytes('\n')
		line = bytes.TrimRight(line, "\r\n")
		if err != nil {
			// A final frame without trailing newline still counts.
			if len(line) > 0 {
				if payload, ok := frameLine(line); ok {
					data = append(data, payload)
				} else if len(data) == 0 {
					return line, nil
				}
			}
			if len(data) > 0 {
				return bytes.Join(data, []byte("\n")), nil
			}
			return nil, err
		}
		if len(line) == 0 {
			if len(data) > 0 {
				return bytes.Join(data, []byte("\n")), nil
			}
			continue
		}
		if line[0] == ':' {
			continue
		}
		if payload, ok := frameLine(line); ok {
			data = append(data, payload)
			continue
		}
		// Plain NDJSON: the line itself is the frame.
		return line, nil
	}
}

// frameLine strips an SSE "data:" prefix, reporting whether the line was an
// SSE data line at all.
func frameLine(line []byte) ([]byte, bool) {
	if !bytes.HasPrefix(line, []byte("data:")) {
		return nil, false
	}
	val := line[len("data:"):]
	if len(val) > 0 && val[0] == ' ' {
		val = val[1:]
	}
	return append([]byte(nil), val...), true
}
