package services

import (
	"context"
	"errors"
	"fmt"
)

// ErrUpstreamShape means the upstream answered but not with usable JSON.
var ErrUpstreamShape = errors.New("upstream response is not valid JSON")

// UpstreamError is a failure talking to the upstream webhook.
type UpstreamError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type requestIDKey struct{}

// WithRequestID attaches the inbound request id so it is forwarded upstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
