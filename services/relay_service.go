package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"claim_relay/pkg/logging"
)

// RelayService forwards bodies to the upstream workflow webhook.
type RelayService struct {
	client *http.Client
}

// Stream is an inbound body passed through to the upstream untouched.
// ContentLength < 0 means the length is unknown and the body is sent chunked.
type Stream struct {
	ContentType   string
	ContentLength int64
	Body          io.Reader
}

func NewRelayService(timeout time.Duration) *RelayService {
	return &RelayService{client: &http.Client{Timeout: timeout}}
}

// Trigger posts body as JSON and requires a 2xx JSON reply.
func (s *RelayService) Trigger(ctx context.Context, targetURL string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	resp, err := s.post(ctx, targetURL, Stream{
		ContentType:   "application/json",
		ContentLength: int64(len(payload)),
		Body:          bytes.NewReader(payload),
	})
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Op: "read", URL: targetURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Op: "status", URL: targetURL, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w (content-type %q)", ErrUpstreamShape, resp.Header.Get("Content-Type"))
	}
	return raw, nil
}

// ResumeJSON posts an already validated JSON body and normalizes the reply.
func (s *RelayService) ResumeJSON(ctx context.Context, targetURL string, body []byte) (json.RawMessage, error) {
	return s.resume(ctx, targetURL, Stream{
		ContentType:   "application/json",
		ContentLength: int64(len(body)),
		Body:          bytes.NewReader(body),
	})
}

// ResumeStream passes a multipart body through byte for byte and normalizes the reply.
func (s *RelayService) ResumeStream(ctx context.Context, targetURL string, stream Stream) (json.RawMessage, error) {
	return s.resume(ctx, targetURL, stream)
}

func (s *RelayService) resume(ctx context.Context, targetURL string, stream Stream) (json.RawMessage, error) {
	resp, err := s.post(ctx, targetURL, stream)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Op: "read", URL: targetURL, Err: err}
	}
	logging.Logger.Debug("upstream replied",
		"status", resp.StatusCode,
		"contentType", resp.Header.Get("Content-Type"),
		"bytes", len(raw),
	)
	return Normalize(resp.StatusCode, resp.Header.Get("Content-Type"), raw), nil
}

func (s *RelayService) post(ctx context.Context, targetURL string, stream Stream) (*http.Response, error) {
	body := stream.Body
	if stream.ContentLength == 0 || body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, body)
	if err != nil {
		return nil, &UpstreamError{Op: "request", URL: targetURL, Err: err}
	}
	if body != http.NoBody {
		req.ContentLength = stream.ContentLength
	}
	if stream.ContentType != "" {
		req.Header.Set("Content-Type", stream.ContentType)
	}
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.8")
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "post", URL: targetURL, Err: err}
	}
	return resp, nil
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logging.Logger.Warn("fail closing upstream body", "error", err)
	}
}
