package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"claim_relay/models"
	"claim_relay/pkg/logging"
	"claim_relay/wizard"
)

// RelayClient talks to a claim relay over HTTP with Basic credentials.
type RelayClient struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// RelayError is a non-2xx answer from the relay.
type RelayError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *RelayError) Error() string {
	msg := fmt.Sprintf("relay returned %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func NewRelayClient(baseURL, username, password string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ wizard.Relay = (*RelayClient)(nil)

func (c *RelayClient) TriggerWorkflow(ctx context.Context, body any) (json.RawMessage, error) {
	return c.postJSON(ctx, c.baseURL+"/api/trigger-workflow", body)
}

func (c *RelayClient) ResumeWorkflow(ctx context.Context, resumeURL string, body any) (json.RawMessage, error) {
	return c.postJSON(ctx, c.resumeEndpoint(resumeURL), body)
}

// UploadFile streams file as the multipart field "file". The Content-Length
// is computed up front when the file size is known.
func (c *RelayClient) UploadFile(ctx context.Context, resumeURL string, file wizard.File) (json.RawMessage, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer func(f io.ReadCloser) {
		if err := f.Close(); err != nil {
			logging.Logger.Warn("fail closing upload file", "file", file.Name, "error", err)
		}
	}(f)

	var envelope bytes.Buffer
	writer := multipart.NewWriter(&envelope)
	if _, err := writer.CreateFormFile("file", file.Name); err != nil {
		return nil, err
	}
	headLen := envelope.Len()
	if err := writer.Close(); err != nil {
		return nil, err
	}
	head := envelope.Bytes()[:headLen]
	tail := envelope.Bytes()[headLen:]

	body := io.MultiReader(bytes.NewReader(head), f, bytes.NewReader(tail))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resumeEndpoint(resumeURL), body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = -1
	if file.Size >= 0 {
		req.ContentLength = int64(len(head)) + file.Size + int64(len(tail))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req)
}

func (c *RelayClient) resumeEndpoint(resumeURL string) string {
	return c.baseURL + "/api/resume-workflow?resumeUrl=" + url.QueryEscape(resumeURL)
}

func (c *RelayClient) postJSON(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *RelayClient) do(req *http.Request) (json.RawMessage, error) {
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logging.Logger.Warn("fail closing relay body", "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		relayErr := &RelayError{StatusCode: resp.StatusCode}
		var payload models.ErrorResponse
		if json.Unmarshal(raw, &payload) == nil {
			relayErr.Message = payload.Error
			relayErr.Details = payload.Details
		}
		return nil, relayErr
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("relay reply is not JSON: %.80q", raw)
	}
	return raw, nil
}
