package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claim_relay/wizard"
)

func TestTriggerWorkflow_SendsCredentials(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "agent", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/api/trigger-workflow", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"success":true,"data":{"resumeUrl":"https://x/resume/1"}}`)
	}))
	defer server.Close()

	c := NewRelayClient(server.URL+"/", "agent", "secret", 0)
	raw, err := c.TriggerWorkflow(context.Background(), map[string]string{"action": "start_claim"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":true,"data":{"resumeUrl":"https://x/resume/1"}}`, string(raw))
	assert.Equal(t, "start_claim", body["action"])
}

func TestResumeWorkflow_EscapesResumeURL(t *testing.T) {
	var gotResumeURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotResumeURL = r.URL.Query().Get("resumeUrl")
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	resumeURL := "https://n8n.example/webhook-waiting/42?signature=a&b=c"
	_, err := NewRelayClient(server.URL, "u", "p", 0).ResumeWorkflow(context.Background(), resumeURL, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, resumeURL, gotResumeURL)
}

func TestUploadFile_StreamsMultipart(t *testing.T) {
	content := bytes.Repeat([]byte("invoice-line\n"), 4096)
	path := filepath.Join(t.TempDir(), "invoice.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	file, err := wizard.FileFromPath(path)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, int64(len(raw)), r.ContentLength)

		r.Body = io.NopCloser(bytes.NewReader(raw))
		part, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer part.Close()
		got, _ := io.ReadAll(part)

		assert.Equal(t, "invoice.txt", header.Filename)
		assert.Equal(t, content, got)
		_, _ = io.WriteString(w, `[{"summary":"S","products":"A","resumeUrl":"u2"}]`)
	}))
	defer server.Close()

	raw, err := NewRelayClient(server.URL, "u", "p", 0).UploadFile(context.Background(), "u1", file)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"summary":"S","products":"A","resumeUrl":"u2"}]`, string(raw))
}

func TestUploadFile_UnknownSizeIsChunked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, int64(-1), r.ContentLength)
		part, _, err := r.FormFile("file")
		require.NoError(t, err)
		got, _ := io.ReadAll(part)
		assert.Equal(t, "abc", string(got))
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	file := wizard.File{
		Name: "a.txt",
		Size: -1,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader([]byte("abc"))), nil },
	}
	_, err := NewRelayClient(server.URL, "u", "p", 0).UploadFile(context.Background(), "u1", file)
	require.NoError(t, err)
}

func TestDo_RelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Failed to resume claim workflow","details":"connection refused","note":"n"}`)
	}))
	defer server.Close()

	_, err := NewRelayClient(server.URL, "u", "p", 0).ResumeWorkflow(context.Background(), "u1", map[string]any{})
	require.Error(t, err)

	var relayErr *RelayError
	require.True(t, errors.As(err, &relayErr))
	assert.Equal(t, http.StatusInternalServerError, relayErr.StatusCode)
	assert.Equal(t, "Failed to resume claim workflow", relayErr.Message)
	assert.Equal(t, "connection refused", relayErr.Details)
}

func TestDo_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("WWW-Authenticate", `Basic realm="Claims"`)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Authentication required."}`)
	}))
	defer server.Close()

	_, err := NewRelayClient(server.URL, "u", "bad", 0).TriggerWorkflow(context.Background(), map[string]any{})
	var relayErr *RelayError
	require.True(t, errors.As(err, &relayErr))
	assert.Equal(t, http.StatusUnauthorized, relayErr.StatusCode)
}
