package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"json object", 200, "application/json", `{"a":1}`, `{"a":1}`},
		{"json array", 200, "application/json; charset=utf-8", `[{"summary":"S"}]`, `[{"summary":"S"}]`},
		{"mislabeled json", 200, "text/plain", " {\"ok\":true}\n", `{"ok":true}`},
		{"plain text ok", 200, "text/plain", "Workflow was started",
			`{"success":true,"status":200,"message":"non-JSON response","rawPreview":"Workflow was started"}`},
		{"html error", 502, "text/html", "<h1>Bad Gateway</h1>",
			`{"success":false,"status":502,"message":"non-JSON response","rawPreview":"<h1>Bad Gateway</h1>"}`},
		{"empty json label", 200, "application/json", "",
			`{"success":true,"status":200,"message":"non-JSON response","rawPreview":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.status, tt.contentType, []byte(tt.body))
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestNormalize_PreviewIsTruncated(t *testing.T) {
	body := strings.Repeat("é", 500)
	var reply struct {
		RawPreview string `json:"rawPreview"`
	}
	require.NoError(t, json.Unmarshal(Normalize(200, "text/plain", []byte(body)), &reply))
	assert.Equal(t, 200, len([]rune(reply.RawPreview)))
}

func TestTrigger_ForwardsJSON(t *testing.T) {
	var got map[string]any
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"resumeUrl":"https://x/resume/1"}`)
	}))
	defer server.Close()

	svc := NewRelayService(0)
	ctx := WithRequestID(context.Background(), "req-1")
	raw, err := svc.Trigger(ctx, server.URL, map[string]any{"action": "start_claim"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"resumeUrl":"https://x/resume/1"}`, string(raw))
	assert.Equal(t, "start_claim", got["action"])
	assert.Equal(t, "req-1", gotRequestID)
}

func TestTrigger_Non2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"webhook not registered"}`)
	}))
	defer server.Close()

	_, err := NewRelayService(0).Trigger(context.Background(), server.URL, map[string]any{})
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
}

func TestTrigger_TextReplyIsShapeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "Workflow was started")
	}))
	defer server.Close()

	_, err := NewRelayService(0).Trigger(context.Background(), server.URL, map[string]any{})
	assert.ErrorIs(t, err, ErrUpstreamShape)
}

func TestResumeStream_PassesBytesThrough(t *testing.T) {
	sizes := []int{0, 1, 64 << 10, 10 << 20}
	for _, size := range sizes {
		payload := make([]byte, size)
		_, _ = rand.Read(payload)

		var received []byte
		var contentLength int64
		var contentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentLength = r.ContentLength
			contentType = r.Header.Get("Content-Type")
			received, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"ok":true}`)
		}))

		raw, err := NewRelayService(0).ResumeStream(context.Background(), server.URL, Stream{
			ContentType:   "multipart/form-data; boundary=xyz",
			ContentLength: int64(size),
			Body:          bytes.NewReader(payload),
		})
		server.Close()

		require.NoError(t, err, "size %d", size)
		assert.JSONEq(t, `{"ok":true}`, string(raw))
		assert.Equal(t, int64(size), contentLength)
		assert.Equal(t, "multipart/form-data; boundary=xyz", contentType)
		assert.True(t, bytes.Equal(payload, received), "size %d: body mismatch", size)
	}
}

func TestResumeStream_UnknownLengthIsChunked(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, int64(-1), r.ContentLength)
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	_, err := NewRelayService(0).ResumeStream(context.Background(), server.URL, Stream{
		ContentType:   "multipart/form-data; boundary=xyz",
		ContentLength: -1,
		Body:          io.MultiReader(strings.NewReader("part-1 "), strings.NewReader("part-2")),
	})
	require.NoError(t, err)
	assert.Equal(t, "part-1 part-2", received)
}

func TestResumeJSON_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewRelayService(0).ResumeJSON(context.Background(), url, []byte(`{}`))
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "post", upstreamErr.Op)
}
