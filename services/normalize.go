package services

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"

	"claim_relay/models"
)

const previewLimit = 200

// Normalize turns any upstream reply into valid JSON.
// JSON passes through verbatim; mislabeled JSON is accepted too; anything else
// is wrapped in a NonJSONReply carrying the first characters of the body.
func Normalize(statusCode int, contentType string, body []byte) json.RawMessage {
	if isJSONContentType(contentType) && json.Valid(body) {
		return body
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && json.Valid(trimmed) {
		return trimmed
	}

	reply := models.NonJSONReply{
		Success:    statusCode >= 200 && statusCode < 300,
		Status:     statusCode,
		Message:    models.NonJSONMessage,
		RawPreview: preview(string(body), previewLimit),
	}
	data, err := json.Marshal(reply)
	if err != nil {
		// NonJSONReply only holds strings, ints and bools.
		return json.RawMessage(`{"success":false,"message":"non-JSON response"}`)
	}
	return data
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// preview cuts s to at most n characters without splitting a rune.
func preview(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
