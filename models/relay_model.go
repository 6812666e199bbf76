package models

import "encoding/json"

// SourceTag is stamped on every trigger body forwarded upstream.
const SourceTag = "claim-relay"

// NonJSONMessage is used when the upstream reply could not be parsed as JSON.
const NonJSONMessage = "non-JSON response"

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Note    string `json:"note,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// TriggerEnvelope wraps the upstream reply of a trigger call.
type TriggerEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NonJSONReply is synthesized when the upstream answered with something other than JSON.
type NonJSONReply struct {
	Success    bool   `json:"success"`
	Status     int    `json:"status"`
	Message    string `json:"message"`
	RawPreview string `json:"rawPreview"`
}

type EndpointInfo struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Query       []string `json:"query,omitempty"`
}

type ServiceInfo struct {
	Name      string         `json:"name"`
	Version   string         `json:"version"`
	Endpoints []EndpointInfo `json:"endpoints"`
}
