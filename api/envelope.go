package api

import (
	"bytes"
	"encoding/json"
)

// listEnvelope covers the wrapped list shapes the backend returns:
// {"data": [...]} and {"data": [...], "message": "..."}.
type listEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// DecodeList probes the inconsistent response envelopes the backend uses for
// list endpoints: a bare array, {"data": [...]}, or {"data": [...],
// "message": ...}. An unrecognized shape degrades to an empty list rather
// than an error, matching how the dashboards treat unexpected payloads.
func DecodeList[T any](data []byte) []T {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []T{}
	}

	// Bare array.
	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err == nil && out != nil {
			return out
		}
		return []T{}
	}

	// Wrapped array.
	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 {
		var out []T
		if err := json.Unmarshal(env.Data, &out); err == nil && out != nil {
			return out
		}
	}

	return []T{}
}

// objectEnvelope covers wrapped single-object responses.
type objectEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// DecodeObject probes a single-object response that may arrive bare or
// wrapped in {"data": {...}}. Returns false when neither shape matches.
func DecodeObject[T any](data []byte) (T, bool) {
	var zero T

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return zero, false
	}

	var env objectEnvelope
	if err := json.Unmarshal(trimmed, &env); err == nil && len(bytes.TrimSpace(env.Data)) > 0 {
		var out T
		if err := json.Unmarshal(env.Data, &out); err == nil {
			return out, true
		}
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err == nil {
		return out, true
	}
	return zero, false
}
