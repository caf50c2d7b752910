// Package types holds the wire envelopes shared by every HTTP handler.
package types

// SuccessEnvelope wraps all 2xx payloads.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Details carries field-level
// validation failures when present.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps all non-2xx payloads.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
