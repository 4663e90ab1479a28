package models

import "encoding/json"

// MessageResponse is the generic acknowledgement body. Failed requests use
// Error, successful ones use Message.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// DataEnvelope wraps the applicant returned by create and update calls.
type DataEnvelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
