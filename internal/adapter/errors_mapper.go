package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var messageKeys = []string{"error", "message", "detail"}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := parseErrorBody(resp.StatusCode(), resp.Body())
	apiErr.kind = kindForStatus(resp.StatusCode())
	return apiErr
}

// NewAPIError builds an *APIError for status, unwrapping to the matching
// sentinel.
func NewAPIError(status int, message string, fields map[string][]string) *APIError {
	return &APIError{Status: status, Message: message, Fields: fields, kind: kindForStatus(status)}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return fmt.Errorf("%w: http %d", ErrUnexpectedStatus, status)
	}
}

// parseErrorBody reads DRF-style error bodies: {"error": "..."},
// {"detail": "..."} or {"field": ["msg", ...], "non_field_errors": [...]}.
// Non-JSON bodies become the message verbatim.
func parseErrorBody(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return apiErr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Message = trimmed
		return apiErr
	}

	for _, key := range messageKeys {
		if v, ok := raw[key]; ok {
			if msgs := flattenMessages(v); len(msgs) > 0 && apiErr.Message == "" {
				apiErr.Message = strings.Join(msgs, " ")
			}
			delete(raw, key)
		}
	}
	// SimpleJWT adds a machine-readable code next to detail
	delete(raw, "code")

	if v, ok := raw["non_field_errors"]; ok {
		if msgs := flattenMessages(v); len(msgs) > 0 && apiErr.Message == "" {
			apiErr.Message = strings.Join(msgs, " ")
		}
		delete(raw, "non_field_errors")
	}

	for field, v := range raw {
		msgs := flattenMessages(v)
		if len(msgs) == 0 {
			continue
		}
		if apiErr.Fields == nil {
			apiErr.Fields = make(map[string][]string)
		}
		apiErr.Fields[field] = msgs
	}

	return apiErr
}

// flattenMessages turns a string, a list of strings, or a nested object of
// those into a flat list of messages.
func flattenMessages(v json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err == nil {
		var out []string
		for _, item := range list {
			out = append(out, flattenMessages(item)...)
		}
		return out
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err == nil {
		var out []string
		for key, item := range obj {
			for _, msg := range flattenMessages(item) {
				out = append(out, key+": "+msg)
			}
		}
		return out
	}

	return nil
}
