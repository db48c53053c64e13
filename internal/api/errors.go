package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// NetworkError wraps a transport failure (no response at all).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a 401/403: the credential is missing, invalid or expired, or
// the account is not allowed to do this.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("auth error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("auth error (%d)", e.StatusCode)
}

// ValidationError is a 4xx with field-level messages, in the remote API's
// field => messages shape.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
	Detail     string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Detail != "" {
			return "validation error: " + e.Detail
		}
		return fmt.Sprintf("validation error (%d)", e.StatusCode)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation error: " + strings.Join(parts, ", ")
}

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Path
}

// ConflictError is a 409, e.g. reviewing the same seller twice.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return "conflict: " + e.Detail
	}
	return "conflict"
}

func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// responseError maps a non-2xx response onto the error taxonomy. The body is
// either {"detail": "..."} or a field => [messages] map; anything else is
// kept as a raw detail string.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	detail, fields := decodeErrorBody(body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode, Detail: detail}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Path: resp.Request.URL.Path}
	case resp.StatusCode == http.StatusConflict:
		return &ConflictError{Detail: detail}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ValidationError{StatusCode: resp.StatusCode, Fields: fields, Detail: detail}
	default:
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, detail)
	}
}

func decodeErrorBody(body []byte) (detail string, fields map[string][]string) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", nil
	}
	if d, ok := raw["detail"]; ok {
		var s string
		if json.Unmarshal(d, &s) == nil {
			detail = s
		}
		delete(raw, "detail")
	}
	for k, v := range raw {
		var msgs []string
		if json.Unmarshal(v, &msgs) == nil {
			if fields == nil {
				fields = map[string][]string{}
			}
			fields[k] = msgs
			continue
		}
		var msg string
		if json.Unmarshal(v, &msg) == nil {
			if fields == nil {
				fields = map[string][]string{}
			}
			fields[k] = []string{msg}
		}
	}
	return detail, fields
}
