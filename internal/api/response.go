package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Response is the raw transport response handed back to callers.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Request    *http.Request
}

// Decode unmarshals the JSON body into dest.
func (r *Response) Decode(dest any) error {
	if r == nil {
		return fmt.Errorf("response is nil")
	}
	if len(r.Body) == 0 {
		return fmt.Errorf("decode response: empty body")
	}
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// DecodeAs is a typed wrapper around Response.Decode for (resp, err) pairs.
func DecodeAs[T any](resp *Response, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// StatusError reports a non-2xx response. The full response is attached.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Response   *Response
}

func (e *StatusError) Error() string {
	if e == nil {
		return "api error"
	}
	msg := fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if detail := e.Detail(); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Detail extracts the backend's {"detail": "..."} message when present.
func (e *StatusError) Detail() string {
	if e == nil || e.Response == nil || len(e.Response.Body) == 0 {
		return ""
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(e.Response.Body, &payload); err != nil {
		return ""
	}
	switch d := payload.Detail.(type) {
	case string:
		return strings.TrimSpace(d)
	case nil:
		return ""
	default:
		raw, _ := json.Marshal(d)
		return string(raw)
	}
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
