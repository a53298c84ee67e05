// Package errors turns non-2xx HTTP responses into typed errors.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 64 << 10

// HTTPError is a failed upstream HTTP call.
type HTTPError struct {
	StatusCode int
	Message    string
	// Type and Code are filled from Graph-style {"error":{...}} bodies.
	Type string
	Code int
	Body string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the status suggests a retry could succeed.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// ParseHTTPError returns nil for status < 400, otherwise an *HTTPError built
// from the body. Both {"error":"msg"} and {"error":{"message":...}} shapes are
// understood.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	herr := &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		herr.Message = http.StatusText(resp.StatusCode)
		return herr
	}

	var nested struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	}
	var flat string
	switch {
	case json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "":
		herr.Message, herr.Type, herr.Code = nested.Message, nested.Type, nested.Code
	case json.Unmarshal(envelope.Error, &flat) == nil && flat != "":
		herr.Message = flat
	case envelope.Message != "":
		herr.Message = envelope.Message
	default:
		herr.Message = http.StatusText(resp.StatusCode)
	}
	return herr
}

// StatusCode extracts the status from an *HTTPError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.StatusCode, true
	}
	return 0, false
}
