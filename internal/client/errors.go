package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// HTTPError is returned when the gateway answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Detail     string // Error message from the gateway body, if any
	Body       []byte
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// UnreachableError is returned when no connection to the gateway could be made.
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Cannot connect to %s. Is the gateway running?", e.BaseURL)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// GatewayError is returned when a 2xx body carries an "error" field.
type GatewayError struct {
	Message string
	Body    []byte
}

func (e *GatewayError) Error() string {
	return e.Message
}

// ValidationError is returned when a call is rejected before sending.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// toErrorResult converts any failure into the uniform result shape.
func toErrorResult(err error) ErrorResult {
	var (
		httpErr       *HTTPError
		unreachable   *UnreachableError
		gatewayErr    *GatewayError
		validationErr *ValidationError
	)

	kind := ErrorKindOther
	switch {
	case errors.As(err, &unreachable):
		// Report the actionable message, not the wrapped dial error.
		return ErrorResult{Error: unreachable.Error(), Kind: ErrorKindUnreachable}
	case errors.As(err, &httpErr):
		return ErrorResult{Error: err.Error(), Kind: ErrorKindHTTP, Body: rawJSON(httpErr.Body)}
	case errors.As(err, &gatewayErr):
		return ErrorResult{Error: err.Error(), Kind: ErrorKindGateway, Body: rawJSON(gatewayErr.Body)}
	case errors.As(err, &validationErr):
		kind = ErrorKindInvalid
	}

	return ErrorResult{Error: err.Error(), Kind: kind}
}

// rawJSON keeps body only when it is valid JSON.
func rawJSON(body []byte) json.RawMessage {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

// isConnectionFailure reports whether a transport error means the gateway
// could not be reached. Dial errors count even when the dial timed out.
func isConnectionFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return false
}

// errorDetail extracts the gateway's error message from a failure body.
// Both {"error": "msg"} and {"error": {"message": "msg"}} are understood.
func errorDetail(body []byte) string {
	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}

	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	return ""
}
