// Package client implements the AI gateway client.
package client

import (
	"encoding/json"

	"github.com/hpn/ai-gateway-client/internal/domain"
)

// ChatRequest is the body posted to /api/chat.
type ChatRequest struct {
	// Provider selects the backend AI service (e.g. "gemini"). Sent verbatim.
	Provider domain.ProviderType `json:"provider"`

	// Message is the user message. Required.
	Message string `json:"message"`

	// Temperature is always sent. The gateway rejects out-of-range values.
	Temperature float64 `json:"temperature"`

	// Model is omitted when empty so the gateway picks its default.
	Model string `json:"model,omitempty"`

	// MaxTokens is omitted when zero; zero cannot be sent.
	MaxTokens int `json:"maxTokens,omitempty"`
}

// ChatOption customizes a single chat request.
type ChatOption func(*ChatRequest)

// WithModel selects a specific model.
func WithModel(model string) ChatOption {
	return func(r *ChatRequest) {
		r.Model = model
	}
}

// WithTemperature overrides the client's default temperature.
func WithTemperature(temperature float64) ChatOption {
	return func(r *ChatRequest) {
		r.Temperature = temperature
	}
}

// WithMaxTokens limits the response length. A value of 0 means "not provided".
func WithMaxTokens(maxTokens int) ChatOption {
	return func(r *ChatRequest) {
		r.MaxTokens = maxTokens
	}
}

// ChatResponse is the success body of /api/chat.
// The body is owned by the gateway; Raw returns it byte for byte.
type ChatResponse struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Message  string `json:"message"`

	// Usage is provider-defined and passed through uninterpreted.
	Usage json.RawMessage `json:"usage,omitempty"`

	raw json.RawMessage
}

// Raw returns the response body exactly as the gateway sent it.
func (r ChatResponse) Raw() json.RawMessage {
	return r.raw
}

// MarshalJSON re-emits the original body when available.
func (r ChatResponse) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain ChatResponse
	return json.Marshal(plain(r))
}

// ModelsResponse is the success body of /api/models.
type ModelsResponse struct {
	Provider string `json:"provider"`

	// Models keeps each descriptor raw; gateways send strings or objects.
	Models []json.RawMessage `json:"models"`

	raw json.RawMessage
}

// Raw returns the response body exactly as the gateway sent it.
func (r ModelsResponse) Raw() json.RawMessage {
	return r.raw
}

// MarshalJSON re-emits the original body when available.
func (r ModelsResponse) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain ModelsResponse
	return json.Marshal(plain(r))
}

// ModelNames flattens the descriptors into names, in order. String
// descriptors are used as-is; object descriptors contribute their "id" or
// "name" field. Descriptors with neither are skipped.
func (r ModelsResponse) ModelNames() []string {
	names := make([]string, 0, len(r.Models))
	for _, m := range r.Models {
		var s string
		if err := json.Unmarshal(m, &s); err == nil {
			names = append(names, s)
			continue
		}
		var obj struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(m, &obj); err != nil {
			continue
		}
		switch {
		case obj.ID != "":
			names = append(names, obj.ID)
		case obj.Name != "":
			names = append(names, obj.Name)
		}
	}
	return names
}

// ProviderStatus is one entry of the health report's provider list.
type ProviderStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// HealthResponse is the success body of /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`

	// Providers is kept raw; see ProviderStatuses.
	Providers json.RawMessage `json:"providers,omitempty"`

	raw json.RawMessage
}

// Raw returns the response body exactly as the gateway sent it.
func (r HealthResponse) Raw() json.RawMessage {
	return r.raw
}

// MarshalJSON re-emits the original body when available.
func (r HealthResponse) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain HealthResponse
	return json.Marshal(plain(r))
}

// ProviderStatuses decodes the provider list in the shape the stock gateway uses.
func (r HealthResponse) ProviderStatuses() ([]ProviderStatus, error) {
	if len(r.Providers) == 0 {
		return nil, nil
	}
	var statuses []ProviderStatus
	if err := json.Unmarshal(r.Providers, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// ErrorKind classifies a failure.
type ErrorKind string

const (
	// ErrorKindUnreachable means the gateway could not be reached at all.
	ErrorKindUnreachable ErrorKind = "unreachable"

	// ErrorKindHTTP means the gateway answered with a non-2xx status.
	ErrorKindHTTP ErrorKind = "http"

	// ErrorKindGateway means a 2xx body carried an "error" field.
	ErrorKindGateway ErrorKind = "gateway"

	// ErrorKindInvalid means the call was rejected before any request was sent.
	ErrorKindInvalid ErrorKind = "invalid"

	// ErrorKindOther covers timeouts, malformed bodies and everything else.
	ErrorKindOther ErrorKind = "other"
)

// ErrorResult is the uniform failure shape of every operation.
type ErrorResult struct {
	Error string    `json:"error"`
	Kind  ErrorKind `json:"-"`

	// Body is the gateway's JSON body for http and gateway failures, so
	// fields sent next to "error" (e.g. fallback model lists) stay readable.
	Body json.RawMessage `json:"-"`
}

// Result holds exactly one of a success value or an ErrorResult.
type Result[T any] struct {
	value *T
	err   *ErrorResult
}

// Success wraps a success value.
func Success[T any](v T) Result[T] {
	return Result[T]{value: &v}
}

// Failure wraps an error result.
func Failure[T any](e ErrorResult) Result[T] {
	return Result[T]{err: &e}
}

// IsError reports whether the result is the error variant.
func (r Result[T]) IsError() bool {
	return r.err != nil
}

// Value returns the success value and true, or the zero value and false.
func (r Result[T]) Value() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// Err returns the error variant and true, or a zero ErrorResult and false.
func (r Result[T]) Err() (ErrorResult, bool) {
	if r.err == nil {
		return ErrorResult{}, false
	}
	return *r.err, true
}

// ErrorMessage returns the error text, or "" on success.
func (r Result[T]) ErrorMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error
}

// MarshalJSON encodes the success body or {"error": "..."}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(r.err)
	}
	if r.value == nil {
		return json.Marshal(ErrorResult{Error: "empty result"})
	}
	return json.Marshal(r.value)
}
