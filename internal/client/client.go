package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hpn/ai-gateway-client/internal/domain"
)

const (
	// DefaultBaseURL is used when neither an explicit URL nor GATEWAY_URL is set.
	DefaultBaseURL = "http://localhost:3000"

	// EnvGatewayURL is the environment variable consulted for the base URL.
	EnvGatewayURL = "GATEWAY_URL"

	// DefaultTemperature is sent when the caller does not pick one.
	DefaultTemperature = 0.7

	// DefaultChatTimeout bounds POST /api/chat.
	DefaultChatTimeout = 30 * time.Second

	// DefaultModelsTimeout bounds GET /api/models.
	DefaultModelsTimeout = 10 * time.Second

	// DefaultHealthTimeout bounds GET /api/health.
	DefaultHealthTimeout = 5 * time.Second

	userAgent = "ai-gateway-client/1.0"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 10 << 20
)

// Timeouts holds the per-operation deadlines.
type Timeouts struct {
	Chat   time.Duration
	Models time.Duration
	Health time.Duration
}

// DefaultTimeouts returns 30s for chat, 10s for models and 5s for health.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Chat:   DefaultChatTimeout,
		Models: DefaultModelsTimeout,
		Health: DefaultHealthTimeout,
	}
}

// GatewayClient talks to a single AI gateway over HTTP/JSON.
// Its configuration is fixed at construction; it is safe for concurrent use.
type GatewayClient struct {
	baseURL            string
	explicitURL        string
	lookupEnv          func(string) (string, bool)
	credentials        domain.Credentials
	httpClient         *http.Client
	timeouts           Timeouts
	defaultTemperature float64
	logger             *slog.Logger
}

// Option is a functional option for configuring GatewayClient.
type Option func(*GatewayClient)

// WithBaseURL sets the gateway URL explicitly, taking precedence over GATEWAY_URL.
func WithBaseURL(baseURL string) Option {
	return func(c *GatewayClient) {
		c.explicitURL = baseURL
	}
}

// WithAPIKeys stores provider credentials. They are never sent to the gateway.
func WithAPIKeys(keys map[string]string) Option {
	return func(c *GatewayClient) {
		c.credentials = domain.NewCredentials(keys)
	}
}

// WithCredentials stores an already built credential set.
func WithCredentials(creds domain.Credentials) Option {
	return func(c *GatewayClient) {
		c.credentials = creds
	}
}

// WithHTTPClient sets a custom HTTP client. Its own Timeout, if any, still applies.
func WithHTTPClient(client *http.Client) Option {
	return func(c *GatewayClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeouts overrides the per-operation timeouts. Zero fields keep their defaults.
func WithTimeouts(t Timeouts) Option {
	return func(c *GatewayClient) {
		if t.Chat > 0 {
			c.timeouts.Chat = t.Chat
		}
		if t.Models > 0 {
			c.timeouts.Models = t.Models
		}
		if t.Health > 0 {
			c.timeouts.Health = t.Health
		}
	}
}

// WithDefaultTemperature changes the temperature sent when a chat call does not set one.
func WithDefaultTemperature(temperature float64) Option {
	return func(c *GatewayClient) {
		c.defaultTemperature = temperature
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *GatewayClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEnvLookup replaces os.LookupEnv for base URL resolution.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(c *GatewayClient) {
		if lookup != nil {
			c.lookupEnv = lookup
		}
	}
}

// New creates a GatewayClient.
// The base URL is resolved as: WithBaseURL, then GATEWAY_URL, then DefaultBaseURL.
func New(opts ...Option) *GatewayClient {
	c := &GatewayClient{
		lookupEnv:          os.LookupEnv,
		httpClient:         &http.Client{},
		timeouts:           DefaultTimeouts(),
		defaultTemperature: DefaultTemperature,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = ResolveBaseURL(c.explicitURL, c.lookupEnv)

	return c
}

// ResolveBaseURL applies the precedence explicit → GATEWAY_URL → DefaultBaseURL
// and strips trailing slashes.
func ResolveBaseURL(explicit string, lookup func(string) (string, bool)) string {
	if explicit != "" {
		return NormalizeBaseURL(explicit)
	}
	if lookup != nil {
		if v, ok := lookup(EnvGatewayURL); ok && v != "" {
			return NormalizeBaseURL(v)
		}
	}
	return DefaultBaseURL
}

// NormalizeBaseURL removes every trailing slash. It is idempotent.
func NormalizeBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// BaseURL returns the effective gateway URL.
func (c *GatewayClient) BaseURL() string {
	return c.baseURL
}

// Timeouts returns the per-operation timeouts.
func (c *GatewayClient) Timeouts() Timeouts {
	return c.timeouts
}

// Credentials returns the stored provider credentials.
func (c *GatewayClient) Credentials() domain.Credentials {
	return c.credentials
}

// APIKey returns the stored credential for a provider.
func (c *GatewayClient) APIKey(provider domain.ProviderType) (string, bool) {
	return c.credentials.Get(provider)
}

// Chat sends a message to the given provider through the gateway.
// It never returns a Go error: failures come back as the error variant.
func (c *GatewayClient) Chat(ctx context.Context, provider domain.ProviderType, message string, opts ...ChatOption) Result[ChatResponse] {
	req := ChatRequest{
		Provider:    provider,
		Message:     message,
		Temperature: c.defaultTemperature,
	}
	for _, opt := range opts {
		opt(&req)
	}

	return c.SendChat(ctx, req)
}

// SendChat posts a fully built ChatRequest.
func (c *GatewayClient) SendChat(ctx context.Context, req ChatRequest) Result[ChatResponse] {
	if req.Provider == "" {
		return Failure[ChatResponse](toErrorResult(&ValidationError{Field: "provider"}))
	}
	if req.Message == "" {
		return Failure[ChatResponse](toErrorResult(&ValidationError{Field: "message"}))
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Failure[ChatResponse](toErrorResult(fmt.Errorf("failed to marshal chat request: %w", err)))
	}

	return execute(ctx, c, call{
		op:      "chat",
		method:  http.MethodPost,
		path:    "/api/chat",
		body:    body,
		timeout: c.timeouts.Chat,
	}, func(raw []byte) (ChatResponse, error) {
		var resp ChatResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return ChatResponse{}, fmt.Errorf("failed to decode chat response: %w", err)
		}
		resp.raw = raw
		return resp, nil
	})
}

// ListModels asks the gateway which models a provider offers.
func (c *GatewayClient) ListModels(ctx context.Context, provider domain.ProviderType) Result[ModelsResponse] {
	query := url.Values{}
	query.Set("provider", string(provider))

	return execute(ctx, c, call{
		op:      "list_models",
		method:  http.MethodGet,
		path:    "/api/models",
		query:   query,
		timeout: c.timeouts.Models,
	}, func(raw []byte) (ModelsResponse, error) {
		var resp ModelsResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return ModelsResponse{}, fmt.Errorf("failed to decode models response: %w", err)
		}
		resp.raw = raw
		return resp, nil
	})
}

// HealthCheck reports the gateway status and provider configuration.
func (c *GatewayClient) HealthCheck(ctx context.Context) Result[HealthResponse] {
	return execute(ctx, c, call{
		op:      "health_check",
		method:  http.MethodGet,
		path:    "/api/health",
		timeout: c.timeouts.Health,
	}, func(raw []byte) (HealthResponse, error) {
		var resp HealthResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return HealthResponse{}, fmt.Errorf("failed to decode health response: %w", err)
		}
		resp.raw = raw
		return resp, nil
	})
}

// call describes one gateway round-trip.
type call struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    []byte
	timeout time.Duration
}

// execute performs the round-trip and folds every failure into the result.
func execute[T any](ctx context.Context, c *GatewayClient, rc call, decode func([]byte) (T, error)) Result[T] {
	start := time.Now()

	raw, err := c.do(ctx, rc)
	if err == nil {
		if gwErr := bodyError(raw); gwErr != nil {
			err = gwErr
		}
	}

	var value T
	if err == nil {
		value, err = decode(raw)
	}

	if err != nil {
		result := toErrorResult(err)
		c.logger.Warn("gateway call failed",
			slog.String("op", rc.op),
			slog.String("kind", string(result.Kind)),
			slog.String("error", err.Error()),
			slog.Duration("latency", time.Since(start)),
		)
		return Failure[T](result)
	}

	c.logger.Debug("gateway call succeeded",
		slog.String("op", rc.op),
		slog.Int("size_bytes", len(raw)),
		slog.Duration("latency", time.Since(start)),
	)
	return Success(value)
}

// do issues the HTTP request and returns the 2xx body.
func (c *GatewayClient) do(ctx context.Context, rc call) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, rc.timeout)
	defer cancel()

	endpoint := c.baseURL + rc.path
	if len(rc.query) > 0 {
		endpoint += "?" + rc.query.Encode()
	}

	var body io.Reader
	if rc.body != nil {
		body = bytes.NewReader(rc.body)
	}

	var phase connPhase
	ctx = httptrace.WithClientTrace(ctx, phase.trace())

	httpReq, err := http.NewRequestWithContext(ctx, rc.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	if rc.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	c.logger.Debug("gateway call",
		slog.String("op", rc.op),
		slog.String("method", rc.method),
		slog.String("url", endpoint),
		slog.Duration("timeout", rc.timeout),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if phase.failedBeforeConnect(err) || isConnectionFailure(err) {
			return nil, &UnreachableError{BaseURL: c.baseURL, Err: err}
		}
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", rc.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Detail: errorDetail(respBody), Body: respBody}
	}

	return respBody, nil
}

// connPhase records how far a request got towards holding a connection.
// It stays empty when a custom RoundTripper bypasses the transport's hooks.
type connPhase struct {
	requested atomic.Bool
	connected atomic.Bool
}

func (p *connPhase) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		GetConn: func(string) { p.requested.Store(true) },
		GotConn: func(httptrace.GotConnInfo) { p.connected.Store(true) },
	}
}

// failedBeforeConnect reports whether err ended the request while the
// transport was still dialing. Caller cancellation is not a connection failure.
func (p *connPhase) failedBeforeConnect(err error) bool {
	if !p.requested.Load() || p.connected.Load() {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

// bodyError returns a GatewayError when a 2xx body is an {"error": ...} object.
func bodyError(raw []byte) error {
	if msg := errorDetail(raw); msg != "" {
		return &GatewayError{Message: msg, Body: raw}
	}
	return nil
}
