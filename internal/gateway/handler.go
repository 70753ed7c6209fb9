// Package gateway implements a local stub of the AI gateway HTTP API.
// It validates requests and serves the provider catalog like the real
// gateway, but answers chat requests with an echo instead of calling a
// provider.
package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hpn/ai-gateway-client/internal/domain"
)

const (
	// DefaultVersion is reported by /api/health.
	DefaultVersion = "1.0.0"

	// DefaultMaxTokens applies when a chat request does not set maxTokens.
	DefaultMaxTokens = 1024

	// DefaultTemperature applies when a chat request does not set temperature.
	DefaultTemperature = 0.7
)

// ChatRequest is the body accepted by POST /api/chat.
type ChatRequest struct {
	Provider    string   `json:"provider"`
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
}

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Message  string `json:"message"`
	Usage    Usage  `json:"usage"`
}

// Handler serves the gateway endpoints.
type Handler struct {
	catalog     domain.Catalog
	credentials domain.Credentials
	logger      *slog.Logger
	version     string
	now         func() time.Time
}

// HandlerOption is a functional option for configuring Handler.
type HandlerOption func(*Handler)

// WithCatalog replaces the default model catalog.
func WithCatalog(catalog domain.Catalog) HandlerOption {
	return func(h *Handler) {
		h.catalog = catalog
	}
}

// WithCredentials sets which providers report as configured.
func WithCredentials(creds domain.Credentials) HandlerOption {
	return func(h *Handler) {
		h.credentials = creds
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithVersion sets the version reported by /api/health.
func WithVersion(version string) HandlerOption {
	return func(h *Handler) {
		if version != "" {
			h.version = version
		}
	}
}

// WithClock overrides the time source for health timestamps.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler creates a new Handler.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		catalog: domain.DefaultCatalog,
		logger:  slog.Default(),
		version: DefaultVersion,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleChat handles POST /api/chat.
func (h *Handler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Provider == "" || req.Message == "" {
		sendError(c, http.StatusBadRequest, "Missing required fields: provider, message")
		return
	}

	provider := domain.ProviderType(req.Provider).Normalize()
	if _, ok := h.catalog[provider]; !ok {
		sendError(c, http.StatusBadRequest, fmt.Sprintf("Unknown provider: %s", req.Provider))
		return
	}

	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	if temperature < 0 || temperature > 1 {
		sendError(c, http.StatusBadRequest, "temperature must be between 0.0 and 1.0")
		return
	}

	maxTokens := DefaultMaxTokens
	if req.MaxTokens != nil {
		if *req.MaxTokens <= 0 {
			sendError(c, http.StatusBadRequest, "maxTokens must be a positive integer")
			return
		}
		maxTokens = *req.MaxTokens
	}

	model := req.Model
	if model == "" {
		model = h.catalog.DefaultModel(provider)
	}

	reply := truncateTokens(fmt.Sprintf("[%s/%s] %s", provider, model, req.Message), maxTokens)

	h.logger.Debug("chat answered",
		slog.String("provider", string(provider)),
		slog.String("model", model),
		slog.Float64("temperature", temperature),
		slog.Int("reply_limit", maxTokens),
	)

	c.JSON(http.StatusOK, ChatResponse{
		Provider: string(provider),
		Model:    model,
		Message:  reply,
		Usage:    EstimateUsage(req.Message, reply),
	})
}

// HandleModels handles GET /api/models?provider=...
func (h *Handler) HandleModels(c *gin.Context) {
	name := c.Query("provider")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              "Missing required parameter: provider",
			"availableProviders": h.providerNames(),
		})
		return
	}

	provider := domain.ProviderType(name).Normalize()
	models, ok := h.catalog.Models(provider)
	if !ok {
		sendError(c, http.StatusBadRequest, fmt.Sprintf("Unknown provider: %s", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": string(provider),
		"models":   models,
	})
}

// HandleProviders handles GET /api/providers.
func (h *Handler) HandleProviders(c *gin.Context) {
	names := h.providerNames()
	details := make(gin.H, len(names))
	for _, name := range names {
		models, _ := h.catalog.Models(domain.ProviderType(name))
		details[name] = gin.H{
			"provider": name,
			"models":   models,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"availableProviders": names,
		"details":            details,
		"usage":              "POST /api/chat with provider and message",
	})
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(c *gin.Context) {
	providers := make([]gin.H, 0, len(domain.KnownProviders))
	for _, p := range domain.KnownProviders {
		status := "not-configured"
		if h.credentials.Has(p) {
			status = "configured"
		}
		providers = append(providers, gin.H{
			"name":   p.DisplayName(),
			"status": status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"providers": providers,
		"version":   h.version,
	})
}

// HandleMethodNotAllowed answers requests using the wrong method.
func (h *Handler) HandleMethodNotAllowed(c *gin.Context) {
	sendError(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// providerNames lists the catalog's providers in the gateway's canonical order,
// followed by any extra catalog entries sorted by name.
func (h *Handler) providerNames() []string {
	names := make([]string, 0, len(h.catalog))
	seen := make(map[domain.ProviderType]bool, len(h.catalog))
	for _, p := range domain.KnownProviders {
		if _, ok := h.catalog[p]; ok {
			names = append(names, string(p))
			seen[p] = true
		}
	}

	var extra []string
	for p := range h.catalog {
		if !seen[p] {
			extra = append(extra, string(p))
		}
	}
	sort.Strings(extra)

	return append(names, extra...)
}

// sendError sends the gateway's flat {"error": "..."} body.
func sendError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
