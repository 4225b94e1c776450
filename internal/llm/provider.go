package llm

import "context"

// Provider defines the interface for LLM text-generation backends.
// Every call returns an opaque string that the caller must schema-validate
// before trusting; providers never parse stage output themselves.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate performs one blocking request/response exchange
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for one generation call
type GenerateRequest struct {
	// System is the role instruction prepended to the exchange
	System string

	// Prompt is the user prompt (stage template plus prior-stage JSON)
	Prompt string

	// Model overrides the configured model for this call (provider-specific)
	Model string

	// Temperature controls sampling; stages pick their own values
	Temperature float64

	// MaxTokens limits the response length
	MaxTokens int

	// JSONOutput asks the provider for a JSON-mode response where supported.
	// The output is still untrusted and must be validated by the caller.
	JSONOutput bool

	// BypassCache forces a fresh call. Regeneration retries must not be
	// served the cached malformed response.
	BypassCache bool
}

// GenerateResponse contains the raw model output
type GenerateResponse struct {
	// Text is the generated text, trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks total token consumption where reported
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   60,
		MaxTokens: 4096,
	}
}
