// Package completion wraps hosted chat-completion providers behind a single
// Client interface. Azure OpenAI is preferred when configured, with standard
// OpenAI as the second choice. When neither provider is usable the rest of
// the system runs in degraded mode and serves templated fallbacks.
package completion

import (
	"context"
	"log/slog"

	"github.com/shivamsuchak/q-revised/internal/config"
)

// Client is the interface for completion providers.
type Client interface {
	// Complete sends a prompt and returns the model's text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Health reports whether the client is configured to make calls.
	Health() error

	// Provider names the backing provider, for logging and metrics.
	Provider() string
}

// chatMessage is the wire format shared by both providers.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewFromConfig builds the best available client from configuration,
// verifying it with a probe. It returns nil when no provider is usable;
// callers treat a nil client as degraded mode.
func NewFromConfig(cfg *config.CompletionConfig, logger *slog.Logger) Client {
	if cfg.AzureAPIKey != "" && cfg.AzureEndpoint != "" {
		client := NewAzureClient(&AzureConfig{
			APIKey:     cfg.AzureAPIKey,
			Endpoint:   cfg.AzureEndpoint,
			Deployment: cfg.AzureDeployment,
			Timeout:    cfg.GetTimeout(),
		})
		if err := Probe(context.Background(), client, nil); err == nil {
			logger.Info("Connected to Azure OpenAI", "deployment", cfg.AzureDeployment)
			return client
		} else {
			logger.Warn("Azure OpenAI unusable", "error", err)
		}
	}

	if cfg.OpenAIAPIKey != "" {
		client := NewOpenAIClient(&OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.GetTimeout(),
		})
		if err := Probe(context.Background(), client, nil); err == nil {
			logger.Info("Connected to OpenAI", "model", cfg.OpenAIModel)
			return client
		} else {
			logger.Warn("OpenAI unusable", "error", err)
		}
	}

	logger.Warn("No completion provider available, using templated fallbacks")
	return nil
}
