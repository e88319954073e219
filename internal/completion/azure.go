package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shivamsuchak/q-revised/internal/metrics"
)

const azureAPIVersion = "2024-02-15-preview"

// AzureConfig holds Azure OpenAI client configuration.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	Deployment string
	Timeout    time.Duration
}

// AzureClient is an Azure OpenAI chat-completions client.
type AzureClient struct {
	apiKey     string
	endpoint   string
	deployment string
	httpClient *http.Client
}

// NewAzureClient creates a new Azure OpenAI client. The endpoint is
// normalized to include the https scheme and a trailing slash.
func NewAzureClient(cfg *AzureConfig) *AzureClient {
	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	deployment := cfg.Deployment
	if deployment == "" {
		deployment = "gpt-4o"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &AzureClient{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		deployment: deployment,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Complete sends a single-turn chat completion request.
func (c *AzureClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%sopenai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, azureAPIVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.CompletionLatency.WithLabelValues(c.Provider()).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("azure API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Health checks that the client has credentials configured.
func (c *AzureClient) Health() error {
	if c.apiKey == "" {
		return fmt.Errorf("azure API key is not configured")
	}
	if c.endpoint == "" {
		return fmt.Errorf("azure endpoint is not configured")
	}
	return nil
}

// Provider returns the provider name.
func (c *AzureClient) Provider() string {
	return "azure-openai"
}
