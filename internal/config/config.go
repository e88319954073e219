package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the agent gateway.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Completion CompletionConfig `yaml:"completion"`
	Memory     MemoryConfig     `yaml:"memory"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Channels   ChannelsConfig   `yaml:"channels"`
	Scheduler  SchedulerConfig  `yaml:"scheduler,omitempty"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// CompletionConfig defines completion-service connection settings.
// Azure is preferred when both providers are configured.
type CompletionConfig struct {
	AzureAPIKey     string `yaml:"azure_api_key,omitempty"`
	AzureEndpoint   string `yaml:"azure_endpoint,omitempty"`
	AzureDeployment string `yaml:"azure_deployment,omitempty"`
	OpenAIAPIKey    string `yaml:"openai_api_key,omitempty"`
	OpenAIBaseURL   string `yaml:"openai_base_url,omitempty"`
	OpenAIModel     string `yaml:"openai_model,omitempty"`
	Timeout         string `yaml:"timeout,omitempty"`
}

// GetTimeout returns the completion call timeout as a time.Duration.
func (c *CompletionConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 120 * time.Second
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// MemoryConfig defines conversation store settings. Backend is "file"
// (default) or "redis".
type MemoryConfig struct {
	Backend       string `yaml:"backend,omitempty"`
	Dir           string `yaml:"dir,omitempty"`
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
}

// CalendarConfig defines calendar credential file locations.
type CalendarConfig struct {
	CredentialsDir string `yaml:"credentials_dir,omitempty"`
}

// ChannelsConfig defines chat channel adapter settings.
type ChannelsConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Discord  DiscordConfig  `yaml:"discord"`
	WebChat  WebChatConfig  `yaml:"webchat"`
}

// TelegramConfig defines Telegram channel settings.
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

// DiscordConfig defines Discord channel settings.
type DiscordConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

// WebChatConfig defines WebChat channel settings.
type WebChatConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// SchedulerConfig defines background job settings.
type SchedulerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	StatsSchedule string `yaml:"stats_schedule,omitempty"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load loads configuration from a YAML file with environment variable
// overrides for secrets. A missing file is not an error: defaults plus
// environment variables still produce a usable config.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Host: "0.0.0.0"},
		Completion: CompletionConfig{
			AzureDeployment: "gpt-4o",
			OpenAIModel:     "gpt-3.5-turbo",
		},
		Memory:    MemoryConfig{Backend: "file", Dir: "./agent_memories"},
		Calendar:  CalendarConfig{CredentialsDir: "."},
		Scheduler: SchedulerConfig{Enabled: true, StatsSchedule: "@hourly"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("GATEWAY_PORT"); port != "" {
		fmt.Sscanf(port, "%d", &c.Server.Port)
	}
	if key := os.Getenv("AZURE_OPENAI_API_KEY"); key != "" {
		c.Completion.AzureAPIKey = key
	}
	if endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT"); endpoint != "" {
		c.Completion.AzureEndpoint = endpoint
	}
	if deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); deployment != "" {
		c.Completion.AzureDeployment = deployment
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Completion.OpenAIAPIKey = key
	}
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		c.Channels.Telegram.Token = token
	}
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		c.Channels.Discord.Token = token
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Memory.RedisAddr = addr
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Memory.Backend != "" && c.Memory.Backend != "file" && c.Memory.Backend != "redis" {
		return fmt.Errorf("unknown memory backend: %s", c.Memory.Backend)
	}
	if c.Memory.Backend == "redis" && c.Memory.RedisAddr == "" {
		return fmt.Errorf("memory backend redis requires redis_addr")
	}
	return nil
}
