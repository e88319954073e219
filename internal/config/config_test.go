package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	yaml := []byte(`
server:
  port: 18800
  host: localhost
completion:
  azure_deployment: gpt-4o
  timeout: 30s
memory:
  backend: file
  dir: /tmp/histories
`)
	f, _ := os.CreateTemp("", "config-*.yaml")
	f.Write(yaml)
	f.Close()
	defer os.Remove(f.Name())

	cfg, err := Load(f.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 18800 {
		t.Errorf("Expected port 18800, got %d", cfg.Server.Port)
	}
	if cfg.Memory.Dir != "/tmp/histories" {
		t.Errorf("Expected memory dir /tmp/histories, got %s", cfg.Memory.Dir)
	}
	if cfg.Completion.GetTimeout() != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.Completion.GetTimeout())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Memory.Backend != "file" {
		t.Errorf("Expected default backend file, got %s", cfg.Memory.Backend)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AZURE_OPENAI_API_KEY", "test-key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "example.openai.azure.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Completion.AzureAPIKey != "test-key" {
		t.Errorf("Expected env api key override, got %q", cfg.Completion.AzureAPIKey)
	}
	if cfg.Completion.AzureEndpoint != "example.openai.azure.com" {
		t.Errorf("Expected env endpoint override, got %q", cfg.Completion.AzureEndpoint)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestValidateInvalidPort(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: -1}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for invalid port")
	}
}

func TestValidateRedisWithoutAddr(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Port: 8080},
		Memory: MemoryConfig{Backend: "redis"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for redis backend without addr")
	}
}
