package calendar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverExistingSecret(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "client_secret.json")
	require.NoError(t, os.WriteFile(secretPath, []byte(`{"installed":{}}`), 0600))

	creds, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, secretPath, creds.ClientSecretFile)
	assert.Equal(t, filepath.Join(dir, "token.json"), creds.TokenFile)
	assert.Equal(t, Scopes, creds.Scopes)
	assert.False(t, creds.HasToken())
}

func TestDiscoverSynthesizesFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GOOGLE_CLIENT_ID", "id-123")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret-456")

	creds, err := Discover(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(creds.ClientSecretFile)
	require.NoError(t, err)

	var secret clientSecretFile
	require.NoError(t, json.Unmarshal(data, &secret))
	assert.Equal(t, "id-123", secret.Installed.ClientID)
	assert.Equal(t, "secret-456", secret.Installed.ClientSecret)
	assert.NotEmpty(t, secret.Installed.TokenURI)
}

func TestDiscoverMissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	_, err := Discover(t.TempDir())
	assert.Error(t, err)
}
