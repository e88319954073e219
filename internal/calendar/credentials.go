// Package calendar manages Google Calendar OAuth credential discovery.
package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scopes required for calendar event operations.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

// Credentials locates the OAuth client secret and token files.
type Credentials struct {
	ClientSecretFile string   `json:"client_secret_file"`
	TokenFile        string   `json:"token_file"`
	Scopes           []string `json:"scopes"`
}

type installedClient struct {
	ClientID                string   `json:"client_id"`
	ProjectID               string   `json:"project_id"`
	AuthURI                 string   `json:"auth_uri"`
	TokenURI                string   `json:"token_uri"`
	AuthProviderX509CertURL string   `json:"auth_provider_x509_cert_url"`
	ClientSecret            string   `json:"client_secret"`
	RedirectURIs            []string `json:"redirect_uris"`
}

type clientSecretFile struct {
	Installed installedClient `json:"installed"`
}

// Discover finds or synthesizes OAuth credentials under dir. When
// client_secret.json is absent it is written from the GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET environment variables.
func Discover(dir string) (*Credentials, error) {
	secretPath := filepath.Join(dir, "client_secret.json")
	tokenPath := filepath.Join(dir, "token.json")

	if _, err := os.Stat(secretPath); err == nil {
		return &Credentials{
			ClientSecretFile: secretPath,
			TokenFile:        tokenPath,
			Scopes:           Scopes,
		}, nil
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("google calendar credentials not found: create %s or set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET", secretPath)
	}

	secret := clientSecretFile{
		Installed: installedClient{
			ClientID:                clientID,
			ProjectID:               "q-hack-calendar",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            clientSecret,
			RedirectURIs:            []string{"http://localhost:8080"},
		},
	}

	data, err := json.Marshal(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to encode client secret: %w", err)
	}
	if err := os.WriteFile(secretPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write client secret: %w", err)
	}

	return &Credentials{
		ClientSecretFile: secretPath,
		TokenFile:        tokenPath,
		Scopes:           Scopes,
	}, nil
}

// HasToken reports whether a stored OAuth token exists.
func (c *Credentials) HasToken() bool {
	_, err := os.Stat(c.TokenFile)
	return err == nil
}
