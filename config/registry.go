package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderSettings are the file-borne settings for one provider entry in a
// registry. Scopes, when present, override the provider's built-in defaults.
type ProviderSettings struct {
	Enabled      bool     `yaml:"enabled"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes,omitempty"`
}

// Registry is a YAML-backed multi-provider configuration, for deployments
// that wire several identity providers from one file:
//
//	providers:
//	  facebook:
//	    enabled: true
//	    client_id: "..."
//	    client_secret: "..."
//	    redirect_url: "https://app.example.com/auth/facebook/callback"
//	  github:
//	    enabled: true
//	    client_id: "..."
//	    client_secret: "..."
//	    redirect_url: "https://app.example.com/auth/github/callback"
//	    scopes: ["read:user", "user:email", "user:follow"]
type Registry struct {
	Providers map[string]ProviderSettings `yaml:"providers"`
}

// LoadRegistry reads and parses a provider registry file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrRegistryNotReadable, err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, errors.Join(ErrParsingRegistry, err)
	}
	return &reg, nil
}

// Provider returns the settings for an enabled provider entry.
func (r *Registry) Provider(name string) (ProviderSettings, error) {
	settings, ok := r.Providers[name]
	if !ok {
		return ProviderSettings{}, fmt.Errorf("%w: %q", ErrProviderNotConfigured, name)
	}
	if !settings.Enabled {
		return ProviderSettings{}, fmt.Errorf("%w: %q", ErrProviderDisabled, name)
	}
	return settings, nil
}

// Enabled lists the names of all enabled providers.
func (r *Registry) Enabled() []string {
	names := make([]string, 0, len(r.Providers))
	for name, settings := range r.Providers {
		if settings.Enabled {
			names = append(names, name)
		}
	}
	return names
}
