package config

import (
	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
)

// VaultConfig holds the connection settings and KV path for a Vault source.
type VaultConfig struct {
	Address   string `yaml:"address"`
	Token     string `yaml:"token"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace,omitempty"`
}

// Validate checks if the VaultConfig has all fields required to create a
// client.
func (v VaultConfig) Validate() error {
	if v.Address == "" {
		return errors.New("Vault address is required")
	}
	if v.Token == "" {
		return errors.New("Vault token is required")
	}
	if v.Path == "" {
		return errors.New("Vault path is required")
	}
	return nil
}

// CreateClient creates and configures a Vault API client from this config.
// Callers that already hold a client should pass it to Build via
// WithVaultClient instead.
func (v VaultConfig) CreateClient() (*api.Client, error) {
	if err := v.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid Vault configuration")
	}

	apiConfig := api.DefaultConfig()
	apiConfig.Address = v.Address

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vault client")
	}

	client.SetToken(v.Token)

	if v.Namespace != "" {
		client.SetNamespace(v.Namespace)
	}

	return client, nil
}
