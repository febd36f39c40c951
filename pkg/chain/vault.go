package chain

import (
	"github.com/hashicorp/vault/api"
	"github.com/rs/zerolog/log"
)

// VaultHandler resolves values from a fixed HashiCorp Vault KV path.
// Both KV v1 and KV v2 secret engine layouts are supported. The path is read
// fresh on every request; Vault-side caching is the client's concern.
//
// In keeping with the chain contract, an unreachable Vault, an empty path or
// an absent key are all silent: the handler logs the cause and delegates.
//
// Example:
//
//	client, _ := api.NewClient(api.DefaultConfig())
//	handler := chain.NewVaultHandler(client, "secret/data/myapp").
//		Next(chain.NewDefaultHandler("changeme"))
type VaultHandler struct {
	logical *api.Logical
	path    string
	next    Handler
}

// NewVaultHandler creates a VaultHandler reading from the given KV path on
// an already-configured Vault client.
func NewVaultHandler(client *api.Client, path string) *VaultHandler {
	return &VaultHandler{logical: client.Logical(), path: path}
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *VaultHandler) Next(next Handler) *VaultHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *VaultHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on VaultHandler")
	}
	h.next = next
}

// Handle reads the configured Vault path and looks up key in the secret data.
func (h *VaultHandler) Handle(key string) (string, bool) {
	secret, err := h.logical.Read(h.path)
	if err != nil {
		log.Debug().Str("vault_path", h.path).Err(err).Msg("Vault source has no value")
		return delegate(h.next, key)
	}
	if secret == nil || secret.Data == nil {
		log.Debug().Str("vault_path", h.path).Msg("No secret at Vault path")
		return delegate(h.next, key)
	}

	data := secret.Data
	// KV v2 nests the payload under a "data" field.
	if nested, ok := secret.Data["data"].(map[string]interface{}); ok {
		data = nested
	}

	if value, ok := data[key]; ok {
		log.Debug().
			Str("vault_path", h.path).
			Str("key", key).
			Msg("Resolved value from Vault")
		return stringify(value), true
	}
	log.Debug().Str("vault_path", h.path).Str("key", key).Msg("Key not present in Vault secret")
	return delegate(h.next, key)
}

// Name identifies the handler in registry error messages.
func (h *VaultHandler) Name() string {
	return "Vault"
}
