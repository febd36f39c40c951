// Package config provides declarative assembly of resolution chains and
// placeholder expansion on top of pkg/chain. Applications describe their
// source priority order in a YAML document, load it with Load, and turn it
// into a ready chain with Build; runtime-only collaborators such as the
// parsed command-line arguments are supplied through build options.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Source type names accepted in a chain specification.
const (
	SourceArg     = "arg"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceJSON    = "json"
	SourceConfig  = "config"
	SourceInline  = "inline"
	SourceVault   = "vault"
	SourceAWS     = "aws"
	SourceDefault = "default"
)

type (
	// Config describes a resolution chain: an ordered list of sources,
	// highest priority first.
	Config struct {
		Sources []SourceSpec `yaml:"sources"`
	}

	// SourceSpec configures one link of the chain. Type selects the handler;
	// the remaining fields apply per type.
	SourceSpec struct {
		Type string `yaml:"type"`

		// Prefix is prepended to keys before environment lookup (env).
		Prefix string `yaml:"prefix,omitempty"`

		// Path points at the backing file (file, json, config).
		Path string `yaml:"path,omitempty"`

		// Document and Format carry an embedded config document (inline).
		Document string `yaml:"document,omitempty"`
		Format   string `yaml:"format,omitempty"`

		// Value is the constant returned by a default source.
		Value string `yaml:"value,omitempty"`

		// Vault configures the Vault connection and KV path (vault).
		Vault *VaultConfig `yaml:"vault,omitempty"`

		// AWS configures the Secrets Manager connection and secret (aws).
		AWS *AWSConfig `yaml:"aws,omitempty"`
	}
)

// Load reads a YAML chain specification and validates it.
func Load(file string) (*Config, error) {
	var cfg *Config
	if err := LoadYaml(file, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to load chain specification %q", file)
	}
	if cfg == nil {
		return nil, errors.Errorf("chain specification %q is empty", file)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid chain specification %q", file)
	}
	return cfg, nil
}

// LoadYaml reads a YAML file and unmarshals its content into out.
func LoadYaml(file string, out any) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// Validate checks that every source entry is complete enough to build.
// Connectivity details that may instead arrive as build options (Vault
// address and token, AWS credentials) are not required here; they are
// checked when a client actually has to be created.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("at least one source is required")
	}
	for i, src := range c.Sources {
		if err := src.validate(); err != nil {
			return errors.Wrapf(err, "source %d (%s)", i, src.Type)
		}
	}
	return nil
}

func (s *SourceSpec) validate() error {
	switch s.Type {
	case SourceArg, SourceEnv, SourceDefault:
		return nil
	case SourceFile, SourceJSON, SourceConfig:
		if s.Path == "" {
			return errors.New("path is required")
		}
		return nil
	case SourceInline:
		if s.Document == "" {
			return errors.New("document is required")
		}
		if s.Format == "" {
			return errors.New("format is required")
		}
		return nil
	case SourceVault:
		if s.Vault == nil {
			return errors.New("vault block is required")
		}
		if s.Vault.Path == "" {
			return errors.New("vault path is required")
		}
		return nil
	case SourceAWS:
		if s.AWS == nil {
			return errors.New("aws block is required")
		}
		if s.AWS.SecretName == "" {
			return errors.New("aws secret name is required")
		}
		return nil
	case "":
		return errors.New("source type is required")
	default:
		return errors.Errorf("unknown source type %q", s.Type)
	}
}
