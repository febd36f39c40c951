package config

import (
	"github.com/animalet/confchain/pkg/chain"
	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
)

// BuildOption customizes chain assembly for sources that need runtime
// collaborators, such as a parsed flag set or pre-built clients.
type BuildOption func(*buildOptions)

type buildOptions struct {
	argSource   chain.ArgSource
	vaultClient *api.Client
	smClient    chain.SecretsManagerAPI
}

// WithArgSource supplies the parsed command line arguments used by "arg"
// sources. Building a configuration containing an "arg" source without
// this option fails.
func WithArgSource(args chain.ArgSource) BuildOption {
	return func(o *buildOptions) {
		o.argSource = args
	}
}

// WithVaultClient supplies a pre-built Vault client. When set, "vault"
// sources use it instead of creating a client from their own block.
func WithVaultClient(client *api.Client) BuildOption {
	return func(o *buildOptions) {
		o.vaultClient = client
	}
}

// WithSecretsManagerClient supplies a pre-built Secrets Manager client.
// When set, "aws" sources use it instead of creating a client from their
// own block.
func WithSecretsManagerClient(client chain.SecretsManagerAPI) BuildOption {
	return func(o *buildOptions) {
		o.smClient = client
	}
}

// Build assembles the handler chain described by the configuration.
// Sources are linked in declaration order, so earlier sources take
// precedence over later ones.
func Build(cfg *Config, opts ...BuildOption) (chain.Handler, error) {
	if cfg == nil {
		return nil, errors.New("configuration is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Sources) == 0 {
		return nil, errors.New("configuration declares no sources")
	}

	options := buildOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	handlers := make([]chain.Handler, 0, len(cfg.Sources))
	for i, source := range cfg.Sources {
		handler, err := buildHandler(source, &options)
		if err != nil {
			return nil, errors.Wrapf(err, "source %d (%s)", i, source.Type)
		}
		handlers = append(handlers, handler)
	}

	return chain.Link(handlers...), nil
}

func buildHandler(source SourceSpec, options *buildOptions) (chain.Handler, error) {
	switch source.Type {
	case SourceArg:
		if options.argSource == nil {
			return nil, errors.New("arg source requires WithArgSource")
		}
		return chain.NewArgHandler(options.argSource), nil
	case SourceEnv:
		return chain.NewEnvHandler().Prefix(source.Prefix), nil
	case SourceFile:
		return chain.NewFileHandler(source.Path), nil
	case SourceJSON:
		return chain.NewJSONFileHandler(source.Path), nil
	case SourceConfig:
		return chain.NewConfigFileHandler(source.Path)
	case SourceInline:
		return chain.NewConfigBytesHandler([]byte(source.Document), source.Format)
	case SourceVault:
		client := options.vaultClient
		if client == nil {
			created, err := source.Vault.CreateClient()
			if err != nil {
				return nil, err
			}
			client = created
		}
		return chain.NewVaultHandler(client, source.Vault.Path), nil
	case SourceAWS:
		client := options.smClient
		if client == nil {
			created, err := source.AWS.CreateClient()
			if err != nil {
				return nil, err
			}
			client = created
		}
		return chain.NewAWSHandler(client, source.AWS.SecretName), nil
	case SourceDefault:
		return chain.NewDefaultHandler(source.Value), nil
	default:
		return nil, errors.Errorf("unknown source type %q", source.Type)
	}
}
