package chain

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rs/zerolog/log"
)

// SecretsManagerAPI is the subset of the AWS Secrets Manager client used by
// AWSHandler. Declaring the dependency as an interface keeps the handler
// testable without a live endpoint; *secretsmanager.Client satisfies it.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSHandler resolves values from a named secret in AWS Secrets Manager.
// When the secret string is a JSON object the requested key selects a field;
// otherwise the entire secret string is the value and the key is ignored,
// mirroring the whole-file policy of FileHandler.
//
// The secret is fetched fresh on every request. Retrieval failures and
// absent keys delegate to the successor.
//
// Example:
//
//	handler := chain.NewAWSHandler(client, "myapp/prod").
//		Next(chain.NewDefaultHandler("changeme"))
type AWSHandler struct {
	client     SecretsManagerAPI
	secretName string
	next       Handler
}

// NewAWSHandler creates an AWSHandler reading the named secret through an
// already-configured client.
func NewAWSHandler(client SecretsManagerAPI, secretName string) *AWSHandler {
	return &AWSHandler{client: client, secretName: secretName}
}

// Next attaches a successor and returns the handler for further chaining.
// Rebinding replaces the previous successor.
func (h *AWSHandler) Next(next Handler) *AWSHandler {
	h.SetNext(next)
	return h
}

// SetNext attaches a successor. Rebinding is last-write-wins.
func (h *AWSHandler) SetNext(next Handler) {
	if h.next != nil {
		log.Warn().Msg("Replacing existing successor on AWSHandler")
	}
	h.next = next
}

// Handle fetches the secret and looks up key in its JSON payload, falling
// back to the whole secret string for non-JSON secrets.
func (h *AWSHandler) Handle(key string) (string, bool) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(h.secretName),
	}
	result, err := h.client.GetSecretValue(context.Background(), input)
	if err != nil {
		log.Debug().Str("secret_name", h.secretName).Err(err).Msg("AWS source has no value")
		return delegate(h.next, key)
	}
	if result.SecretString == nil {
		log.Debug().Str("secret_name", h.secretName).Msg("AWS secret has no string value")
		return delegate(h.next, key)
	}
	secretString := *result.SecretString

	var secretData map[string]any
	if err := json.Unmarshal([]byte(secretString), &secretData); err == nil {
		if value, ok := secretData[key]; ok {
			log.Debug().
				Str("secret_name", h.secretName).
				Str("key", key).
				Msg("Resolved value from AWS Secrets Manager")
			return stringify(value), true
		}
		log.Debug().Str("secret_name", h.secretName).Str("key", key).Msg("Key not present in AWS secret")
		return delegate(h.next, key)
	}

	// Not JSON: the whole secret is the value, key ignored.
	log.Debug().Str("secret_name", h.secretName).Msg("Resolved plain-text value from AWS Secrets Manager")
	return secretString, true
}

// Name identifies the handler in registry error messages.
func (h *AWSHandler) Name() string {
	return "AWSSecretsManager"
}
