package config

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
)

// AWSConfig holds the connection settings and secret name for an AWS
// Secrets Manager source.
type AWSConfig struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
	SecretName      string `yaml:"secret_name"`
	// Endpoint overrides the service endpoint, for LocalStack or private
	// deployments.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// Validate checks if the AWSConfig has all fields required to create a
// client. AccessKeyID and SecretAccessKey are optional; when absent the
// default credential chain (IAM role, environment) applies.
func (a AWSConfig) Validate() error {
	if a.Region == "" {
		return errors.New("AWS region is required")
	}
	if a.SecretName == "" {
		return errors.New("AWS secret name is required")
	}
	return nil
}

// CreateClient creates and configures an AWS Secrets Manager client from
// this config. Callers that already hold a client should pass it to Build
// via WithSecretsManagerClient instead.
func (a AWSConfig) CreateClient() (*secretsmanager.Client, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid AWS configuration")
	}

	configOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(a.Region),
	}

	if a.Endpoint != "" {
		configOpts = append(configOpts, awsconfig.WithBaseEndpoint(a.Endpoint))
	}

	if a.AccessKeyID != "" && a.SecretAccessKey != "" {
		configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				a.AccessKeyID,
				a.SecretAccessKey,
				"",
			),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	return secretsmanager.NewFromConfig(cfg), nil
}
