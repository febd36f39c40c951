package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeChainSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.yaml")
	spec := `
sources:
  - type: arg
  - type: env
    prefix: CONFCHAIN_TEST_
  - type: default
    value: fallback
`
	if err := os.WriteFile(path, []byte(spec), 0o600); err != nil {
		t.Fatalf("Failed to write chain spec: %v", err)
	}
	return path
}

// TestRun_ResolvesKeys tests the happy path through override, environment,
// and default sources.
func TestRun_ResolvesKeys(t *testing.T) {
	spec := writeChainSpec(t)
	t.Setenv("CONFCHAIN_TEST_timeout", "30")

	overrides := map[string]string{"verbosity": "trace"}
	if err := run(spec, overrides, []string{"verbosity", "timeout", "anything-else"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

// TestRun_MissingConfigFlag tests that the config flag is mandatory.
func TestRun_MissingConfigFlag(t *testing.T) {
	if err := run("", nil, []string{"key"}); err == nil {
		t.Error("Expected an error when no spec file is given")
	}
}

// TestRun_NoKeys tests that at least one key must be requested.
func TestRun_NoKeys(t *testing.T) {
	if err := run(writeChainSpec(t), nil, nil); err == nil {
		t.Error("Expected an error when no keys are requested")
	}
}

// TestRun_UnresolvableKey tests that a chain without a default fails the run
// for unknown keys.
func TestRun_UnresolvableKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  - type: env\n"), 0o600); err != nil {
		t.Fatalf("Failed to write chain spec: %v", err)
	}

	if err := run(path, nil, []string{"confchain-test-no-such-key"}); err == nil {
		t.Error("Expected an error for an unresolvable key")
	}
}

// TestRun_BadSpec tests that validation errors surface.
func TestRun_BadSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  - type: file\n"), 0o600); err != nil {
		t.Fatalf("Failed to write chain spec: %v", err)
	}

	if err := run(path, nil, []string{"key"}); err == nil {
		t.Error("Expected an error for an invalid spec")
	}
}
