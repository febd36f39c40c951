package chain

import (
	"os"
	"strings"
	"testing"
)

// TestRegistry_RegisterAndResolve tests basic registration and prefix
// dispatch
func TestRegistry_RegisterAndResolve(t *testing.T) {
	registry := NewRegistry()
	registry.Register("mock", NewDefaultHandler("mock-value"))

	result, err := registry.Resolve("mock:test-key")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result != "mock-value" {
		t.Errorf("Expected 'mock-value', got '%s'", result)
	}
}

// TestRegistry_UnknownPrefix tests resolution with an unregistered prefix
func TestRegistry_UnknownPrefix(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Resolve("unknown:value")
	if err == nil {
		t.Fatal("Expected error for unknown prefix")
	}
	if !strings.Contains(err.Error(), "no handler registered for prefix") {
		t.Errorf("Expected 'no handler registered' error, got: %v", err)
	}
}

// TestRegistry_BareKeyRoutesToEnv tests that a property without a colon is
// routed to the env prefix
func TestRegistry_BareKeyRoutesToEnv(t *testing.T) {
	testKey := "TEST_REGISTRY_BARE_KEY"
	_ = os.Setenv(testKey, "from-env")
	defer func() { _ = os.Unsetenv(testKey) }()

	registry := NewRegistry()
	registry.Register("env", NewEnvHandler())

	result, err := registry.Resolve(testKey)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result != "from-env" {
		t.Errorf("Expected 'from-env', got '%s'", result)
	}
}

// TestRegistry_FirstColonSeparates tests that only the first colon splits
// prefix from key
func TestRegistry_FirstColonSeparates(t *testing.T) {
	registry := NewRegistry()
	recorder := &recordingHandler{}
	registry.Register("custom", recorder)

	_, _ = registry.Resolve("custom:db:password")
	if recorder.lastKey != "db:password" {
		t.Errorf("Expected key 'db:password', got '%s'", recorder.lastKey)
	}
}

// TestRegistry_ChainMissIsError tests that a chain resolving nothing is
// reported as an error at the registry level
func TestRegistry_ChainMissIsError(t *testing.T) {
	registry := NewRegistry()
	registry.Register("empty", &recordingHandler{})

	_, err := registry.Resolve("empty:anything")
	if err == nil {
		t.Fatal("Expected error when the chain resolves nothing")
	}
	if !strings.Contains(err.Error(), "resolved to no value") {
		t.Errorf("Expected 'resolved to no value' error, got: %v", err)
	}
}

// TestRegistry_Unregister tests removing a prefix
func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()
	registry.Register("test", NewDefaultHandler("value"))

	if _, err := registry.Resolve("test:key"); err != nil {
		t.Fatalf("Resolve failed before unregister: %v", err)
	}

	registry.Unregister("test")

	if _, err := registry.Resolve("test:key"); err == nil {
		t.Fatal("Expected error after unregistering handler")
	}
}

// TestRegistry_LookupAndPrefixes tests handler retrieval and prefix listing
func TestRegistry_LookupAndPrefixes(t *testing.T) {
	registry := NewRegistry()
	handler := NewDefaultHandler("value")
	registry.Register("test", handler)

	if got := registry.Lookup("test"); got != Handler(handler) {
		t.Error("Expected Lookup to return the registered handler")
	}
	if got := registry.Lookup("absent"); got != nil {
		t.Error("Expected nil for an unregistered prefix")
	}

	prefixes := registry.Prefixes()
	if len(prefixes) != 1 || prefixes[0] != "test" {
		t.Errorf("Expected prefixes [test], got %v", prefixes)
	}
}

// TestDefaultRegistry_EnvRegisteredByDefault tests that the package-level
// registry resolves bare keys from the environment out of the box
func TestDefaultRegistry_EnvRegisteredByDefault(t *testing.T) {
	testKey := "TEST_DEFAULT_REGISTRY_VAR"
	_ = os.Setenv(testKey, "default-registry-value")
	defer func() { _ = os.Unsetenv(testKey) }()

	result, err := Resolve(testKey)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result != "default-registry-value" {
		t.Errorf("Expected 'default-registry-value', got '%s'", result)
	}
}

// TestDefaultRegistry_RegisterUnregister tests the package-level
// registration helpers
func TestDefaultRegistry_RegisterUnregister(t *testing.T) {
	Register("tmp", NewDefaultHandler("tmp-value"))
	defer Unregister("tmp")

	result, err := Resolve("tmp:key")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result != "tmp-value" {
		t.Errorf("Expected 'tmp-value', got '%s'", result)
	}
}

// TestRegistry_ChainMissNamesHandler tests that the chain-miss error names
// the handler that came up empty
func TestRegistry_ChainMissNamesHandler(t *testing.T) {
	registry := NewRegistry()
	registry.Register("env", NewEnvHandler().Prefix("TEST_REGISTRY_MISS_"))

	_, err := registry.Resolve("env:no-such-key")
	if err == nil {
		t.Fatal("Expected error when the chain resolves nothing")
	}
	if !strings.Contains(err.Error(), "Environment handler") {
		t.Errorf("Expected the error to name the Environment handler, got: %v", err)
	}
}

// TestRegistry_ChainMissAnonymousHandler tests the error for a handler
// without a Name method
func TestRegistry_ChainMissAnonymousHandler(t *testing.T) {
	registry := NewRegistry()
	registry.Register("custom", &recordingHandler{})

	_, err := registry.Resolve("custom:anything")
	if err == nil {
		t.Fatal("Expected error when the chain resolves nothing")
	}
	if !strings.Contains(err.Error(), "anonymous") {
		t.Errorf("Expected the error to mark the handler anonymous, got: %v", err)
	}
}
