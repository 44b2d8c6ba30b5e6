// Package testing holds helpers that split the suite into unit and
// integration runs.
package testing

import (
	"os"
	"testing"
)

// Environment variables read by the helpers.
const (
	EnvUnitOnly       = "DEBUGKIT_UNIT_TESTS_ONLY"
	EnvRunIntegration = "DEBUGKIT_RUN_INTEGRATION_TESTS"
	EnvNATSURL        = "DEBUGKIT_NATS_URL"
)

// DefaultNATSURL is used by NATS integration tests when EnvNATSURL is unset.
const DefaultNATSURL = "nats://127.0.0.1:4222"

// Unit returns true if running in unit test mode.
// Unit tests must not need external services such as a NATS server.
// Integration runs are opted into with DEBUGKIT_RUN_INTEGRATION_TESTS=true.
func Unit() bool {
	if os.Getenv(EnvUnitOnly) == "true" {
		return true
	}
	if os.Getenv(EnvRunIntegration) == "true" {
		return testing.Short()
	}
	return true
}

// Integration returns true if running in integration test mode.
func Integration() bool {
	return !Unit()
}

// SkipIfUnit skips the test if running in unit test mode.
func SkipIfUnit(t *testing.T, message ...string) {
	t.Helper()
	if Unit() {
		msg := "Skipping integration test in unit mode"
		if len(message) > 0 {
			msg = message[0]
		}
		t.Skip(msg)
	}
}

// NATSURL returns the server integration tests should connect to.
func NATSURL() string {
	if url := os.Getenv(EnvNATSURL); url != "" {
		return url
	}
	return DefaultNATSURL
}
