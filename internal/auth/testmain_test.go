package auth

import (
	"testing"

	"go.uber.org/goleak"
)

// Verify no goroutine leaks across tests in this package — the provider
// client and the test servers must not leave connections behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
