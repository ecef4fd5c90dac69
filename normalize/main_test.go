// SPDX-License-Identifier: MIT
package normalize_test

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies that the per-sample worker fan-out leaves no goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
