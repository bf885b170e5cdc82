package testutil

import (
	"os"
	"testing"
)

// EnvOrSkip returns the value of key. The test is skipped when it is unset.
func EnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	return EnvsOrSkip(t, key)[0]
}

// EnvsOrSkip returns the values of keys in order. The test is skipped, naming every missing variable, when any is unset.
// Integration tests against GitHub, BigQuery, Cloud Storage and Firestore use this.
func EnvsOrSkip(t *testing.T, keys ...string) []string {
	t.Helper()

	values := make([]string, len(keys))
	var missing []string
	for i, key := range keys {
		values[i] = os.Getenv(key)
		if values[i] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		t.Skipf("integration test skipped, unset: %v", missing)
	}
	return values
}
