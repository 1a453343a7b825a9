// Package runid provides unique identifiers for preparation runs.
package runid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generate creates a new unique run ID.
// Format: run-<yyyymmddThhmmss>-<random>
// Example: run-20261018T142500-a1b2c3d4
func Generate() string {
	return generateAt(time.Now().UTC())
}

func generateAt(t time.Time) string {
	stamp := t.Format("20060102T150405")
	random := make([]byte, 4)
	if _, err := rand.Read(random); err != nil {
		// Fallback to timestamp only if crypto/rand fails
		return fmt.Sprintf("run-%s", stamp)
	}
	return fmt.Sprintf("run-%s-%s", stamp, hex.EncodeToString(random))
}
