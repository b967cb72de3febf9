// Package refnum generates batch reference numbers for ledger intake.
package refnum

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const suffixBytes = 4

// New returns a batch reference: a time-ordered stamp plus a random hex
// suffix, e.g. "20240131154502-9f3ac1d2". Uniqueness is enforced by the
// store; a collision rejects the whole batch and the caller retries with a
// fresh token.
func New(now time.Time) (string, error) {
	b := make([]byte, suffixBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return now.UTC().Format("20060102150405") + "-" + hex.EncodeToString(b), nil
}
