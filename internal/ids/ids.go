// Package ids builds the time-stamped identifiers used for deployments and
// uploaded files.
package ids

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	// SuffixLength is the random tail length of Stamped ids.
	SuffixLength   = 9
	suffixFallback = "abcdefghi"
	alphabet       = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// RandomSuffix returns length lowercase alphanumerics. It falls back to a
// fixed string if the system random source fails.
func RandomSuffix(length int) string {
	if length <= 0 {
		return ""
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		if length <= len(suffixFallback) {
			return suffixFallback[:length]
		}
		return suffixFallback
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}

	return string(buf)
}

// Stamped returns "<unix-ms>_<suffix>", prefixed with "<prefix>_" when prefix
// is set.
func Stamped(prefix string, now time.Time) string {
	stamp := fmt.Sprintf("%d_%s", now.UnixMilli(), RandomSuffix(SuffixLength))
	if prefix == "" {
		return stamp
	}
	return prefix + "_" + stamp
}
