package format

import (
	"crypto/sha256"
	"fmt"
	"io"
)

// Fingerprint identifies the active rule set. Style verdicts recorded under
// one fingerprint go stale the moment a banner rule or pass constant changes.
func Fingerprint() [32]byte {
	h := sha256.New()
	for _, rule := range bannerRules {
		_, _ = io.WriteString(h, rule.Keyword)
		_, _ = io.WriteString(h, "\x00")
		_, _ = io.WriteString(h, rule.Canonical)
		_, _ = io.WriteString(h, "\n")
	}
	_, _ = fmt.Fprintf(h, "lookback=%d\n", returnLookback)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
