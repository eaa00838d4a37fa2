package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит составной хеш: H( content || salt1 || salt2 ... ).
// Порядок аргументов должен быть детерминированным.
func Combine(content Digest, salts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range salts {
		_, _ = h.Write(s[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
