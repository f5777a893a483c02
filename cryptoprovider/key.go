package cryptoprovider

import (
	"crypto/rsa"
	"fmt"

	"github.com/go-jwe/jwec/jwa"
)

// Key is an opaque handle returned by a Provider. Its raw material (or,
// for RSA, its public/private structures) is not exported directly by
// this package's API; callers obtain it only through Provider.ExportRaw,
// which fails for non-extractable keys.
type Key struct {
	primitive   jwa.Primitive
	extractable bool
	usages      map[Usage]bool

	symmetric []byte
	rsaPub    *rsa.PublicKey
	rsaPriv   *rsa.PrivateKey
}

// Primitive reports the crypto primitive this key was created for.
func (k *Key) Primitive() jwa.Primitive {
	return k.primitive
}

// Extractable reports whether ExportRaw is permitted for this key.
func (k *Key) Extractable() bool {
	return k.extractable
}

// HasUsage reports whether u is in the key's usage set.
func (k *Key) HasUsage(u Usage) bool {
	return k.usages[u]
}

func newUsageSet(usages []Usage) map[Usage]bool {
	set := make(map[Usage]bool, len(usages))
	for _, u := range usages {
		set[u] = true
	}
	return set
}

func (k *Key) requireUsage(op string, u Usage) error {
	if !k.HasUsage(u) {
		return fmt.Errorf("cryptoprovider: %s: %w: %s", op, ErrInvalidKeyUsage, u)
	}
	return nil
}
