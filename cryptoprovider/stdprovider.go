package cryptoprovider

import (
	"crypto/rand"
	"fmt"

	"github.com/go-jwe/jwec/jwa"
)

// StdProvider is the reference Provider implementation, built directly
// on Go's standard crypto/* packages: crypto/aes, crypto/cipher,
// crypto/hmac, crypto/rsa, crypto/sha1, crypto/sha256, crypto/sha512,
// crypto/subtle, crypto/rand. It has no state of its own; its methods
// are safe for concurrent use.
type StdProvider struct{}

// NewStdProvider returns the standard-library-backed Provider.
func NewStdProvider() *StdProvider {
	return &StdProvider{}
}

var _ Provider = (*StdProvider)(nil)

// Random returns n bytes read from crypto/rand.
func (p *StdProvider) Random(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptoprovider: random: %w", err)
	}
	return buf, nil
}

// GenerateKey generates sizeBytes of new key material for primitive.
func (p *StdProvider) GenerateKey(primitive jwa.Primitive, sizeBytes int, extractable bool, usages []Usage) (*Key, error) {
	switch primitive {
	case jwa.PrimitiveAESKW, jwa.PrimitiveAESCBC, jwa.PrimitiveAESGCM,
		jwa.PrimitiveHMACSHA256, jwa.PrimitiveHMACSHA512:
		raw, err := p.Random(sizeBytes)
		if err != nil {
			return nil, err
		}
		return &Key{
			primitive:   primitive,
			extractable: extractable,
			usages:      newUsageSet(usages),
			symmetric:   raw,
		}, nil
	default:
		return nil, unsupportedPrimitive("generateKey", primitive)
	}
}

// ExportRaw returns key's raw symmetric material. It fails for
// non-extractable or non-symmetric keys.
func (p *StdProvider) ExportRaw(key *Key) ([]byte, error) {
	if !key.extractable {
		return nil, fmt.Errorf("cryptoprovider: exportRaw: key is not extractable")
	}
	if key.symmetric == nil {
		return nil, fmt.Errorf("cryptoprovider: exportRaw: key has no raw material")
	}
	out := make([]byte, len(key.symmetric))
	copy(out, key.symmetric)
	return out, nil
}

// ImportRaw wraps raw as a symmetric Key for use with primitive.
func (p *StdProvider) ImportRaw(raw []byte, primitive jwa.Primitive, extractable bool, usages []Usage) (*Key, error) {
	switch primitive {
	case jwa.PrimitiveAESKW, jwa.PrimitiveAESCBC, jwa.PrimitiveAESGCM,
		jwa.PrimitiveHMACSHA256, jwa.PrimitiveHMACSHA512:
		material := make([]byte, len(raw))
		copy(material, raw)
		return &Key{
			primitive:   primitive,
			extractable: extractable,
			usages:      newUsageSet(usages),
			symmetric:   material,
		}, nil
	default:
		return nil, unsupportedPrimitive("importRaw", primitive)
	}
}

// ImportJWK imports an already-normalized RSA JWK (public or private,
// by whether "d" is present) for use with primitive.
func (p *StdProvider) ImportJWK(jwk map[string]any, primitive jwa.Primitive, usages []Usage) (*Key, error) {
	switch primitive {
	case jwa.PrimitiveRSAOAEPSHA1, jwa.PrimitiveRSAOAEPSHA256:
		return importRSAJWK(jwk, primitive, usages)
	default:
		return nil, unsupportedPrimitive("importJwk", primitive)
	}
}

