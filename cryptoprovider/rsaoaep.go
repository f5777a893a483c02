package cryptoprovider

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha1"
	_ "crypto/sha256"
	"fmt"
	"math"
	"math/big"

	"github.com/go-jwe/jwec/jwa"
	"github.com/go-jwe/jwec/internal/b64url"
)

// jwkBigInt decodes the base64url-encoded big-endian integer stored
// under name in jwk.
func jwkBigInt(jwk map[string]any, name string) (*big.Int, error) {
	v, ok := jwk[name]
	if !ok {
		return nil, fmt.Errorf("cryptoprovider: importJwk: missing parameter %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("cryptoprovider: importJwk: parameter %q must be a string", name)
	}
	raw, err := b64url.Decode(name, s)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: importJwk: %w", err)
	}
	return new(big.Int).SetBytes(raw), nil
}

// rsaOAEPLabel is the empty label RFC 7518 Section 4.3 requires.
var rsaOAEPLabel = []byte{}

func rsaOAEPHash(primitive jwa.Primitive) (crypto.Hash, error) {
	switch primitive {
	case jwa.PrimitiveRSAOAEPSHA1:
		return crypto.SHA1, nil
	case jwa.PrimitiveRSAOAEPSHA256:
		return crypto.SHA256, nil
	default:
		return 0, unsupportedPrimitive("rsaoaep", primitive)
	}
}

func wrapRSAOAEP(pub *rsa.PublicKey, primitive jwa.Primitive, cek []byte) ([]byte, error) {
	h, err := rsaOAEPHash(primitive)
	if err != nil {
		return nil, err
	}
	wrapped, err := rsa.EncryptOAEP(h.New(), rand.Reader, pub, cek, rsaOAEPLabel)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: rsaoaep: %w", err)
	}
	return wrapped, nil
}

func unwrapRSAOAEP(priv *rsa.PrivateKey, primitive jwa.Primitive, wrapped []byte) ([]byte, error) {
	h, err := rsaOAEPHash(primitive)
	if err != nil {
		return nil, err
	}
	cek, err := rsa.DecryptOAEP(h.New(), rand.Reader, priv, wrapped, rsaOAEPLabel)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: rsaoaep: %w", err)
	}
	return cek, nil
}

// importRSAJWK imports an already-normalized RSA JWK (canonical
// base64url "n"/"e"[/"d"/"p"/"q"] parameters — see jwk.NormalizeRSA*)
// as a Key. A private key is recognized by the presence of "d".
func importRSAJWK(jwk map[string]any, primitive jwa.Primitive, usages []Usage) (*Key, error) {
	if kty, ok := jwk["kty"]; ok && kty != "RSA" {
		return nil, fmt.Errorf("cryptoprovider: importJwk: unsupported kty %v", kty)
	}

	n, err := jwkBigInt(jwk, "n")
	if err != nil {
		return nil, err
	}
	e, err := jwkBigInt(jwk, "e")
	if err != nil {
		return nil, err
	}
	if !e.IsInt64() || e.Int64() < 0 || e.Int64() > math.MaxInt32 {
		return nil, fmt.Errorf("cryptoprovider: importJwk: e out of range")
	}
	pub := &rsa.PublicKey{N: n, E: int(e.Int64())}

	if _, hasD := jwk["d"]; !hasD {
		return &Key{
			primitive:   primitive,
			extractable: false,
			usages:      newUsageSet(usages),
			rsaPub:      pub,
		}, nil
	}

	d, err := jwkBigInt(jwk, "d")
	if err != nil {
		return nil, err
	}
	priv := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         d,
	}
	p, errP := jwkBigInt(jwk, "p")
	q, errQ := jwkBigInt(jwk, "q")
	if errP == nil && errQ == nil {
		priv.Primes = []*big.Int{p, q}
	}
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("cryptoprovider: importJwk: %w", err)
	}
	priv.Precompute()

	return &Key{
		primitive:   primitive,
		extractable: false,
		usages:      newUsageSet(usages),
		rsaPriv:     priv,
	}, nil
}
