// Package cryptoprovider defines the primitive crypto engine a JWE codec
// consumes (RSA-OAEP, AES-KW, AES-CBC, AES-GCM, HMAC, CSPRNG) through an
// abstract Provider, together with StdProvider, a reference
// implementation built directly on Go's standard crypto/* packages.
//
// The codec never touches raw key material directly: every operation
// goes through an opaque *Key handle carrying its own usage set and
// extractability flag, mirroring how a platform-native or HSM-backed
// crypto engine would be consumed.
package cryptoprovider

import (
	"errors"
	"fmt"

	"github.com/go-jwe/jwec/jwa"
)

// Usage names one operation a Key is permitted to be used for.
type Usage string

const (
	UsageEncrypt   Usage = "encrypt"
	UsageDecrypt   Usage = "decrypt"
	UsageWrap      Usage = "wrap"
	UsageUnwrap    Usage = "unwrap"
	UsageSign      Usage = "sign"
	UsageVerify    Usage = "verify"
	UsageDeriveKey Usage = "deriveKey"
)

// ErrInvalidKeyUsage is returned when an operation is attempted against
// a Key that was not granted the corresponding Usage.
var ErrInvalidKeyUsage = errors.New("cryptoprovider: key does not permit this usage")

// EncryptParams carries the parameters needed to invoke Encrypt/Decrypt
// for a content-encryption primitive: the IV and the Additional
// Authenticated Data to bind.
type EncryptParams struct {
	Primitive jwa.Primitive
	IV        []byte
	AAD       []byte
}

// Provider is the abstract primitive crypto engine a JWE codec is built
// against. Every method corresponds one-to-one to an operation of the
// CryptoProvider contract this codec descends from: random, importJwk,
// generateKey, exportRaw, importRaw, wrapRaw, unwrapRaw, encrypt,
// decrypt, sign.
//
// Implementations MUST perform constant-time tag comparison for AEAD
// primitives internally (Decrypt); the codec's own pipeline performs the
// equivalent comparison itself only for composite (encrypt-then-MAC)
// algorithms, where the MAC is assembled in the codec, not the provider.
type Provider interface {
	// Random returns n cryptographically random bytes.
	Random(n int) ([]byte, error)

	// ImportJWK imports a normalized JWK-shaped key (already coerced to
	// canonical base64url parameters) for use with the given primitive,
	// restricted to usages.
	ImportJWK(jwk map[string]any, primitive jwa.Primitive, usages []Usage) (*Key, error)

	// GenerateKey generates a new symmetric key of sizeBytes suitable
	// for primitive. sizeBytes disambiguates algorithms this codec
	// models with a single Primitive across more than one key size
	// (e.g. AES-GCM at 128 vs. 256 bits).
	GenerateKey(primitive jwa.Primitive, sizeBytes int, extractable bool, usages []Usage) (*Key, error)

	// ExportRaw exports the raw key material of key. It fails if key is
	// not extractable.
	ExportRaw(key *Key) ([]byte, error)

	// ImportRaw imports raw key material for use with primitive.
	ImportRaw(raw []byte, primitive jwa.Primitive, extractable bool, usages []Usage) (*Key, error)

	// WrapRaw wraps key's raw material under wrappingKey using wrapAlg.
	WrapRaw(key *Key, wrappingKey *Key, wrapAlg jwa.Primitive) ([]byte, error)

	// UnwrapRaw unwraps wrapped under unwrappingKey using wrapAlg,
	// producing a new Key suitable for innerAlg.
	UnwrapRaw(wrapped []byte, unwrappingKey *Key, wrapAlg jwa.Primitive, innerAlg jwa.Primitive, extractable bool, usages []Usage) (*Key, error)

	// Encrypt encrypts plaintext under key per params, returning
	// ciphertext with any authentication tag appended.
	Encrypt(params EncryptParams, key *Key, plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertextWithTag under key per params. For AEAD
	// primitives the provider verifies the tag in constant time before
	// returning plaintext.
	Decrypt(params EncryptParams, key *Key, ciphertextWithTag []byte) ([]byte, error)

	// Sign computes a MAC/signature over data under key using primitive.
	Sign(primitive jwa.Primitive, key *Key, data []byte) ([]byte, error)
}

func unsupportedPrimitive(op string, primitive jwa.Primitive) error {
	return fmt.Errorf("cryptoprovider: %s: unsupported primitive %q", op, string(primitive))
}
