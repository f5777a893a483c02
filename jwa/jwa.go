// Package jwa implements the algorithm registry for RFC 7518 as used by
// a JSON Web Encryption (RFC 7516) compact-serialization codec.
//
// It is a closed set: only the algorithms a JWE compact codec needs are
// registered. Unknown or unregistered identifiers are reported through
// ErrUnsupportedAlgorithm rather than silently accepted.
package jwa

import (
	"crypto"
	"errors"
	"fmt"
)

// ErrUnsupportedAlgorithm is returned by KeyAlgorithm.Spec and
// ContentAlgorithm.Spec when the requested algorithm identifier is not
// in the registry.
var ErrUnsupportedAlgorithm = errors.New("jwa: unsupported algorithm")

// KeyAlgorithm identifies a JWE key-management ("alg") algorithm.
type KeyAlgorithm string

const (
	KeyAlgorithmUnknown KeyAlgorithm = ""

	// RSAOAEP is RSAES using Optimal Asymmetric Encryption Padding
	// with SHA-1 and MGF1 with SHA-1, defined in RFC 7518 Section 4.3.
	RSAOAEP KeyAlgorithm = "RSA-OAEP"

	// RSAOAEP256 is RSAES OAEP using SHA-256 and MGF1 with SHA-256,
	// defined in RFC 7518 Section 4.3.
	RSAOAEP256 KeyAlgorithm = "RSA-OAEP-256"

	// A128KW is AES Key Wrap with a 128-bit key, defined in RFC 7518
	// Section 4.4.
	A128KW KeyAlgorithm = "A128KW"

	// A256KW is AES Key Wrap with a 256-bit key, defined in RFC 7518
	// Section 4.4.
	A256KW KeyAlgorithm = "A256KW"
)

func (alg KeyAlgorithm) String() string {
	if alg == KeyAlgorithmUnknown {
		return "(unknown)"
	}
	return string(alg)
}

// ContentAlgorithm identifies a JWE content-encryption ("enc") algorithm.
type ContentAlgorithm string

const (
	ContentAlgorithmUnknown ContentAlgorithm = ""

	// A128CBCHS256 is AES_128_CBC_HMAC_SHA_256, defined in RFC 7518
	// Section 5.2.3.
	A128CBCHS256 ContentAlgorithm = "A128CBC-HS256"

	// A256CBCHS512 is AES_256_CBC_HMAC_SHA_512, defined in RFC 7518
	// Section 5.2.5.
	A256CBCHS512 ContentAlgorithm = "A256CBC-HS512"

	// A128GCM is AES GCM with a 128-bit key, defined in RFC 7518
	// Section 5.3.
	A128GCM ContentAlgorithm = "A128GCM"

	// A256GCM is AES GCM with a 256-bit key, defined in RFC 7518
	// Section 5.3.
	A256GCM ContentAlgorithm = "A256GCM"
)

func (enc ContentAlgorithm) String() string {
	if enc == ContentAlgorithmUnknown {
		return "(unknown)"
	}
	return string(enc)
}

// Primitive names the underlying crypto primitive a CryptoProvider must
// supply to realize a KeyAlgorithm or ContentAlgorithm. It is a smaller,
// closed vocabulary than the JOSE algorithm identifiers themselves: two
// content algorithms (A128CBC-HS256, A256CBC-HS512) both bottom out in
// the AES-CBC/HMAC primitives, just at different key sizes.
type Primitive string

const (
	PrimitiveRSAOAEPSHA1   Primitive = "RSA-OAEP-SHA1"
	PrimitiveRSAOAEPSHA256 Primitive = "RSA-OAEP-SHA256"
	PrimitiveAESKW         Primitive = "AES-KW"
	PrimitiveAESCBC        Primitive = "AES-CBC"
	PrimitiveAESGCM        Primitive = "AES-GCM"
	PrimitiveHMACSHA256    Primitive = "HMAC-SHA256"
	PrimitiveHMACSHA512    Primitive = "HMAC-SHA512"
)

// KeySpec carries the parameters needed to wrap/unwrap a CEK under a
// KeyAlgorithm.
type KeySpec struct {
	Alg       KeyAlgorithm
	JWEName   string
	Primitive Primitive
}

var keyRegistry = map[KeyAlgorithm]KeySpec{
	RSAOAEP: {
		Alg:       RSAOAEP,
		JWEName:   string(RSAOAEP),
		Primitive: PrimitiveRSAOAEPSHA1,
	},
	RSAOAEP256: {
		Alg:       RSAOAEP256,
		JWEName:   string(RSAOAEP256),
		Primitive: PrimitiveRSAOAEPSHA256,
	},
	A128KW: {
		Alg:       A128KW,
		JWEName:   string(A128KW),
		Primitive: PrimitiveAESKW,
	},
	A256KW: {
		Alg:       A256KW,
		JWEName:   string(A256KW),
		Primitive: PrimitiveAESKW,
	},
}

// Spec looks up the KeySpec for alg. It returns ErrUnsupportedAlgorithm
// wrapped with the offending identifier if alg is not registered.
func (alg KeyAlgorithm) Spec() (KeySpec, error) {
	spec, ok := keyRegistry[alg]
	if !ok {
		return KeySpec{}, fmt.Errorf("jwa: key algorithm %q: %w", string(alg), ErrUnsupportedAlgorithm)
	}
	return spec, nil
}

// Available reports whether alg is registered.
func (alg KeyAlgorithm) Available() bool {
	_, ok := keyRegistry[alg]
	return ok
}

// MACParams describes the HMAC half of a composite (Encrypt-then-MAC)
// content-encryption algorithm.
type MACParams struct {
	KeyBytes       int
	Hash           crypto.Hash
	HMACPrimitive  Primitive
	TruncatedBytes int
}

// AEADParams describes an authenticated-encryption content algorithm
// (AES-GCM) that needs no separate MAC step.
type AEADParams struct {
	TagBytes int
}

// CompositeParams describes an encrypt-then-MAC content algorithm
// (AES-CBC + HMAC-SHA2).
type CompositeParams struct {
	MAC MACParams
}

// ContentSpec is a closed sum type over the two content-encryption
// shapes this codec supports: AEAD xor Composite is always set, never
// both, so call sites never need an "undefined" sentinel check for the
// other family's fields.
type ContentSpec struct {
	Alg       ContentAlgorithm
	JWEName   string
	Primitive Primitive
	KeyBits   int
	IVBytes   int
	CEKBytes  int

	AEAD      *AEADParams
	Composite *CompositeParams
}

var contentRegistry = map[ContentAlgorithm]ContentSpec{
	A128CBCHS256: {
		Alg:       A128CBCHS256,
		JWEName:   string(A128CBCHS256),
		Primitive: PrimitiveAESCBC,
		KeyBits:   128,
		IVBytes:   16,
		CEKBytes:  32,
		Composite: &CompositeParams{
			MAC: MACParams{
				KeyBytes:       16,
				Hash:           crypto.SHA256,
				HMACPrimitive:  PrimitiveHMACSHA256,
				TruncatedBytes: 16,
			},
		},
	},
	A256CBCHS512: {
		Alg: A256CBCHS512,
		// the value this registry is descended from left jwe_name
		// empty for this algorithm; it must be populated for the
		// encoded header to be well-formed.
		JWEName:   string(A256CBCHS512),
		Primitive: PrimitiveAESCBC,
		KeyBits:   256,
		IVBytes:   16,
		CEKBytes:  64,
		Composite: &CompositeParams{
			MAC: MACParams{
				KeyBytes:       32,
				Hash:           crypto.SHA512,
				HMACPrimitive:  PrimitiveHMACSHA512,
				TruncatedBytes: 32,
			},
		},
	},
	A128GCM: {
		Alg:       A128GCM,
		JWEName:   string(A128GCM),
		Primitive: PrimitiveAESGCM,
		KeyBits:   128,
		IVBytes:   12,
		CEKBytes:  16,
		AEAD:      &AEADParams{TagBytes: 16},
	},
	A256GCM: {
		Alg:       A256GCM,
		JWEName:   string(A256GCM),
		Primitive: PrimitiveAESGCM,
		KeyBits:   256,
		IVBytes:   12,
		CEKBytes:  32,
		AEAD:      &AEADParams{TagBytes: 16},
	},
}

// Spec looks up the ContentSpec for enc. It returns
// ErrUnsupportedAlgorithm wrapped with the offending identifier if enc
// is not registered.
func (enc ContentAlgorithm) Spec() (ContentSpec, error) {
	spec, ok := contentRegistry[enc]
	if !ok {
		return ContentSpec{}, fmt.Errorf("jwa: content algorithm %q: %w", string(enc), ErrUnsupportedAlgorithm)
	}
	return spec, nil
}

// Available reports whether enc is registered.
func (enc ContentAlgorithm) Available() bool {
	_, ok := contentRegistry[enc]
	return ok
}

// IsComposite reports whether spec describes an encrypt-then-MAC
// algorithm (AES-CBC + HMAC-SHA2).
func (spec ContentSpec) IsComposite() bool {
	return spec.Composite != nil
}

// IsAEAD reports whether spec describes an authenticated-encryption
// algorithm (AES-GCM).
func (spec ContentSpec) IsAEAD() bool {
	return spec.AEAD != nil
}
