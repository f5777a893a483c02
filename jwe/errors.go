package jwe

import "errors"

// Error taxonomy kinds. A caller classifies a failure with errors.Is
// against one of these sentinels rather than inspecting error strings
// or concrete types; every error this package returns wraps exactly
// one of them.
var (
	// ErrUnsupportedAlgorithm reports an unknown alg/enc identifier,
	// either configured on a Codec or found in a parsed header.
	ErrUnsupportedAlgorithm = errors.New("jwe: unsupported algorithm")

	// ErrMalformedInput reports a structurally invalid compact JWE:
	// wrong segment count, invalid base64url, unparseable header JSON,
	// a "crit" header, missing "alg"/"enc", or an IV/tag length that
	// disagrees with the selected content algorithm.
	ErrMalformedInput = errors.New("jwe: malformed input")

	// ErrMalformedKey is the taxonomy kind for a JWK that is missing a
	// required parameter or declares the wrong kty/alg. No function in
	// this package returns it: the jwk package reports those failures
	// with its own sentinel, jwk.ErrMalformedKey, a distinct value.
	ErrMalformedKey = errors.New("jwe: malformed key")

	// ErrIntegrityFailure reports an AEAD tag or composite MAC that did
	// not verify. No plaintext is ever returned alongside this error.
	ErrIntegrityFailure = errors.New("jwe: integrity failure")

	// ErrCryptoPrimitiveFailure reports an error surfaced by the
	// CryptoProvider itself (e.g. RSA unwrap padding failure) that
	// isn't a taxonomy kind of its own.
	ErrCryptoPrimitiveFailure = errors.New("jwe: crypto primitive failure")

	// ErrInternalInvariant reports a violated length relationship that
	// should be unreachable given the algorithm registry (e.g. a CEK
	// export of the wrong size). Call sites that detect this panic
	// instead of returning it, mirroring how a malformed internal
	// state is treated elsewhere in this codec.
	ErrInternalInvariant = errors.New("jwe: internal invariant violated")
)
