// Package jwe implements encryption and decryption of the JSON Web
// Encryption (RFC 7516) Compact Serialization, consuming a
// cryptoprovider.Provider for every raw cryptographic operation.
package jwe

import (
	"fmt"
	"strings"

	"github.com/go-jwe/jwec/cryptoprovider"
	"github.com/go-jwe/jwec/internal/b64url"
	"github.com/go-jwe/jwec/jwa"
)

// Codec encrypts and decrypts compact JWEs for one key-management and
// one content-encryption algorithm pair. The pair is set at
// construction for Encrypt, and is overwritten from the parsed
// protected header at the start of every Decrypt call — a Codec is
// scoped to one call at a time and must not be shared across
// concurrent Decrypt calls without external synchronization.
type Codec struct {
	provider   cryptoprovider.Provider
	keyAlg     jwa.KeyAlgorithm
	contentAlg jwa.ContentAlgorithm
}

// NewCodec returns a Codec that uses provider for every primitive
// operation, initially configured for keyAlg/contentAlg.
func NewCodec(provider cryptoprovider.Provider, keyAlg jwa.KeyAlgorithm, contentAlg jwa.ContentAlgorithm) *Codec {
	return &Codec{provider: provider, keyAlg: keyAlg, contentAlg: contentAlg}
}

// SetKeyAlgorithm changes the key-management algorithm Encrypt uses.
func (c *Codec) SetKeyAlgorithm(alg jwa.KeyAlgorithm) {
	c.keyAlg = alg
}

// SetContentAlgorithm changes the content-encryption algorithm Encrypt
// uses.
func (c *Codec) SetContentAlgorithm(enc jwa.ContentAlgorithm) {
	c.contentAlg = enc
}

// Encrypt produces a compact-serialized JWE of plaintext, wrapping a
// freshly generated CEK under wrappingKey.
//
//  1. Generate CEK and IV.
//  2. Build the protected header and its base64url encoding, which
//     doubles as the AAD for content encryption.
//  3. Wrap the CEK under wrappingKey.
//  4. Run the content encryption pipeline.
//  5. Join the five segments with ".".
func (c *Codec) Encrypt(wrappingKey *cryptoprovider.Key, plaintext []byte) (string, error) {
	keySpec, err := c.keyAlg.Spec()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, err)
	}
	contentSpec, err := c.contentAlg.Spec()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, err)
	}

	cekUsages := []cryptoprovider.Usage{cryptoprovider.UsageEncrypt}
	cek, err := generateCEK(c.provider, contentSpec, cekUsages)
	if err != nil {
		return "", err
	}
	iv, err := generateIV(c.provider, contentSpec)
	if err != nil {
		return "", err
	}

	header := Header{Alg: c.keyAlg, Enc: c.contentAlg}
	headerJSON, err := header.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: encode header: %v", ErrInternalInvariant, err)
	}
	headerB64 := b64url.Encode(headerJSON)
	aad := []byte(headerB64)

	encryptedCEK, err := c.provider.WrapRaw(cek, wrappingKey, keySpec.Primitive)
	if err != nil {
		return "", fmt.Errorf("%w: wrap CEK: %v", ErrCryptoPrimitiveFailure, err)
	}

	ciphertext, tag, err := encryptContent(c.provider, contentSpec, cek, iv, aad, plaintext)
	if err != nil {
		return "", err
	}

	segments := []string{
		headerB64,
		b64url.Encode(encryptedCEK),
		b64url.Encode(iv),
		b64url.Encode(ciphertext),
		b64url.Encode(tag),
	}
	return strings.Join(segments, "."), nil
}

// Decrypt parses and decrypts a compact-serialized JWE, unwrapping its
// CEK under unwrappingKey.
//
// The operation moves through a fixed sequence of states — Start,
// HeaderParsed, CekUnwrapped, MacVerified, Plaintext — aborting on the
// first failure at whichever state it occurs in; no partial output is
// ever returned.
func (c *Codec) Decrypt(unwrappingKey *cryptoprovider.Key, compact string) ([]byte, error) {
	// Start: split into exactly five non-empty segments.
	segments := strings.Split(compact, ".")
	if len(segments) != 5 {
		return nil, fmt.Errorf("%w: want 5 segments, got %d", ErrMalformedInput, len(segments))
	}
	for i, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: segment %d is empty", ErrMalformedInput, i)
		}
	}
	headerB64, encryptedCEKB64, ivB64, ciphertextB64, tagB64 := segments[0], segments[1], segments[2], segments[3], segments[4]

	// HeaderParsed: decode and parse the protected header, then
	// reconfigure the codec's selected algorithms from it.
	headerJSON, err := b64url.Decode("protected header", headerB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	header, err := parseHeader(headerJSON)
	if err != nil {
		return nil, err
	}
	c.keyAlg = header.Alg
	c.contentAlg = header.Enc

	keySpec, err := c.keyAlg.Spec()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, err)
	}
	contentSpec, err := c.contentAlg.Spec()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, err)
	}

	encryptedCEK, err := b64url.Decode("encrypted key", encryptedCEKB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	iv, err := b64url.Decode("iv", ivB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	ciphertext, err := b64url.Decode("ciphertext", ciphertextB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	tag, err := b64url.Decode("tag", tagB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	// CekUnwrapped: unwrap the CEK. Composite algorithms re-import it
	// extractable so splitCEK can export and split it below; AEAD
	// algorithms keep it non-extractable.
	var cek *cryptoprovider.Key
	if contentSpec.IsComposite() {
		cek, err = c.provider.UnwrapRaw(encryptedCEK, unwrappingKey, keySpec.Primitive, contentSpec.Primitive, true, nil)
	} else {
		cek, err = c.provider.UnwrapRaw(encryptedCEK, unwrappingKey, keySpec.Primitive, contentSpec.Primitive, false, []cryptoprovider.Usage{cryptoprovider.UsageDecrypt})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap CEK: %v", ErrCryptoPrimitiveFailure, err)
	}

	// MacVerified / Plaintext: run the decryption pipeline. For the
	// composite path this verifies the MAC before any AES-CBC
	// decryption happens.
	aad := []byte(headerB64)
	plaintext, err := decryptContent(c.provider, contentSpec, cek, iv, aad, ciphertext, tag)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}
