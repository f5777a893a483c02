package jwe

import (
	"fmt"

	"github.com/go-jwe/jwec/cryptoprovider"
	"github.com/go-jwe/jwec/internal/b64url"
	"github.com/go-jwe/jwec/jwa"
)

// encryptContent runs the content encryption pipeline of spec over
// plaintext under cek and iv, binding aad (the ASCII bytes of the
// base64url-encoded protected header). It returns the ciphertext and
// its authentication tag separately, as the compact serialization
// carries them as distinct segments.
func encryptContent(provider cryptoprovider.Provider, spec jwa.ContentSpec, cek *cryptoprovider.Key, iv, aad, plaintext []byte) (ciphertext, tag []byte, err error) {
	switch {
	case spec.IsAEAD():
		params := cryptoprovider.EncryptParams{Primitive: spec.Primitive, IV: iv, AAD: aad}
		out, err := provider.Encrypt(params, cek, plaintext)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCryptoPrimitiveFailure, err)
		}
		tagBytes := spec.AEAD.TagBytes
		if len(out) < tagBytes {
			panic(fmt.Sprintf("%v: AEAD output is %d bytes, shorter than tag size %d", ErrInternalInvariant, len(out), tagBytes))
		}
		split := len(out) - tagBytes
		return out[:split], out[split:], nil

	case spec.IsComposite():
		encKey, macKey, err := splitCEKForEncrypt(provider, spec, cek)
		if err != nil {
			return nil, nil, err
		}
		params := cryptoprovider.EncryptParams{Primitive: spec.Primitive, IV: iv}
		ciphertext, err = provider.Encrypt(params, encKey, plaintext)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCryptoPrimitiveFailure, err)
		}
		tag, err = computeMAC(provider, spec.Composite.MAC, macKey, aad, iv, ciphertext)
		if err != nil {
			return nil, nil, err
		}
		return ciphertext, tag, nil

	default:
		panic(fmt.Sprintf("%v: content spec %q has neither AEAD nor composite params", ErrInternalInvariant, spec.Alg))
	}
}

// decryptContent is the mirror of encryptContent. For the composite
// path the MAC is recomputed and compared in constant time before AES-CBC
// decryption is ever invoked, so no padding-removal logic runs on
// unauthenticated, attacker-controlled ciphertext: the codec fails
// closed on a MAC mismatch without needing to interleave the tag
// comparison with the cipher step itself.
func decryptContent(provider cryptoprovider.Provider, spec jwa.ContentSpec, cek *cryptoprovider.Key, iv, aad, ciphertext, tag []byte) ([]byte, error) {
	switch {
	case spec.IsAEAD():
		if len(iv) != spec.IVBytes {
			return nil, fmt.Errorf("%w: iv is %d bytes, want %d", ErrMalformedInput, len(iv), spec.IVBytes)
		}
		if len(tag) != spec.AEAD.TagBytes {
			return nil, fmt.Errorf("%w: tag is %d bytes, want %d", ErrMalformedInput, len(tag), spec.AEAD.TagBytes)
		}
		params := cryptoprovider.EncryptParams{Primitive: spec.Primitive, IV: iv, AAD: aad}
		combined := make([]byte, 0, len(ciphertext)+len(tag))
		combined = append(combined, ciphertext...)
		combined = append(combined, tag...)
		plaintext, err := provider.Decrypt(params, cek, combined)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIntegrityFailure, err)
		}
		return plaintext, nil

	case spec.IsComposite():
		mac := spec.Composite.MAC
		if len(iv) != spec.IVBytes {
			return nil, fmt.Errorf("%w: iv is %d bytes, want %d", ErrMalformedInput, len(iv), spec.IVBytes)
		}
		if len(tag) != mac.TruncatedBytes {
			return nil, fmt.Errorf("%w: tag is %d bytes, want %d", ErrMalformedInput, len(tag), mac.TruncatedBytes)
		}

		encKey, macKey, err := splitCEKForDecrypt(provider, spec, cek)
		if err != nil {
			return nil, err
		}

		want, err := computeMAC(provider, mac, macKey, aad, iv, ciphertext)
		if err != nil {
			return nil, err
		}
		if !b64url.ConstantTimeEqual(want, tag) {
			return nil, fmt.Errorf("%w: MAC verification failed", ErrIntegrityFailure)
		}

		params := cryptoprovider.EncryptParams{Primitive: spec.Primitive, IV: iv}
		plaintext, err := provider.Decrypt(params, encKey, ciphertext)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCryptoPrimitiveFailure, err)
		}
		return plaintext, nil

	default:
		panic(fmt.Sprintf("%v: content spec %q has neither AEAD nor composite params", ErrInternalInvariant, spec.Alg))
	}
}

// computeMAC computes HMAC(mac.hmac_hash, macKey, aad || iv || ciphertext || AL)
// and truncates it to mac.TruncatedBytes, where AL is the 64-bit
// big-endian bit-length of aad.
func computeMAC(provider cryptoprovider.Provider, mac jwa.MACParams, macKey *cryptoprovider.Key, aad, iv, ciphertext []byte) ([]byte, error) {
	input := make([]byte, 0, len(aad)+len(iv)+len(ciphertext)+8)
	input = append(input, aad...)
	input = append(input, iv...)
	input = append(input, ciphertext...)
	input = b64url.PutUint64BE(input, uint64(len(aad))*8)

	full, err := provider.Sign(mac.HMACPrimitive, macKey, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoPrimitiveFailure, err)
	}
	if len(full) < mac.TruncatedBytes {
		panic(fmt.Sprintf("%v: MAC output is %d bytes, shorter than truncated size %d", ErrInternalInvariant, len(full), mac.TruncatedBytes))
	}
	return full[:mac.TruncatedBytes], nil
}

// splitCEKForEncrypt splits cek into its ENC and MAC halves for an
// encrypt call, granting the ENC key Encrypt usage and the MAC key Sign
// usage.
func splitCEKForEncrypt(provider cryptoprovider.Provider, spec jwa.ContentSpec, cek *cryptoprovider.Key) (encKey, macKey *cryptoprovider.Key, err error) {
	macKey, encKey, err = splitCEK(provider, spec,
		cek,
		[]cryptoprovider.Usage{cryptoprovider.UsageSign},
		[]cryptoprovider.Usage{cryptoprovider.UsageEncrypt},
	)
	return encKey, macKey, err
}

// splitCEKForDecrypt is splitCEKForEncrypt's decrypt-side counterpart:
// the ENC key is granted Decrypt usage and the MAC key Sign usage (the
// codec itself recomputes and compares the MAC, so the MAC key is never
// used for verification directly; it is only ever used to produce the
// same deterministic tag a compliant encoder would have produced).
func splitCEKForDecrypt(provider cryptoprovider.Provider, spec jwa.ContentSpec, cek *cryptoprovider.Key) (encKey, macKey *cryptoprovider.Key, err error) {
	macKey, encKey, err = splitCEK(provider, spec,
		cek,
		[]cryptoprovider.Usage{cryptoprovider.UsageSign},
		[]cryptoprovider.Usage{cryptoprovider.UsageDecrypt},
	)
	return encKey, macKey, err
}
