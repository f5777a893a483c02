package jwe

import (
	"fmt"

	"github.com/go-jwe/jwec/cryptoprovider"
	"github.com/go-jwe/jwec/jwa"
)

// generateCEK produces a fresh content encryption key for spec.
//
// For AEAD algorithms the key is generated directly under the real
// primitive and marked non-extractable. For composite algorithms the
// key is generated extractable, since splitCEK must export it into its
// MAC and ENC halves immediately afterward; the provider's GenerateKey
// already takes an explicit byte length, so no placeholder-algorithm
// workaround is needed here.
func generateCEK(provider cryptoprovider.Provider, spec jwa.ContentSpec, usages []cryptoprovider.Usage) (*cryptoprovider.Key, error) {
	switch {
	case spec.IsAEAD():
		key, err := provider.GenerateKey(spec.Primitive, spec.CEKBytes, false, usages)
		if err != nil {
			return nil, fmt.Errorf("%w: generate CEK: %v", ErrCryptoPrimitiveFailure, err)
		}
		return key, nil
	case spec.IsComposite():
		key, err := provider.GenerateKey(spec.Primitive, spec.CEKBytes, true, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: generate CEK: %v", ErrCryptoPrimitiveFailure, err)
		}
		return key, nil
	default:
		panic(fmt.Sprintf("%v: content spec %q has neither AEAD nor composite params", ErrInternalInvariant, spec.Alg))
	}
}

// generateIV draws spec.IVBytes cryptographically random bytes.
func generateIV(provider cryptoprovider.Provider, spec jwa.ContentSpec) ([]byte, error) {
	iv, err := provider.Random(spec.IVBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: generate IV: %v", ErrCryptoPrimitiveFailure, err)
	}
	return iv, nil
}

// splitCEK exports cek's raw material and splits it into the MAC key
// (the first mac.key_bytes bytes) and the ENC key (the remainder),
// per RFC 7518 Section 5.2's fixed byte ordering. The raw export buffer
// is zeroed before this function returns.
func splitCEK(provider cryptoprovider.Provider, spec jwa.ContentSpec, cek *cryptoprovider.Key, macUsages, encUsages []cryptoprovider.Usage) (macKey, encKey *cryptoprovider.Key, err error) {
	if spec.Composite == nil {
		panic(fmt.Sprintf("%v: splitCEK called on non-composite content spec %q", ErrInternalInvariant, spec.Alg))
	}
	mac := spec.Composite.MAC

	raw, err := provider.ExportRaw(cek)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: export CEK for split: %v", ErrCryptoPrimitiveFailure, err)
	}
	defer zero(raw)

	if len(raw) != spec.CEKBytes {
		panic(fmt.Sprintf("%v: CEK is %d bytes, want %d for %q", ErrInternalInvariant, len(raw), spec.CEKBytes, spec.Alg))
	}

	macKey, err = provider.ImportRaw(raw[:mac.KeyBytes], mac.HMACPrimitive, false, macUsages)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: import MAC key: %v", ErrCryptoPrimitiveFailure, err)
	}
	encKey, err = provider.ImportRaw(raw[mac.KeyBytes:], spec.Primitive, false, encUsages)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: import ENC key: %v", ErrCryptoPrimitiveFailure, err)
	}
	return macKey, encKey, nil
}

// zero overwrites b's contents. Used to scrub CEK and MAC-key buffers
// once they have been imported under their real primitives.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
