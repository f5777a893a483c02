package cryptoprovider

import (
	"fmt"

	"github.com/go-jwe/jwec/jwa"
)

// Encrypt dispatches to the content-encryption primitive named by
// params.Primitive. For AES-GCM, the returned bytes are
// ciphertext||tag. For AES-CBC, the returned bytes are the padded
// ciphertext only — the codec computes and appends the MAC itself.
func (p *StdProvider) Encrypt(params EncryptParams, key *Key, plaintext []byte) ([]byte, error) {
	if err := key.requireUsage("encrypt", UsageEncrypt); err != nil {
		return nil, err
	}
	if key.symmetric == nil {
		return nil, fmt.Errorf("cryptoprovider: encrypt: key has no symmetric material")
	}
	switch params.Primitive {
	case jwa.PrimitiveAESGCM:
		return encryptAESGCM(key.symmetric, params.IV, params.AAD, plaintext)
	case jwa.PrimitiveAESCBC:
		return encryptAESCBC(key.symmetric, params.IV, plaintext)
	default:
		return nil, unsupportedPrimitive("encrypt", params.Primitive)
	}
}

// Decrypt dispatches to the content-decryption primitive named by
// params.Primitive. For AES-GCM, ciphertextWithTag must be
// ciphertext||tag and the tag is checked in constant time before
// plaintext is returned. For AES-CBC, ciphertextWithTag is the padded
// ciphertext alone; callers MUST have already verified the composite
// MAC before invoking this, since no authentication happens here.
func (p *StdProvider) Decrypt(params EncryptParams, key *Key, ciphertextWithTag []byte) ([]byte, error) {
	if err := key.requireUsage("decrypt", UsageDecrypt); err != nil {
		return nil, err
	}
	if key.symmetric == nil {
		return nil, fmt.Errorf("cryptoprovider: decrypt: key has no symmetric material")
	}
	switch params.Primitive {
	case jwa.PrimitiveAESGCM:
		return decryptAESGCM(key.symmetric, params.IV, params.AAD, ciphertextWithTag)
	case jwa.PrimitiveAESCBC:
		return decryptAESCBC(key.symmetric, params.IV, ciphertextWithTag)
	default:
		return nil, unsupportedPrimitive("decrypt", params.Primitive)
	}
}

// WrapRaw wraps key's raw material under wrappingKey using wrapAlg.
//
// Unlike ExportRaw, this does not require key.extractable: wrapping is
// its own permission (granted via wrappingKey's Wrap usage), the same
// way a platform key-management API lets a non-extractable key be
// wrapped for transport while still refusing to hand its raw bytes
// directly to the caller.
func (p *StdProvider) WrapRaw(key *Key, wrappingKey *Key, wrapAlg jwa.Primitive) ([]byte, error) {
	if err := wrappingKey.requireUsage("wrapKey", UsageWrap); err != nil {
		return nil, err
	}
	if key.symmetric == nil {
		return nil, fmt.Errorf("cryptoprovider: wrapRaw: key has no raw material")
	}
	raw := key.symmetric
	switch wrapAlg {
	case jwa.PrimitiveAESKW:
		if wrappingKey.symmetric == nil {
			return nil, fmt.Errorf("cryptoprovider: wrapRaw: wrapping key has no symmetric material")
		}
		return wrapAESKW(wrappingKey.symmetric, raw)
	case jwa.PrimitiveRSAOAEPSHA1, jwa.PrimitiveRSAOAEPSHA256:
		if wrappingKey.rsaPub == nil {
			return nil, fmt.Errorf("cryptoprovider: wrapRaw: wrapping key has no RSA public material")
		}
		return wrapRSAOAEP(wrappingKey.rsaPub, wrapAlg, raw)
	default:
		return nil, unsupportedPrimitive("wrapRaw", wrapAlg)
	}
}

// UnwrapRaw unwraps wrapped under unwrappingKey using wrapAlg, producing
// a new Key bound to innerAlg.
func (p *StdProvider) UnwrapRaw(wrapped []byte, unwrappingKey *Key, wrapAlg jwa.Primitive, innerAlg jwa.Primitive, extractable bool, usages []Usage) (*Key, error) {
	if err := unwrappingKey.requireUsage("unwrapKey", UsageUnwrap); err != nil {
		return nil, err
	}
	var raw []byte
	var err error
	switch wrapAlg {
	case jwa.PrimitiveAESKW:
		if unwrappingKey.symmetric == nil {
			return nil, fmt.Errorf("cryptoprovider: unwrapRaw: unwrapping key has no symmetric material")
		}
		raw, err = unwrapAESKW(unwrappingKey.symmetric, wrapped)
	case jwa.PrimitiveRSAOAEPSHA1, jwa.PrimitiveRSAOAEPSHA256:
		if unwrappingKey.rsaPriv == nil {
			return nil, fmt.Errorf("cryptoprovider: unwrapRaw: unwrapping key has no RSA private material")
		}
		raw, err = unwrapRSAOAEP(unwrappingKey.rsaPriv, wrapAlg, wrapped)
	default:
		return nil, unsupportedPrimitive("unwrapRaw", wrapAlg)
	}
	if err != nil {
		return nil, err
	}
	return &Key{
		primitive:   innerAlg,
		extractable: extractable,
		usages:      newUsageSet(usages),
		symmetric:   raw,
	}, nil
}

// Sign computes an HMAC over data under key using primitive.
func (p *StdProvider) Sign(primitive jwa.Primitive, key *Key, data []byte) ([]byte, error) {
	if err := key.requireUsage("sign", UsageSign); err != nil {
		return nil, err
	}
	if key.symmetric == nil {
		return nil, fmt.Errorf("cryptoprovider: sign: key has no symmetric material")
	}
	return signHMAC(key.symmetric, primitive, data)
}
