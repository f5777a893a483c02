package cryptoprovider

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// encryptAESGCM seals plaintext under key/iv/aad using AES-GCM.
func encryptAESGCM(key, iv, aad, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aesgcm: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aesgcm: %w", err)
	}
	if len(iv) != aead.NonceSize() {
		return nil, fmt.Errorf("cryptoprovider: aesgcm: invalid iv size: %d", len(iv))
	}
	// Seal appends the tag to the ciphertext, matching the
	// ciphertext||tag layout decryptAESGCM expects back.
	return aead.Seal(nil, iv, plaintext, aad), nil
}

// decryptAESGCM implements the AES-GCM content-decryption primitive.
// ciphertextWithTag is ciphertext with the authentication tag appended;
// aead.Open performs the tag check in constant time and fails closed.
func decryptAESGCM(key, iv, aad, ciphertextWithTag []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aesgcm: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aesgcm: %w", err)
	}
	if len(iv) != aead.NonceSize() {
		return nil, fmt.Errorf("cryptoprovider: aesgcm: invalid iv size: %d", len(iv))
	}
	plaintext, err := aead.Open(nil, iv, ciphertextWithTag, aad)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aesgcm: %w", err)
	}
	return plaintext, nil
}
