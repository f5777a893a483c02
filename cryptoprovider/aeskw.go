package cryptoprovider

import (
	"crypto/aes"
	"crypto/subtle"
	"fmt"
)

// aesKWDefaultIV is the default initial value from RFC 3394 Section
// 2.2.3.1.
var aesKWDefaultIV = []byte{0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6}

const aesKWChunkLen = 8

// wrapAESKW wraps cek under kek using the AES Key Wrap algorithm
// defined in RFC 3394.
func wrapAESKW(kek, cek []byte) ([]byte, error) {
	if len(cek)%aesKWChunkLen != 0 || len(cek) == 0 {
		return nil, fmt.Errorf("cryptoprovider: aeskw: invalid cek length: %d", len(cek))
	}
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aeskw: %w", err)
	}

	n := len(cek) / aesKWChunkLen
	buf := make([]byte, len(cek)+aesKWChunkLen*2)
	r := buf[aesKWChunkLen*2:]
	copy(r, cek)

	a := buf[:aesKWChunkLen]
	b := buf[aesKWChunkLen : aesKWChunkLen*2]
	ab := buf[:aesKWChunkLen*2]
	copy(a, aesKWDefaultIV)
	for t := 0; t < 6*n; t++ {
		copy(b, r[(t%n)*aesKWChunkLen:])
		block.Encrypt(ab, ab)

		u := t + 1
		a[0] ^= byte(u >> 56)
		a[1] ^= byte(u >> 48)
		a[2] ^= byte(u >> 40)
		a[3] ^= byte(u >> 32)
		a[4] ^= byte(u >> 24)
		a[5] ^= byte(u >> 16)
		a[6] ^= byte(u >> 8)
		a[7] ^= byte(u)

		copy(r[(t%n)*aesKWChunkLen:], b)
	}

	copy(b, a)
	return buf[aesKWChunkLen:], nil
}

// unwrapAESKW unwraps wrapped under kek using the AES Key Wrap algorithm
// defined in RFC 3394.
func unwrapAESKW(kek, wrapped []byte) ([]byte, error) {
	if len(wrapped)%aesKWChunkLen != 0 || len(wrapped) < aesKWChunkLen*2 {
		return nil, fmt.Errorf("cryptoprovider: aeskw: invalid wrapped length: %d", len(wrapped))
	}
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aeskw: %w", err)
	}

	n := (len(wrapped) / aesKWChunkLen) - 1
	buf := make([]byte, len(wrapped)+aesKWChunkLen)
	r := buf[aesKWChunkLen*2:]
	copy(r, wrapped[aesKWChunkLen:])

	a := buf[:aesKWChunkLen]
	b := buf[aesKWChunkLen : aesKWChunkLen*2]
	ab := buf[:aesKWChunkLen*2]
	copy(a, wrapped)
	for t := 0; t < 6*n; t++ {
		u := 6*n - t
		a[0] ^= byte(u >> 56)
		a[1] ^= byte(u >> 48)
		a[2] ^= byte(u >> 40)
		a[3] ^= byte(u >> 32)
		a[4] ^= byte(u >> 24)
		a[5] ^= byte(u >> 16)
		a[6] ^= byte(u >> 8)
		a[7] ^= byte(u)

		copy(b, r[((u-1)%n)*aesKWChunkLen:])
		block.Decrypt(ab, ab)
		copy(r[((u-1)%n)*aesKWChunkLen:], b)
	}

	if subtle.ConstantTimeCompare(a, aesKWDefaultIV) == 0 {
		return nil, fmt.Errorf("cryptoprovider: aeskw: failed to unwrap key")
	}

	return buf[aesKWChunkLen*2:], nil
}
