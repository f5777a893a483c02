package cryptoprovider

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// encryptAESCBC PKCS#7-pads plaintext and encrypts it under AES-CBC. It
// is the cipher half only of the composite (AES-CBC + HMAC) content
// algorithms; MAC assembly, truncation, and comparison are the codec's
// responsibility (spec: "composite MAC comparison is the codec's"), not
// this provider's.
func encryptAESCBC(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aescbc: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("cryptoprovider: aescbc: invalid iv size: %d", len(iv))
	}
	size := block.BlockSize()
	ciphertext := pkcs7Pad(plaintext, size)
	mode := cipher.NewCBCEncrypter(block, iv)
	for i := 0; i <= len(ciphertext)-size; i += size {
		mode.CryptBlocks(ciphertext[i:i+size], ciphertext[i:i+size])
	}
	return ciphertext, nil
}

// decryptAESCBC decrypts ciphertext under AES-CBC and removes its
// PKCS#7 padding in constant time. It does not check any MAC.
func decryptAESCBC(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptoprovider: aescbc: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("cryptoprovider: aescbc: invalid iv size: %d", len(iv))
	}
	size := block.BlockSize()
	if len(ciphertext)%size != 0 || len(ciphertext) == 0 {
		return nil, fmt.Errorf("cryptoprovider: aescbc: invalid ciphertext size: %d", len(ciphertext))
	}
	plaintext := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	for i := 0; i <= len(ciphertext)-size; i += size {
		mode.CryptBlocks(plaintext[i:i+size], ciphertext[i:i+size])
	}
	toRemove, good := extractPadding(plaintext)
	if good != 0xff {
		return nil, fmt.Errorf("cryptoprovider: aescbc: invalid padding")
	}
	return plaintext[:len(plaintext)-toRemove], nil
}

// extractPadding returns, in constant time, the length of the PKCS#7
// padding to remove from the end of payload, and a byte equal to 0xff
// if the padding was well-formed or 0 otherwise.
//
// ref. https://github.com/golang/go/blob/ebaa5ff39ee4046f7f94bf34a6e05702286b08d2/src/crypto/tls/conn.go#L269-L317
func extractPadding(payload []byte) (toRemove int, good byte) {
	if len(payload) < 1 {
		return 0, 0
	}

	paddingLen := payload[len(payload)-1]
	t := uint(len(payload)) - uint(paddingLen)
	good = byte(int32(^t) >> 31)

	toCheck := 256
	if toCheck > len(payload) {
		toCheck = len(payload)
	}

	for i := 1; i <= toCheck; i++ {
		t := uint(paddingLen) - uint(i)
		mask := byte(int32(^t) >> 31)
		b := payload[len(payload)-i]
		good &^= mask&paddingLen ^ mask&b
	}

	good &= good << 4
	good &= good << 2
	good &= good << 1
	good = uint8(int8(good) >> 7)

	paddingLen &= good
	toRemove = int(paddingLen)
	return
}

func pkcs7Pad(data []byte, size int) []byte {
	l := len(data)
	paddingLen := size - (l % size)
	pad := byte(paddingLen)
	l += paddingLen
	ret := make([]byte, l)
	copy(ret, data)
	for i := len(data); i < l; i++ {
		ret[i] = pad
	}
	return ret
}
