package cryptoprovider

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/go-jwe/jwec/jwa"
)

func hmacHash(primitive jwa.Primitive) (crypto.Hash, error) {
	switch primitive {
	case jwa.PrimitiveHMACSHA256:
		return crypto.SHA256, nil
	case jwa.PrimitiveHMACSHA512:
		return crypto.SHA512, nil
	default:
		return 0, unsupportedPrimitive("sign", primitive)
	}
}

func signHMAC(key []byte, primitive jwa.Primitive, data []byte) ([]byte, error) {
	h, err := hmacHash(primitive)
	if err != nil {
		return nil, err
	}
	w := hmac.New(h.New, key)
	w.Write(data)
	return w.Sum(nil), nil
}
