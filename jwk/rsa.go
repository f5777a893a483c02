// Package jwk normalizes and imports RSA key material expressed as
// JWK-shaped parameters. Only the RSA parameters this codec's key
// algorithms need ("n", "e", and, for private keys, "d", "p", "q",
// "dp", "dq", "qi") are handled; PEM/DER parsing and other key types
// are out of scope.
package jwk

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-jwe/jwec/cryptoprovider"
	"github.com/go-jwe/jwec/internal/b64url"
	"github.com/go-jwe/jwec/jwa"
)

// ErrMalformedKey reports that a JWK-shaped input could not be
// normalized or imported: a required parameter is missing, a
// recognized parameter has a shape this package doesn't accept, or
// "kty"/"alg" disagree with what this package handles.
var ErrMalformedKey = errors.New("jwk: malformed key")

var rsaPublicParams = []string{"n", "e"}
var rsaPrivateParams = []string{"n", "e", "d", "p", "q", "dp", "dq", "qi"}

// NormalizeRSAPublicJWK coerces the public RSA parameters of input
// ("n", "e") to canonical base64url strings and returns a new map
// containing just the recognized parameters plus "kty". It accepts
// each parameter as a base64url string, a colon-delimited hex string
// (e.g. "01:00:01"), or, for "e" only, a native/decimal integer.
func NormalizeRSAPublicJWK(input map[string]any) (map[string]any, error) {
	return normalizeRSAJWK(input, rsaPublicParams)
}

// NormalizeRSAPrivateJWK coerces the private RSA parameters of input
// ("n", "e", "d", "p", "q", "dp", "dq", "qi") to canonical base64url
// strings, with the same accepted shapes as NormalizeRSAPublicJWK.
func NormalizeRSAPrivateJWK(input map[string]any) (map[string]any, error) {
	return normalizeRSAJWK(input, rsaPrivateParams)
}

func normalizeRSAJWK(input map[string]any, required []string) (map[string]any, error) {
	if kty, ok := input["kty"]; ok {
		if s, ok := kty.(string); !ok || s != "RSA" {
			return nil, fmt.Errorf("%w: kty must be \"RSA\", got %v", ErrMalformedKey, kty)
		}
	}
	if alg, ok := input["alg"]; ok {
		if s, ok := alg.(string); !ok || s != string(jwa.RSAOAEP) {
			return nil, fmt.Errorf("%w: alg must be %q, got %v", ErrMalformedKey, jwa.RSAOAEP, alg)
		}
	}

	out := map[string]any{"kty": "RSA"}
	for _, name := range required {
		v, ok := input[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing required parameter %q", ErrMalformedKey, name)
		}
		normalized, err := normalizeRSAParam(name, v)
		if err != nil {
			return nil, err
		}
		out[name] = normalized
	}
	return out, nil
}

// normalizeRSAParam coerces one RSA parameter value to a canonical,
// unpadded base64url string, accepting a base64url string, a
// colon-delimited hex string, or (name == "e" only) a native integer.
func normalizeRSAParam(name string, v any) (string, error) {
	switch x := v.(type) {
	case string:
		if strings.Contains(x, ":") {
			raw, err := hexColonDecode(x)
			if err != nil {
				return "", fmt.Errorf("%w: parameter %q: %v", ErrMalformedKey, name, err)
			}
			return b64url.Encode(stripLeadingZeros(raw)), nil
		}
		// already base64url; re-decode/re-encode to canonicalize and
		// to strip any leading zero byte it might carry.
		raw, err := b64url.Decode(name, x)
		if err != nil {
			return "", fmt.Errorf("%w: parameter %q: %v", ErrMalformedKey, name, err)
		}
		return b64url.Encode(stripLeadingZeros(raw)), nil
	case int, int32, int64, uint, uint32, uint64, float64:
		if name != "e" {
			return "", fmt.Errorf("%w: parameter %q: integer form is only accepted for \"e\"", ErrMalformedKey, name)
		}
		n, err := toInt64(x)
		if err != nil {
			return "", fmt.Errorf("%w: parameter %q: %v", ErrMalformedKey, name, err)
		}
		return b64url.Encode(stripLeadingZeros(big.NewInt(n).Bytes())), nil
	default:
		return "", fmt.Errorf("%w: parameter %q: unsupported shape %T", ErrMalformedKey, name, v)
	}
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float64:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("unsupported integer type %T", v)
	}
}

// hexColonDecode decodes a colon-delimited hex string such as "01:00:01".
func hexColonDecode(s string) ([]byte, error) {
	parts := strings.Split(s, ":")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		n, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q: %w", p, err)
		}
		out = append(out, byte(n))
	}
	return out, nil
}

// stripLeadingZeros drops leading 0x00 bytes, matching the minimal
// big-endian form math/big.Int.Bytes() already produces.
func stripLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	return b[i:]
}

// ImportRSAPublicKey normalizes jwk and imports it through provider as
// a wrap-only key for keyAlg (RSA-OAEP or RSA-OAEP-256).
func ImportRSAPublicKey(provider cryptoprovider.Provider, jwk map[string]any, keyAlg jwa.KeyAlgorithm) (*cryptoprovider.Key, error) {
	spec, err := keyAlg.Spec()
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeRSAPublicJWK(jwk)
	if err != nil {
		return nil, err
	}
	key, err := provider.ImportJWK(normalized, spec.Primitive, []cryptoprovider.Usage{cryptoprovider.UsageWrap})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return key, nil
}

// ImportRSAPrivateKey normalizes jwk and imports it through provider as
// an unwrap-only key for keyAlg (RSA-OAEP or RSA-OAEP-256).
func ImportRSAPrivateKey(provider cryptoprovider.Provider, jwk map[string]any, keyAlg jwa.KeyAlgorithm) (*cryptoprovider.Key, error) {
	spec, err := keyAlg.Spec()
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeRSAPrivateJWK(jwk)
	if err != nil {
		return nil, err
	}
	key, err := provider.ImportJWK(normalized, spec.Primitive, []cryptoprovider.Usage{cryptoprovider.UsageUnwrap})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return key, nil
}
