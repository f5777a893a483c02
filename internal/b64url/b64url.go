// Package b64url provides the base64url (unpadded) codec and the
// big-endian length framing used throughout the JWE compact
// serialization and its composite-algorithm MAC input.
package b64url

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the unpadded base64url encoding of src, as required by
// RFC 7515 Appendix C / RFC 7518 for every JWE compact segment.
func Encode(src []byte) string {
	return base64.RawURLEncoding.EncodeToString(src)
}

// DecodeError reports a failure to decode one named base64url segment.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("b64url: failed to decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode decodes s, which is named name for error reporting, as
// base64url. It tolerates both the unpadded (RFC 7515) and
// standard-padded forms a lenient decoder may encounter on the wire, and
// the two URL-safe substitutions (`-`/`+`, `_`/`/`) regardless of which
// alphabet the rest of s uses.
func Decode(name, s string) ([]byte, error) {
	s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
	enc := base64.RawURLEncoding
	if len(s)%4 == 0 && len(s) > 0 && (s[len(s)-1] == '=') {
		enc = base64.URLEncoding
	}
	dst, err := enc.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}
	return dst, nil
}

// PutUint64BE appends the 64-bit big-endian encoding of n to dst and
// returns the extended slice. It is used to frame the AAD bit-length
// suffix a composite (AES-CBC + HMAC) MAC input requires.
func PutUint64BE(dst []byte, n uint64) []byte {
	return append(dst,
		byte(n>>56), byte(n>>48), byte(n>>40), byte(n>>32),
		byte(n>>24), byte(n>>16), byte(n>>8), byte(n),
	)
}

// ConstantTimeEqual reports whether a and b hold identical contents,
// in time independent of where the first difference (if any) falls.
// Unequal lengths are reported as unequal in constant time for the
// compared length; callers performing tag verification should still
// treat any length mismatch as a failure before calling this.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
