package jwe

import (
	"encoding/json"
	"fmt"

	"github.com/go-jwe/jwec/jwa"
)

// Header is the protected JOSE header of a compact JWE. This codec only
// ever emits and consumes "alg" and "enc"; it never sets "typ", "kid",
// "cty", or "zip", and it rejects any header carrying "crit".
type Header struct {
	Alg jwa.KeyAlgorithm
	Enc jwa.ContentAlgorithm
}

// rawHeader is the wire shape of Header, field order fixed to match the
// encoder's stable textual form ({"alg":...,"enc":...}).
type rawHeader struct {
	Alg string `json:"alg"`
	Enc string `json:"enc"`
}

// MarshalJSON renders h as the stable two-field object the compact
// encoder's AAD is computed over.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawHeader{Alg: string(h.Alg), Enc: string(h.Enc)})
}

// parseHeader decodes the protected header bytes of a compact JWE. It
// rejects any header carrying "crit", and requires non-empty "alg" and
// "enc" string fields; every other header parameter is ignored.
func parseHeader(data []byte) (Header, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(data, &generic); err != nil {
		return Header{}, fmt.Errorf("%w: invalid header JSON: %v", ErrMalformedInput, err)
	}
	if _, ok := generic["crit"]; ok {
		return Header{}, fmt.Errorf("%w: \"crit\" is not supported", ErrMalformedInput)
	}

	algRaw, ok := generic["alg"]
	if !ok {
		return Header{}, fmt.Errorf("%w: header is missing \"alg\"", ErrMalformedInput)
	}
	encRaw, ok := generic["enc"]
	if !ok {
		return Header{}, fmt.Errorf("%w: header is missing \"enc\"", ErrMalformedInput)
	}

	var alg, enc string
	if err := json.Unmarshal(algRaw, &alg); err != nil || alg == "" {
		return Header{}, fmt.Errorf("%w: \"alg\" must be a non-empty string", ErrMalformedInput)
	}
	if err := json.Unmarshal(encRaw, &enc); err != nil || enc == "" {
		return Header{}, fmt.Errorf("%w: \"enc\" must be a non-empty string", ErrMalformedInput)
	}

	return Header{Alg: jwa.KeyAlgorithm(alg), Enc: jwa.ContentAlgorithm(enc)}, nil
}
