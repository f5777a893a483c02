package jwa

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeyAlgorithm_Spec(t *testing.T) {
	tests := []struct {
		alg  KeyAlgorithm
		want KeySpec
	}{
		{RSAOAEP, KeySpec{Alg: RSAOAEP, JWEName: "RSA-OAEP", Primitive: PrimitiveRSAOAEPSHA1}},
		{RSAOAEP256, KeySpec{Alg: RSAOAEP256, JWEName: "RSA-OAEP-256", Primitive: PrimitiveRSAOAEPSHA256}},
		{A128KW, KeySpec{Alg: A128KW, JWEName: "A128KW", Primitive: PrimitiveAESKW}},
		{A256KW, KeySpec{Alg: A256KW, JWEName: "A256KW", Primitive: PrimitiveAESKW}},
	}
	for _, tt := range tests {
		got, err := tt.alg.Spec()
		if err != nil {
			t.Errorf("%s: %v", tt.alg, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tt.alg, diff)
		}
		if !tt.alg.Available() {
			t.Errorf("%s: want Available() == true", tt.alg)
		}
	}
}

func TestKeyAlgorithm_Spec_unsupported(t *testing.T) {
	if _, err := KeyAlgorithm("bogus").Spec(); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("want ErrUnsupportedAlgorithm, got %v", err)
	}
	if KeyAlgorithm("bogus").Available() {
		t.Error("want Available() == false for an unregistered algorithm")
	}
}

func TestContentAlgorithm_Spec_aead(t *testing.T) {
	for _, alg := range []ContentAlgorithm{A128GCM, A256GCM} {
		spec, err := alg.Spec()
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if !spec.IsAEAD() || spec.IsComposite() {
			t.Errorf("%s: want AEAD spec, got %+v", alg, spec)
		}
		if spec.IVBytes != 12 {
			t.Errorf("%s: want 12-byte IV, got %d", alg, spec.IVBytes)
		}
		if spec.AEAD.TagBytes != 16 {
			t.Errorf("%s: want 16-byte tag, got %d", alg, spec.AEAD.TagBytes)
		}
	}
}

func TestContentAlgorithm_Spec_composite(t *testing.T) {
	for _, alg := range []ContentAlgorithm{A128CBCHS256, A256CBCHS512} {
		spec, err := alg.Spec()
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		if !spec.IsComposite() || spec.IsAEAD() {
			t.Errorf("%s: want composite spec, got %+v", alg, spec)
		}
		if want := spec.Composite.MAC.KeyBytes + spec.KeyBits/8; want != spec.CEKBytes {
			t.Errorf("%s: cek_bytes = %d, want mac.key_bytes + key_bits/8 = %d", alg, spec.CEKBytes, want)
		}
	}
}

// A256CBC-HS512 must carry a populated jwe_name; a prior registry
// omitted it, which would have made the encoded header malformed.
func TestContentAlgorithm_A256CBCHS512_jweName(t *testing.T) {
	spec, err := A256CBCHS512.Spec()
	if err != nil {
		t.Fatal(err)
	}
	if spec.JWEName != "A256CBC-HS512" {
		t.Errorf("want jwe_name %q, got %q", "A256CBC-HS512", spec.JWEName)
	}
}

func TestContentAlgorithm_Spec_unsupported(t *testing.T) {
	if _, err := ContentAlgorithm("bogus").Spec(); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("want ErrUnsupportedAlgorithm, got %v", err)
	}
}
