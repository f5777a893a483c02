package jwe

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-jwe/jwec/cryptoprovider"
	"github.com/go-jwe/jwec/internal/b64url"
	"github.com/go-jwe/jwec/jwa"
	"github.com/go-jwe/jwec/jwk"
)

// RFC 7516 Appendix A.1 key material.
func rsaTestKeyJWK() map[string]any {
	return map[string]any{
		"kty": "RSA",
		"n": "oahUIoWw0K0usKNuOR6H4wkf4oBUXHTxRvgb48E-BVvxkeDNjbC4he8rUW" +
			"cJoZmds2h7M70imEVhRU5djINXtqllXI4DFqcI1DgjT9LewND8MW2Krf3S" +
			"psk_ZkoFnilakGygTwpZ3uesH-PFABNIUYpOiN15dsQRkgr0vEhxN92i2a" +
			"sbOenSZeyaxziK72UwxrrKoExv6kc5twXTq4h-QChLOln0_mtUZwfsRaMS" +
			"tPs6mS6XrgxnxbWhojf663tuEQueGC-FCMfra36C9knDFGzKsNa7LZK2dj" +
			"YgyD3JR_MB_4NUJW_TqOQtwHYbxevoJArm-L5StowjzGy-_bq6Gw",
		"e": "AQAB",
		"d": "kLdtIj6GbDks_ApCSTYQtelcNttlKiOyPzMrXHeI-yk1F7-kpDxY4-WY5N" +
			"WV5KntaEeXS1j82E375xxhWMHXyvjYecPT9fpwR_M9gV8n9Hrh2anTpTD9" +
			"3Dt62ypW3yDsJzBnTnrYu1iwWRgBKrEYY46qAZIrA2xAwnm2X7uGR1hghk" +
			"qDp0Vqj3kbSCz1XyfCs6_LehBwtxHIyh8Ripy40p24moOAbgxVw3rxT_vl" +
			"t3UVe4WO3JkJOzlpUf-KTVI2Ptgm-dARxTEtE-id-4OJr0h-K-VFs3VSnd" +
			"VTIznSxfyrj8ILL6MG_Uv8YAu7VILSB3lOW085-4qE3DzgrTjgyQ",
		"p": "1r52Xk46c-LsfB5P442p7atdPUrxQSy4mti_tZI3Mgf2EuFVbUoDBvaRQ-" +
			"SWxkbkmoEzL7JXroSBjSrK3YIQgYdMgyAEPTPjXv_hI2_1eTSPVZfzL0lf" +
			"fNn03IXqWF5MDFuoUYE0hzb2vhrlN_rKrbfDIwUbTrjjgieRbwC6Cl0",
		"q": "wLb35x7hmQWZsWJmB_vle87ihgZ19S8lBEROLIsZG4ayZVe9Hi9gDVCOBm" +
			"UDdaDYVTSNx_8Fyw1YYa9XGrGnDew00J28cRUoeBB_jKI1oma0Orv1T9aX" +
			"IWxKwd4gvxFImOWr3QRL9KEBRzk2RatUBnmDZJTIAfwTs0g68UZHvtc",
		"dp": "ZK-YwE7diUh0qR1tR7w8WHtolDx3MZ_OTowiFvgfeQ3SiresXjm9gZ5KLh" +
			"MXvo-uz-KUJWDxS5pFQ_M0evdo1dKiRTjVw_x4NyqyXPM5nULPkcpU827r" +
			"npZzAJKpdhWAgqrXGKAECQH0Xt4taznjnd_zVpAmZZq60WPMBMfKcuE",
		"dq": "Dq0gfgJ1DdFGXiLvQEZnuKEN0UUmsJBxkjydc3j4ZYdBiMRAy86x0vHCjy" +
			"wcMlYYg4yoC4YZa9hNVcsjqA3FeiL19rk8g6Qn29Tt0cj8qqyFpz9vNDBU" +
			"fCAiJVeESOjJDZPYHdHY8v1b-o-Z2X5tvLx-TCekf7oxyeKDUqKWjis",
		"qi": "VIMpMYbPf47dT1w_zDUXfPimsSegnMOA1zTaX7aGk_8urY6R8-ZW1FxU7A" +
			"lWAyLWybqq6t16VFd7hQd0y6flUK4SlOydB61gwanOsXGOAOv82cHq0E3e" +
			"L4HrtZkUuKvnPrMnsUUFlfUdybVzxyjz9JF_XyaY14ardLSjf4L_FNY",
	}
}

func TestCodec_RSAOAEP_A256GCM_roundtrip(t *testing.T) {
	p := cryptoprovider.NewStdProvider()
	jwkData := rsaTestKeyJWK()
	pub, err := jwk.ImportRSAPublicKey(p, jwkData, jwa.RSAOAEP)
	if err != nil {
		t.Fatal(err)
	}
	priv, err := jwk.ImportRSAPrivateKey(p, jwkData, jwa.RSAOAEP)
	if err != nil {
		t.Fatal(err)
	}

	codec := NewCodec(p, jwa.RSAOAEP, jwa.A256GCM)
	plaintext := []byte("Hello, World!")
	compact, err := codec.Encrypt(pub, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	segments := strings.Split(compact, ".")
	if len(segments) != 5 {
		t.Fatalf("want 5 segments, got %d", len(segments))
	}
	headerJSON, err := b64url.Decode("header", segments[0])
	if err != nil {
		t.Fatal(err)
	}
	var header map[string]string
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		t.Fatal(err)
	}
	if header["alg"] != "RSA-OAEP" || header["enc"] != "A256GCM" {
		t.Errorf("unexpected header: %v", header)
	}

	decodeCodec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)
	got, err := decodeCodec.Decrypt(priv, compact)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("want %q, got %q", plaintext, got)
	}
}

func TestCodec_A128KW_A128CBCHS256_roundtrip(t *testing.T) {
	p := cryptoprovider.NewStdProvider()
	kek, err := p.GenerateKey(jwa.PrimitiveAESKW, 16, true, []cryptoprovider.Usage{cryptoprovider.UsageWrap, cryptoprovider.UsageUnwrap})
	if err != nil {
		t.Fatal(err)
	}

	codec := NewCodec(p, jwa.A128KW, jwa.A128CBCHS256)
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	compact, err := codec.Encrypt(kek, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	decodeCodec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)
	got, err := decodeCodec.Decrypt(kek, compact)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("want %q, got %q", plaintext, got)
	}
}

func TestCodec_Decrypt_critRejected(t *testing.T) {
	header := b64url.Encode([]byte(`{"alg":"RSA-OAEP","enc":"A256GCM","crit":["exp"]}`))
	compact := strings.Join([]string{header, "ek", "iv", "ct", "tag"}, ".")

	p := cryptoprovider.NewStdProvider()
	codec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)
	if _, err := codec.Decrypt(nil, compact); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("want ErrMalformedInput, got %v", err)
	}
}

func TestCodec_Decrypt_segmentCount(t *testing.T) {
	p := cryptoprovider.NewStdProvider()
	codec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)

	if _, err := codec.Decrypt(nil, "a.b.c.d"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("4 segments: want ErrMalformedInput, got %v", err)
	}
	if _, err := codec.Decrypt(nil, "a.b.c.d.e.f"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("6 segments: want ErrMalformedInput, got %v", err)
	}
}

func TestCodec_Decrypt_tagTamperFails(t *testing.T) {
	p := cryptoprovider.NewStdProvider()
	kek, err := p.GenerateKey(jwa.PrimitiveAESKW, 16, true, []cryptoprovider.Usage{cryptoprovider.UsageWrap, cryptoprovider.UsageUnwrap})
	if err != nil {
		t.Fatal(err)
	}
	codec := NewCodec(p, jwa.A128KW, jwa.A128CBCHS256)
	compact, err := codec.Encrypt(kek, []byte("tamper me"))
	if err != nil {
		t.Fatal(err)
	}

	segments := strings.Split(compact, ".")
	tag, err := b64url.Decode("tag", segments[4])
	if err != nil {
		t.Fatal(err)
	}
	tag[len(tag)-1] ^= 0xff
	segments[4] = b64url.Encode(tag)
	tampered := strings.Join(segments, ".")

	decodeCodec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)
	if _, err := decodeCodec.Decrypt(kek, tampered); !errors.Is(err, ErrIntegrityFailure) {
		t.Errorf("want ErrIntegrityFailure, got %v", err)
	}
}

func TestCodec_Decrypt_unsupportedAlgorithm(t *testing.T) {
	header := b64url.Encode([]byte(`{"alg":"bogus","enc":"bogus"}`))
	compact := strings.Join([]string{header, "ek", "iv", "ct", "tag"}, ".")

	p := cryptoprovider.NewStdProvider()
	codec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)
	if _, err := codec.Decrypt(nil, compact); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("want ErrUnsupportedAlgorithm, got %v", err)
	}
}
