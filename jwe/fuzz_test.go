package jwe

import (
	"testing"

	"github.com/go-jwe/jwec/cryptoprovider"
	"github.com/go-jwe/jwec/jwa"
)

// FuzzCodecDecrypt feeds arbitrary strings to Decrypt. Parse/decrypt
// failures are expected and ignored by the fuzz target itself; the
// property under test is that no malformed input ever panics or
// returns a plaintext alongside a non-nil error.
func FuzzCodecDecrypt(f *testing.F) {
	// RFC 7516 Appendix A.1. Example JWE using RSAES-OAEP and AES GCM.
	f.Add(`eyJhbGciOiJSU0EtT0FFUCIsImVuYyI6IkEyNTZHQ00ifQ.` +
		`OKOawDo13gRp2ojaHV7LFpZcgV7T6DVZKTyKOMTYUmKoTCVJRgckCL9kiMT03JGe` +
		`ipsEdY3mx_etLbbWSrFr05kLzcSr4qKAq7YN7e9jwQRb23nfa6c9d-StnImGyFDb` +
		`Sv04uVuxIp5Zms1gNxKKK2Da14B8S4rzVRltdYwam_lDp5XnZAYpQdb76FdIKLaV` +
		`mqgfwX7XWRxv2322i-vDxRfqNzo_tETKzpVLzfiwQyeyPGLBIO56YJ7eObdv0je8` +
		`1860ppamavo35UgoRdbYaBcoh9QcfylQr66oc6vFWXRcZ_ZT2LawVCWTIy3brGPi` +
		`6UklfCpIMfIjf7iGdXKHzg.` +
		`48V1_ALb6US04U3b.` +
		`5eym8TW_c8SuK0ltJ3rpYIzOeDQz7TALvtu6UG9oMo4vpzs9tX_EFShS8iB7j6ji` +
		`SdiwkIr3ajwQzaBtQD_A.` +
		`XFBoMYUZodetZdvTiFvSkQ`)

	// RFC 7516 Appendix A.3. Example JWE Using AES Key Wrap and AES_128_CBC_HMAC_SHA_256
	f.Add(`eyJhbGciOiJBMTI4S1ciLCJlbmMiOiJBMTI4Q0JDLUhTMjU2In0.` +
		`6KB707dM9YTIgHtLvtgWQ8mKwboJW3of9locizkDTHzBC2IlrT1oOQ.` +
		`AxY8DCtDaGlsbGljb3RoZQ.` +
		`KDlTtXchhZTGufMYmOYGS4HffxPSUrfmqCHXaI9wOGY.` +
		`U0m_YmjN04DJvceFICbCVQ`)

	f.Add("")
	f.Add(".")
	f.Add("a.b.c.d.e")
	f.Add(`{"alg":"RSA-OAEP"}.a.b.c.d`)

	p := cryptoprovider.NewStdProvider()
	kek, err := p.GenerateKey(jwa.PrimitiveAESKW, 16, true, []cryptoprovider.Usage{cryptoprovider.UsageWrap, cryptoprovider.UsageUnwrap})
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, s string) {
		codec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)
		plaintext, err := codec.Decrypt(kek, s)
		if err != nil && plaintext != nil {
			t.Error("Decrypt returned plaintext alongside an error")
		}
	})
}

// FuzzCodecEncryptDecrypt fuzzes the round trip over arbitrary
// plaintexts for the AES Key Wrap + composite path, which exercises the
// encrypt-then-MAC pipeline on every input length.
func FuzzCodecEncryptDecrypt(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("Live long and prosper."))
	f.Add([]byte{0})
	f.Add(make([]byte, 33))

	p := cryptoprovider.NewStdProvider()
	kek, err := p.GenerateKey(jwa.PrimitiveAESKW, 32, true, []cryptoprovider.Usage{cryptoprovider.UsageWrap, cryptoprovider.UsageUnwrap})
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, plaintext []byte) {
		encodeCodec := NewCodec(p, jwa.A256KW, jwa.A256CBCHS512)
		compact, err := encodeCodec.Encrypt(kek, plaintext)
		if err != nil {
			t.Fatal(err)
		}
		decodeCodec := NewCodec(p, jwa.KeyAlgorithmUnknown, jwa.ContentAlgorithmUnknown)
		got, err := decodeCodec.Decrypt(kek, compact)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(plaintext) {
			t.Errorf("want %q, got %q", plaintext, got)
		}
	})
}
