package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/apestrap/errors"
)

func TestDecodeKnownVector(t *testing.T) {
	// bech32  -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected human readable part: %q", hrp)
	}
	if !bytes.Equal(want, payload) {
		t.Logf("want %d", want)
		t.Logf("got  %d", payload)
		t.Fatal("invalid decode")
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if raw != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestEncodeAddress(t *testing.T) {
	addr := bytes.Repeat([]byte{0xAB}, 20)
	raw, err := Encode("ape", addr)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	hrp, payload, err := Decode(raw)
	if err != nil {
		t.Fatalf("cannot decode %q: %s", raw, err)
	}
	if hrp != "ape" || !bytes.Equal(payload, addr) {
		t.Fatalf("unexpected decode result: %q %X", hrp, payload)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, _, err := Decode("not-a-bech32-string"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}
