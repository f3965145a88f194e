package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	mcrypto "dprefs/internal/crypto"
)

func newKeyset(t *testing.T) *mcrypto.Keyset {
	t.Helper()
	ks, err := mcrypto.NewKeyset()
	if err != nil {
		t.Fatal(err)
	}
	return ks
}

func TestKeysetBytesRoundTrip(t *testing.T) {
	ks := newKeyset(t)
	parsed, err := mcrypto.ParseKeyset(ks.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(parsed.Bytes(), ks.Bytes()) {
		t.Fatal("keyset round trip mismatch")
	}
	if !bytes.Equal(parsed.LookupKey("k"), ks.LookupKey("k")) {
		t.Fatal("parsed keyset should derive the same lookup keys")
	}
}

func TestParseKeysetWrongSize(t *testing.T) {
	if _, err := mcrypto.ParseKeyset(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short keyset")
	}
}

func TestLookupKey(t *testing.T) {
	ks := newKeyset(t)
	a1 := ks.LookupKey("STRING_KEY")
	a2 := ks.LookupKey("STRING_KEY")
	b := ks.LookupKey("INT_KEY")

	if len(a1) != 32 {
		t.Fatalf("lookup key length: got %d, want 32", len(a1))
	}
	if !bytes.Equal(a1, a2) {
		t.Error("lookup key must be deterministic")
	}
	if bytes.Equal(a1, b) {
		t.Error("different names must map to different lookup keys")
	}
	if bytes.Equal(a1, newKeyset(t).LookupKey("STRING_KEY")) {
		t.Error("lookup keys must depend on the keyset")
	}
}

func TestSealOpen(t *testing.T) {
	ks := newKeyset(t)
	ad := []byte("lookup")
	sealed, err := ks.Seal([]byte("This is a string"), ad)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := ks.Open(sealed, ad)
	if err != nil {
		t.Fatal(err)
	}
	if string(pt) != "This is a string" {
		t.Fatalf("got %q", pt)
	}
}

func TestOpenFailures(t *testing.T) {
	ks := newKeyset(t)
	sealed, err := ks.Seal([]byte("v"), []byte("ad-1"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		ks     *mcrypto.Keyset
		sealed []byte
		ad     []byte
	}{
		{"wrong ad", ks, sealed, []byte("ad-2")},
		{"wrong keyset", newKeyset(t), sealed, []byte("ad-1")},
		{"short", ks, sealed[:10], []byte("ad-1")},
		{"tampered", ks, append(append([]byte{}, sealed[:len(sealed)-1]...), sealed[len(sealed)-1]^1), []byte("ad-1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.ks.Open(tt.sealed, tt.ad); !errors.Is(err, mcrypto.ErrDecrypt) {
				t.Fatalf("expected ErrDecrypt, got %v", err)
			}
		})
	}
}
