package crypto_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/curve25519"

	mcrypto "dprefs/internal/crypto"
	"dprefs/internal/masterkey"
)

func TestEdToX25519RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	x25519Priv := mcrypto.EdPrivateToX25519(priv)
	x25519Pub, err := mcrypto.EdPublicToX25519(pub)
	if err != nil {
		t.Fatal(err)
	}

	derivedPub, err := curve25519.X25519(x25519Priv, curve25519.Basepoint)
	if err != nil {
		t.Fatal(err)
	}
	if len(x25519Pub) != 32 {
		t.Fatalf("x25519 public key length: got %d, want 32", len(x25519Pub))
	}
	if !bytes.Equal(derivedPub, x25519Pub) {
		t.Fatalf("x25519 public key mismatch: derived=%x converted=%x", derivedPub, x25519Pub)
	}
}

func TestEdPublicToX25519InvalidKey(t *testing.T) {
	if _, err := mcrypto.EdPublicToX25519([]byte("short")); err == nil {
		t.Fatal("expected error for invalid ed25519 public key")
	}
}

func TestMasterDHKey(t *testing.T) {
	k, err := masterkey.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load master key: %v", err)
	}

	kp, err := mcrypto.MasterDHKey(k)
	if err != nil {
		t.Fatalf("MasterDHKey: %v", err)
	}
	if len(kp.Private) != 32 || len(kp.Public) != 32 {
		t.Fatalf("unexpected key lengths: priv=%d pub=%d", len(kp.Private), len(kp.Public))
	}

	derivedPub, err := curve25519.X25519(kp.Private, curve25519.Basepoint)
	if err != nil {
		t.Fatalf("X25519 scalar base mult: %v", err)
	}
	if !bytes.Equal(derivedPub, kp.Public) {
		t.Fatal("DH keypair public half does not match private half")
	}

	again, err := mcrypto.MasterDHKey(k)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again.Private, kp.Private) || !bytes.Equal(again.Public, kp.Public) {
		t.Fatal("MasterDHKey not deterministic")
	}
}
