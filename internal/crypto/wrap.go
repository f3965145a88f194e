package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/flynn/noise"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

const wrapInfo = "dprefs keyset wrap v1"

// ErrUnwrap is returned when a wrapped keyset cannot be opened with the
// supplied key, either because the key is wrong or the blob was altered.
var ErrUnwrap = errors.New("keyset unwrap failed")

// Wrap seals secret to the X25519 public key recipientPub.
// Layout: [32B ephemeral public key][ciphertext || 16B tag].
// Each call uses a fresh ephemeral key, so the derived wrapping key is
// single-use and nonce 0 is safe.
func Wrap(recipientPub, secret []byte) ([]byte, error) {
	eph, err := noise.DH25519.GenerateKeypair(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ephemeral key: %w", err)
	}
	shared, err := curve25519.X25519(eph.Private, recipientPub)
	if err != nil {
		return nil, fmt.Errorf("key agreement: %w", err)
	}
	kek, err := deriveWrapKey(shared, eph.Public, recipientPub)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(eph.Public)+len(secret)+16)
	out = append(out, eph.Public...)
	return noise.CipherChaChaPoly.Cipher(kek).Encrypt(out, 0, recipientPub, secret), nil
}

// Unwrap reverses Wrap using the recipient's X25519 keypair.
func Unwrap(recipient noise.DHKey, wrapped []byte) ([]byte, error) {
	if len(wrapped) < 32+16 {
		return nil, fmt.Errorf("%w: blob too short", ErrUnwrap)
	}
	ephPub := wrapped[:32]
	shared, err := curve25519.X25519(recipient.Private, ephPub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnwrap, err)
	}
	kek, err := deriveWrapKey(shared, ephPub, recipient.Public)
	if err != nil {
		return nil, err
	}
	secret, err := noise.CipherChaChaPoly.Cipher(kek).Decrypt(nil, 0, recipient.Public, wrapped[32:])
	if err != nil {
		return nil, ErrUnwrap
	}
	return secret, nil
}

func deriveWrapKey(shared, ephPub, recipientPub []byte) ([32]byte, error) {
	var kek [32]byte
	salt := make([]byte, 0, len(ephPub)+len(recipientPub))
	salt = append(salt, ephPub...)
	salt = append(salt, recipientPub...)
	r := hkdf.New(sha256.New, shared, salt, []byte(wrapInfo))
	if _, err := io.ReadFull(r, kek[:]); err != nil {
		return kek, fmt.Errorf("deriving wrap key: %w", err)
	}
	return kek, nil
}
