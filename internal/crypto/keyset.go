package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeysetSize is the serialized size of a Keyset.
const KeysetSize = 64

// ErrDecrypt is returned when a sealed value fails authentication.
var ErrDecrypt = errors.New("value decryption failed")

// Keyset holds the per-store symmetric keys: one seals values, the other
// maps preference names to deterministic bucket keys.
type Keyset struct {
	valueKey [32]byte
	macKey   [32]byte
}

// NewKeyset generates a random keyset.
func NewKeyset() (*Keyset, error) {
	var raw [KeysetSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return nil, fmt.Errorf("generating keyset: %w", err)
	}
	return ParseKeyset(raw[:])
}

// ParseKeyset decodes a keyset produced by Bytes.
func ParseKeyset(b []byte) (*Keyset, error) {
	if len(b) != KeysetSize {
		return nil, fmt.Errorf("keyset: got %d bytes, want %d", len(b), KeysetSize)
	}
	ks := &Keyset{}
	copy(ks.valueKey[:], b[:32])
	copy(ks.macKey[:], b[32:])
	return ks, nil
}

// Bytes serializes the keyset. The result is secret material.
func (ks *Keyset) Bytes() []byte {
	out := make([]byte, 0, KeysetSize)
	out = append(out, ks.valueKey[:]...)
	return append(out, ks.macKey[:]...)
}

// LookupKey returns the deterministic storage key for a preference name.
// Equal names always map to the same 32 bytes, so existence checks need no scan.
func (ks *Keyset) LookupKey(name string) []byte {
	mac := hmac.New(sha256.New, ks.macKey[:])
	mac.Write([]byte(name))
	return mac.Sum(nil)
}

// Seal encrypts plaintext with XChaCha20-Poly1305 under a random nonce.
// Layout: [24B nonce][ciphertext || 16B tag]. ad is authenticated, not stored.
func (ks *Keyset) Seal(plaintext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(ks.valueKey[:])
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, ad), nil
}

// Open decrypts a value produced by Seal with the same ad.
func (ks *Keyset) Open(sealed, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(ks.valueKey[:])
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: short ciphertext", ErrDecrypt)
	}
	nonce, ct := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	pt, err := aead.Open(nil, nonce, ct, ad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return pt, nil
}
