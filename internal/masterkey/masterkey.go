package masterkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"

	"dprefs/internal/logging"
)

const (
	dirName     = "masterkey"
	privKeyFile = "master.key"
	pubKeyFile  = "master.pub"
)

var logger = logging.For("masterkey")

// MasterKey is the key material a preference store is bound to. Its X25519
// form wraps each store's keyset; losing it makes those stores unreadable.
type MasterKey struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
	KeyID      string // hex(sha256(public_key))[:16]
	SSHPublic  ssh.PublicKey
}

// Fingerprint returns the OpenSSH SHA256 fingerprint of the public key.
func (k *MasterKey) Fingerprint() string {
	return ssh.FingerprintSHA256(k.SSHPublic)
}

// Load reads the keypair from dataDir/masterkey/. If the key files don't
// exist, a new keypair is generated and persisted.
func Load(dataDir string) (*MasterKey, error) {
	keyDir := filepath.Join(dataDir, dirName)
	privPath := filepath.Join(keyDir, privKeyFile)
	pubPath := filepath.Join(keyDir, pubKeyFile)

	privPEM, err := os.ReadFile(privPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading master key: %w", err)
		}
		return generate(keyDir, privPath, pubPath)
	}

	return Parse(privPEM)
}

// Generate creates an ephemeral master key that is never written to disk.
func Generate() (*MasterKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating master key: %w", err)
	}
	return fromKeyPair(priv, pub)
}

func generate(keyDir, privPath, pubPath string) (*MasterKey, error) {
	k, err := Generate()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return nil, fmt.Errorf("creating master key dir: %w", err)
	}

	pkcs8, err := x509.MarshalPKCS8PrivateKey(k.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("marshaling master key: %w", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: pkcs8,
	})
	if err := os.WriteFile(privPath, privPEM, 0600); err != nil {
		return nil, fmt.Errorf("writing master key: %w", err)
	}

	// Public half in OpenSSH format so operators can identify the key.
	if err := os.WriteFile(pubPath, ssh.MarshalAuthorizedKey(k.SSHPublic), 0644); err != nil {
		return nil, fmt.Errorf("writing master public key: %w", err)
	}

	logger.Info("generated master key", "key_id", k.KeyID, "dir", keyDir)
	return k, nil
}

// Parse decodes a PKCS8 PEM encoded ED25519 private key.
func Parse(privPEM []byte) (*MasterKey, error) {
	block, _ := pem.Decode(privPEM)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in master key")
	}

	rawKey, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing master key: %w", err)
	}

	priv, ok := rawKey.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("master key is not ED25519")
	}

	pub := priv.Public().(ed25519.PublicKey)
	return fromKeyPair(priv, pub)
}

func fromKeyPair(priv ed25519.PrivateKey, pub ed25519.PublicKey) (*MasterKey, error) {
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("converting public key: %w", err)
	}

	hash := sha256.Sum256(pub)

	return &MasterKey{
		PrivateKey: priv,
		PublicKey:  pub,
		KeyID:      hex.EncodeToString(hash[:8]),
		SSHPublic:  sshPub,
	}, nil
}
