// Package crypto handles credential material: redacting holders, in-place
// wiping, and AES-256-GCM sealing of API secrets kept in config files.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// KeySize is the required size for AES-256 keys (32 bytes)
	KeySize = 32
	// NonceSize is the size of GCM nonce (12 bytes)
	NonceSize = 12

	sealedPrefix = "ENC[v"
)

var (
	ErrInvalidKey    = errors.New("invalid sealing key: must be 32 bytes")
	ErrInvalidSealed = errors.New("invalid sealed value format")
	ErrOpenFailed    = errors.New("open sealed value failed")
	ErrSealerWiped   = errors.New("sealer key wiped")
)

// Sealer seals and opens credential values with one AES-256-GCM key.
// Sealed form: ENC[vN]:base64(nonce+ciphertext).
type Sealer struct {
	key     []byte
	version int
}

// NewSealer copies key; it must be KeySize bytes.
func NewSealer(key []byte, version int) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	return &Sealer{
		key:     append([]byte(nil), key...),
		version: version,
	}, nil
}

func (s *Sealer) aead() (cipher.AEAD, error) {
	if s.key == nil {
		return nil, ErrSealerWiped
	}
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	gcm, err := s.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)

	return fmt.Sprintf("%s%d]:%s", sealedPrefix, s.version, base64.StdEncoding.EncodeToString(sealed)), nil
}

// Open decrypts a value produced by Seal. The returned buffer belongs to the
// caller, who should wipe it when done.
func (s *Sealer) Open(sealed string) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, ErrInvalidSealed
	}
	colonIdx := strings.Index(sealed, "]:")
	if colonIdx == -1 {
		return nil, ErrInvalidSealed
	}
	data, err := base64.StdEncoding.DecodeString(sealed[colonIdx+2:])
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	if len(data) < NonceSize {
		return nil, ErrInvalidSealed
	}

	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

// Version returns the key version this sealer writes.
func (s *Sealer) Version() int {
	return s.version
}

// Wipe scrubs the key; the sealer is unusable afterwards.
func (s *Sealer) Wipe() {
	Wipe(s.key)
	s.key = nil
}

// IsSealed reports whether v looks like a sealed value.
func IsSealed(v string) bool {
	return strings.HasPrefix(v, sealedPrefix)
}

// ParseVersion extracts the key version from a sealed value; 0 if malformed.
func ParseVersion(sealed string) int {
	if !IsSealed(sealed) {
		return 0
	}
	var version int
	if _, err := fmt.Sscanf(sealed, "ENC[v%d]:", &version); err != nil {
		return 0
	}
	return version
}
