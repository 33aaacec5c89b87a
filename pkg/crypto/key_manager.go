package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	ErrKeyNotFound = errors.New("sealing key not found")
	ErrNoKeys      = errors.New("keyring has no keys")
)

// EnvKeyPrefix names the variables keys are read from:
//   - MASTER_ENCRYPTION_KEY (version 1)
//   - MASTER_ENCRYPTION_KEY_V2 (version 2)
//   - etc.
const EnvKeyPrefix = "MASTER_ENCRYPTION_KEY"

const maxKeyVersion = 10

// Keyring holds sealers for several key versions so that values sealed under
// a rotated-out key can still be opened.
type Keyring struct {
	mu         sync.RWMutex
	currentVer int
	sealers    map[int]*Sealer
}

// NewKeyring builds a keyring from base64 keys indexed by version.
func NewKeyring(keys map[int]string) (*Keyring, error) {
	kr := &Keyring{sealers: make(map[int]*Sealer)}
	for version, keyBase64 := range keys {
		if err := kr.add(version, keyBase64); err != nil {
			kr.Wipe()
			return nil, err
		}
	}
	if len(kr.sealers) == 0 {
		return nil, ErrNoKeys
	}
	return kr, nil
}

// KeyringFromEnv loads MASTER_ENCRYPTION_KEY (required) and any
// MASTER_ENCRYPTION_KEY_V2..V10. The highest version seals.
func KeyringFromEnv() (*Keyring, error) {
	keys := make(map[int]string)
	primary := os.Getenv(EnvKeyPrefix)
	if primary == "" {
		return nil, fmt.Errorf("load primary key: %w", ErrKeyNotFound)
	}
	keys[1] = primary
	for v := 2; v <= maxKeyVersion; v++ {
		if k := os.Getenv(fmt.Sprintf("%s_V%d", EnvKeyPrefix, v)); k != "" {
			keys[v] = k
		}
	}
	return NewKeyring(keys)
}

func (kr *Keyring) add(version int, keyBase64 string) error {
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return fmt.Errorf("decode key v%d: %w", version, err)
	}
	defer Wipe(key)

	s, err := NewSealer(key, version)
	if err != nil {
		return fmt.Errorf("create sealer v%d: %w", version, err)
	}
	kr.sealers[version] = s
	if version > kr.currentVer {
		kr.currentVer = version
	}
	return nil
}

// Seal seals plaintext with the current key version.
func (kr *Keyring) Seal(plaintext []byte) (string, error) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	s, ok := kr.sealers[kr.currentVer]
	if !ok {
		return "", ErrNoKeys
	}
	return s.Seal(plaintext)
}

// Open opens a sealed value with the key version it names.
func (kr *Keyring) Open(sealed string) ([]byte, error) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	version := ParseVersion(sealed)
	if version == 0 {
		return nil, ErrInvalidSealed
	}
	s, ok := kr.sealers[version]
	if !ok {
		return nil, fmt.Errorf("key version %d not available", version)
	}
	return s.Open(sealed)
}

// OpenSecret opens v when it is sealed and passes it through otherwise.
func (kr *Keyring) OpenSecret(v string) (Secret, error) {
	if !IsSealed(v) {
		return NewSecret(v), nil
	}
	b, err := kr.Open(v)
	if err != nil {
		return Secret{}, err
	}
	return SecretFromBytes(b), nil
}

// CurrentVersion returns the version used by Seal.
func (kr *Keyring) CurrentVersion() int {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	return kr.currentVer
}

// HasVersion checks if a specific key version is loaded.
func (kr *Keyring) HasVersion(version int) bool {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	_, ok := kr.sealers[version]
	return ok
}

// Wipe scrubs every key held by the keyring.
func (kr *Keyring) Wipe() {
	kr.mu.Lock()
	defer kr.mu.Unlock()
	for v, s := range kr.sealers {
		s.Wipe()
		delete(kr.sealers, v)
	}
}

// GenerateKey returns a new random 32-byte key, base64-encoded.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	defer Wipe(key)
	if _, err := cryptoRandRead(key); err != nil {
		return "", fmt.Errorf("generate random key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// cryptoRandRead is a variable for testing purposes
var cryptoRandRead = func(b []byte) (int, error) {
	return rand.Reader.Read(b)
}
