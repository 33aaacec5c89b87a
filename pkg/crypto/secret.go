package crypto

import "runtime"

const redacted = "[REDACTED]"

// Secret holds credential bytes. It never prints or serializes its contents;
// copies share the same backing array, so Wipe scrubs every copy.
type Secret struct {
	b []byte
}

// NewSecret copies s into a wipeable buffer. The string itself cannot be
// scrubbed; callers that care should build secrets with SecretFromBytes.
func NewSecret(s string) Secret {
	if s == "" {
		return Secret{}
	}
	return Secret{b: []byte(s)}
}

// SecretFromBytes takes ownership of b.
func SecretFromBytes(b []byte) Secret {
	return Secret{b: b}
}

// Bytes exposes the underlying buffer. Do not retain it past Wipe.
func (s Secret) Bytes() []byte { return s.b }

// Len returns the secret length in bytes.
func (s Secret) Len() int { return len(s.b) }

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool { return len(s.b) == 0 }

func (s Secret) String() string   { return redacted }
func (s Secret) GoString() string { return redacted }

// MarshalText keeps secrets out of JSON/YAML dumps.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Wipe overwrites the buffer with zeros and drops it.
func (s *Secret) Wipe() {
	Wipe(s.b)
	s.b = nil
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
