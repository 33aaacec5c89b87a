package bitvavo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"bitvavo-api/pkg/crypto"
)

// Authentication headers attached to signed requests.
const (
	HeaderAccessKey       = "Bitvavo-Access-Key"
	HeaderAccessTimestamp = "Bitvavo-Access-Timestamp"
	HeaderAccessSignature = "Bitvavo-Access-Signature"
)

// Sign returns the lower-case hex HMAC-SHA256, keyed by secret, of
// timestamp + method + path + body. path starts at /v2/ and includes the
// query string; body is empty for GET.
func Sign(secret []byte, timestamp, method, path string, body []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(timestamp))
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// credentials is the key/secret pair of a client. It is read-only until
// wipe, which scrubs both buffers.
type credentials struct {
	mu     sync.RWMutex
	key    crypto.Secret
	secret crypto.Secret
	closed bool
}

// newCredentials returns nil when both halves are empty (unsigned client).
func newCredentials(key, secret crypto.Secret) (*credentials, error) {
	if key.IsZero() && secret.IsZero() {
		return nil, nil
	}
	if err := checkCredential("api key", key); err != nil {
		return nil, err
	}
	if err := checkCredential("api secret", secret); err != nil {
		return nil, err
	}
	return &credentials{key: key, secret: secret}, nil
}

// checkCredential rejects material that would only produce signatures the
// exchange refuses. The value itself never ends up in the error.
func checkCredential(name string, s crypto.Secret) error {
	if s.IsZero() {
		return fmt.Errorf("%w: %s is empty", ErrInvalidCredentials, name)
	}
	for i, b := range s.Bytes() {
		if b <= ' ' || b > '~' {
			return fmt.Errorf("%w: %s has an invalid character at offset %d", ErrInvalidCredentials, name, i)
		}
	}
	return nil
}

// sign attaches the three authentication headers to req.
func (c *credentials) sign(req *http.Request, timestamp int64, path string, body []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}

	ts := strconv.FormatInt(timestamp, 10)
	req.Header.Set(HeaderAccessKey, string(c.key.Bytes()))
	req.Header.Set(HeaderAccessTimestamp, ts)
	req.Header.Set(HeaderAccessSignature, Sign(c.secret.Bytes(), ts, req.Method, path, body))
	return nil
}

func (c *credentials) wipe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key.Wipe()
	c.secret.Wipe()
	c.closed = true
}
