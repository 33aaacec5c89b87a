package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bitvavo-api/pkg/crypto"
)

const (
	DefaultBaseURL = "https://api.bitvavo.com"
	DefaultMarket  = "BTC-EUR"
	DefaultTimeout = 10 * time.Second
)

// Config holds settings for the command-line tools.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"-"`
	Market  string        `yaml:"market"`

	// Credentials as configured. Either may be sealed (ENC[vN]:...); use
	// Credentials to obtain usable secrets.
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`

	TimeoutMs int `yaml:"timeout_ms"`
}

// Load reads environment variables (optionally via .env). When BITVAVO_CONFIG
// names a YAML file it is read first and the environment overrides it.
func Load() (*Config, error) {
	// Ignore error so the tools still run when .env is missing.
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("BITVAVO_CONFIG"); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	cfg.applyEnv()
	return cfg, cfg.validate()
}

// LoadFile reads settings from a YAML file. Missing keys keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	return cfg, cfg.validate()
}

func defaults() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Market:    DefaultMarket,
		Timeout:   DefaultTimeout,
		TimeoutMs: int(DefaultTimeout / time.Millisecond),
	}
}

func (c *Config) applyEnv() {
	c.BaseURL = getEnv("BITVAVO_BASE_URL", c.BaseURL)
	c.Market = getEnv("BITVAVO_MARKET", c.Market)
	c.APIKey = getEnv("BITVAVO_API_KEY", c.APIKey)
	c.APISecret = getEnv("BITVAVO_API_SECRET", c.APISecret)
	c.TimeoutMs = getEnvInt("BITVAVO_TIMEOUT_MS", c.TimeoutMs)
	c.Timeout = time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c *Config) validate() error {
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base url %q must start with http:// or https://", c.BaseURL)
	}
	return nil
}

// HasCredentials reports whether a key or secret is configured.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" || c.APISecret != ""
}

// Credentials returns the API key and secret, opening sealed values with
// the MASTER_ENCRYPTION_KEY keyring. The keyring is only loaded when a value
// is actually sealed.
func (c *Config) Credentials() (key, secret crypto.Secret, err error) {
	if !crypto.IsSealed(c.APIKey) && !crypto.IsSealed(c.APISecret) {
		return crypto.NewSecret(c.APIKey), crypto.NewSecret(c.APISecret), nil
	}

	kr, err := crypto.KeyringFromEnv()
	if err != nil {
		return crypto.Secret{}, crypto.Secret{}, fmt.Errorf("open sealed credentials: %w", err)
	}
	defer kr.Wipe()

	if key, err = kr.OpenSecret(c.APIKey); err != nil {
		return crypto.Secret{}, crypto.Secret{}, fmt.Errorf("open api key: %w", err)
	}
	if secret, err = kr.OpenSecret(c.APISecret); err != nil {
		key.Wipe()
		return crypto.Secret{}, crypto.Secret{}, fmt.Errorf("open api secret: %w", err)
	}
	return key, secret, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
