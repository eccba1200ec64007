package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8585"`
	DBPath        string `env:"DB_PATH" envDefault:"./sarees.db"`
	CSRFKeyB64    string `env:"CSRF_KEY"`
	SessionKeyB64 string `env:"SESSION_KEY"`
	CookieDomain  string `env:"COOKIE_DOMAIN"`
	CookieSecure  bool   `env:"COOKIE_SECURE" envDefault:"false"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"static/uploads"`

	// Decoded keys, populated by Load.
	CSRFKey    []byte `env:"-"`
	SessionKey []byte `env:"-"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.CSRFKey = decodeKey("CSRF_KEY", cfg.CSRFKeyB64)
	cfg.SessionKey = decodeKey("SESSION_KEY", cfg.SessionKeyB64)

	return cfg, nil
}

// decodeKey decodes a base64 key from the environment, falling back to a
// random per-process key so development still works. Random keys invalidate
// sessions on restart, hence the loud warning.
func decodeKey(name, value string) []byte {
	if value == "" {
		slog.Warn("Key not set, generating a random one. Set it in production!", "env", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Key invalid or shorter than 32 bytes, generating a random one. Set a proper key in production!", "env", name)
		return randomBytes(32)
	}
	return decoded
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; nothing sane to
		// fall back to.
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	return b
}
