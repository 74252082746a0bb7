package config

import "time"

// Config holds runtime settings for the Bayan CLI.
//
// The embedded secrets simulate a server-held signing/encryption secret.
// Both the issuer and the verifier of tokens run inside this process, so
// this is a demo trust boundary, not a real one: a production deployment
// must move token signing and the encryption key behind an actual server.
type Config struct {
	// DatabaseDSN is the SQLite DSN backing the durable key-value store.
	DatabaseDSN string

	// EncryptionSecret and EncryptionSalt feed PBKDF2 key derivation.
	EncryptionSecret string
	EncryptionSalt   string

	// KeyIterations is the PBKDF2 iteration count (minimum 100000).
	KeyIterations int

	// TokenSecret signs access and refresh tokens (HS256).
	TokenSecret string

	// Token lifetimes.
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// AssistantEndpoint is the text-generation service URL. Empty disables
	// the assistant.
	AssistantEndpoint string
	AssistantAPIKey   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "bayan.db"
	c.EncryptionSecret = "ISTA-TATA-STORAGE-ENCRYPTION-KEY-MUST-BE-LONG-ENOUGH"
	c.EncryptionSalt = "ista-tata-salt"
	c.KeyIterations = 100000
	c.TokenSecret = "ISTA-TATA-SECURE-KEY-256-BIT-SIGNATURE-MUST-BE-KEPT-SECRET"
	c.AccessTokenTTL = 15 * time.Minute
	c.RefreshTokenTTL = 7 * 24 * time.Hour
	c.AssistantEndpoint = ""
	c.AssistantAPIKey = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
