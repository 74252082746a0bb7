package config

import (
	"encoding/json"
	"os"

	"github.com/istatata/bayan/internal/flagx"
	"github.com/istatata/bayan/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify lifetimes either as strings like "15m"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabaseDSN       string         `json:"database_dsn"`
	EncryptionSecret  string         `json:"encryption_secret"`
	EncryptionSalt    string         `json:"encryption_salt"`
	KeyIterations     int            `json:"key_iterations"`
	TokenSecret       string         `json:"token_secret"`
	AccessTokenTTL    timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL   timex.Duration `json:"refresh_token_ttl"`
	AssistantEndpoint string         `json:"assistant_endpoint"`
	AssistantAPIKey   string         `json:"assistant_api_key"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. Fields left empty (or zero) in the file keep
// their current values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.EncryptionSecret != "" {
		cfg.EncryptionSecret = jc.EncryptionSecret
	}
	if jc.EncryptionSalt != "" {
		cfg.EncryptionSalt = jc.EncryptionSalt
	}
	if jc.KeyIterations > 0 {
		cfg.KeyIterations = jc.KeyIterations
	}
	if jc.TokenSecret != "" {
		cfg.TokenSecret = jc.TokenSecret
	}
	if jc.AccessTokenTTL.Duration > 0 {
		cfg.AccessTokenTTL = jc.AccessTokenTTL.Duration
	}
	if jc.RefreshTokenTTL.Duration > 0 {
		cfg.RefreshTokenTTL = jc.RefreshTokenTTL.Duration
	}
	if jc.AssistantEndpoint != "" {
		cfg.AssistantEndpoint = jc.AssistantEndpoint
	}
	if jc.AssistantAPIKey != "" {
		cfg.AssistantAPIKey = jc.AssistantAPIKey
	}
}
