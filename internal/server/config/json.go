package config

import (
	"encoding/json"
	"os"

	"github.com/jumpaku/accountd/internal/flagx"
	"github.com/jumpaku/accountd/internal/timex"
)

// JSONConfig is the DTO for reading a JSON configuration file. Duration
// fields use timex.Duration so both "48h" strings and integer nanoseconds
// parse. After unmarshalling, set fields are copied into Config.
type JSONConfig struct {
	EndpointAddr   *string         `json:"endpoint_addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	SecretKey      *string         `json:"secret_key"`
	TokenIssuer    *string         `json:"token_issuer"`
	TokenAudience  *string         `json:"token_audience"`
	TokenSubject   *string         `json:"token_subject"`
	TokenTTL       *timex.Duration `json:"token_ttl"`
	TokenNotBefore *timex.Duration `json:"token_not_before"`
}

// parseJSON overlays values from the JSON file named by -c/-config onto
// config. Absent flag means no file is loaded; an unreadable or invalid file
// panics, since starting with half-applied configuration is worse than not
// starting.
func parseJSON(config *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != nil {
		config.EndpointAddr = *jc.EndpointAddr
	}
	if jc.DatabaseDSN != nil {
		config.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		config.SecretKey = *jc.SecretKey
	}
	if jc.TokenIssuer != nil {
		config.TokenIssuer = *jc.TokenIssuer
	}
	if jc.TokenAudience != nil {
		config.TokenAudience = *jc.TokenAudience
	}
	if jc.TokenSubject != nil {
		config.TokenSubject = *jc.TokenSubject
	}
	if jc.TokenTTL != nil {
		config.TokenTTL = jc.TokenTTL.Std()
	}
	if jc.TokenNotBefore != nil {
		config.TokenNotBefore = jc.TokenNotBefore.Std()
	}
}
