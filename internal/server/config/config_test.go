package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// These tests mutate os.Args and must not run in parallel.

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	os.Args = append([]string{"accountd"}, args...)
	t.Cleanup(func() { os.Args = original })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "secretKey", cfg.SecretKey)
	assert.Equal(t, "https://accountd.jumpaku.net", cfg.TokenIssuer)
	assert.Equal(t, "accountd", cfg.TokenAudience)
	assert.Equal(t, "access", cfg.TokenSubject)
	assert.Equal(t, 48*time.Hour, cfg.TokenTTL)
	assert.Equal(t, -10*time.Second, cfg.TokenNotBefore)
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"endpoint_addr": ":9090",
		"secret_key": "file-secret",
		"token_ttl": "1h30m",
		"token_not_before": -10000000000
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	withArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "file-secret", cfg.SecretKey)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, -10*time.Second, cfg.TokenNotBefore)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "accountd", cfg.TokenAudience)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-a", ":7070", "-s", "flag-secret", "-ttl", "2h", "-nbf=-30s")

	cfg := LoadConfig()
	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, -30*time.Second, cfg.TokenNotBefore)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"endpoint_addr": ":9090", "secret_key": "file-secret"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	withArgs(t, "-c", path, "-a", ":7070")

	cfg := LoadConfig()
	assert.Equal(t, ":7070", cfg.EndpointAddr, "flag wins over file")
	assert.Equal(t, "file-secret", cfg.SecretKey, "file wins over default")
}

func TestLoadConfig_MissingJSONFilePanics(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "missing.json"))

	assert.Panics(t, func() { LoadConfig() })
}
