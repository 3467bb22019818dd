package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9090
  environment: production
database:
  host: localhost
  user: mindwell
  dbname: mindwell_test
genai:
  model: gemini-1.5-flash
safety:
  extra_phrases:
    - "no reason to live"
alerts:
  enabled: true
  counselor_email: oncall@campus.example
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestReadConfig_FromFile(t *testing.T) {
	dir := writeConfig(t, sampleYAML)

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "mindwell_test", cfg.Database.DBName)
	assert.Equal(t, 5432, cfg.Database.Port, "default port should apply")
	assert.Equal(t, []string{"no reason to live"}, cfg.Safety.ExtraPhrases)
	assert.Equal(t, 60, cfg.Analytics.CacheTTLSeconds)
	assert.True(t, cfg.Alerts.Enabled)
}

func TestReadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	t.Setenv("MINDWELL_DATABASE_HOST", "db.internal")
	t.Setenv("MINDWELL_GENAI_MODEL", "gpt-4o-mini")

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.GenAI.Model)
}

func TestReadConfig_MissingFileWithoutEnv(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestReadConfig_MissingFileWithEnv(t *testing.T) {
	t.Setenv("MINDWELL_DATABASE_HOST", "db.internal")

	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing database host", func(c *Config) { c.Database.Host = "" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"missing model", func(c *Config) { c.GenAI.Model = "" }, true},
		{"alerts without recipient", func(c *Config) { c.Alerts.Enabled = true }, true},
		{"alerts with phone", func(c *Config) {
			c.Alerts.Enabled = true
			c.Alerts.CounselorPhone = "+15550100"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Server:   ServerConfig{Port: 8080},
				Database: DatabaseConfig{Host: "localhost"},
				GenAI:    GenAIConfig{Model: "m"},
			}
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
