package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Alijeyrad/mindwell_backend/pkg/constants"
	"github.com/spf13/viper"
)

var GlobalConf *Config

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	// Allow env vars to override config values.
	// e.g. MINDWELL_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read the config file (optional in Docker environments)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if os.Getenv(constants.EnvPrefix+"_DATABASE_HOST") == "" {
			return nil, fmt.Errorf("config file not found in %q and no environment overrides set", configPath)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}

// setDefaults registers every key so AutomaticEnv can resolve keys that are
// absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.rate_limit.max", 20)
	v.SetDefault("server.rate_limit.expiration_seconds", 30)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "mindwell")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.encryption_key", "")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("nats.url", "nats://localhost:4222")

	v.SetDefault("authentication.paseto.mode", "public")
	v.SetDefault("authentication.paseto.issuer", "mindwell-identity")
	v.SetDefault("authentication.paseto.audience", "mindwell-api")
	v.SetDefault("authentication.paseto.access_ttl_minutes", 15)

	v.SetDefault("authorization.enable_audit", true)

	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("genai.model", "gemini-1.5-flash")
	v.SetDefault("genai.temperature", 0.7)
	v.SetDefault("genai.max_tokens", 1024)
	v.SetDefault("genai.timeout_seconds", 30)

	v.SetDefault("voice.ml_server_url", "http://localhost:5000")
	v.SetDefault("voice.timeout_seconds", 20)

	v.SetDefault("analytics.cache_ttl_seconds", 60)
	v.SetDefault("analytics.recent_flagged", 5)

	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.phone_region", "US")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("observability.service_name", "mindwell_backend")
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.GenAI.Model == "" {
		errs = append(errs, errors.New("genai.model is required"))
	}
	if c.Alerts.Enabled && c.Alerts.CounselorEmail == "" && c.Alerts.CounselorPhone == "" {
		errs = append(errs, errors.New("alerts enabled but neither counselor_email nor counselor_phone set"))
	}

	return errors.Join(errs...)
}
