package database

import (
	"testing"
	"time"

	"github.com/Alijeyrad/mindwell_backend/config"
)

func configFixture() config.DatabaseConfig {
	return config.DatabaseConfig{Host: "db", User: "u", Password: "p", DBName: "mindwell"}
}

func TestConnMaxLifetime(t *testing.T) {
	if got := (Config{}).ConnMaxLifetime(); got != 5*time.Minute {
		t.Errorf("ConnMaxLifetime() = %v, want 5m", got)
	}
	if got := (Config{ConnMaxLifetimeMin: 12}).ConnMaxLifetime(); got != 12*time.Minute {
		t.Errorf("ConnMaxLifetime() = %v, want 12m", got)
	}
}
