package authorize

import (
	"context"
	"log/slog"

	"github.com/Alijeyrad/mindwell_backend/config"
)

type Config struct {
	EnableAudit bool
}

func FromCentralConfig(c config.AuthorizationConfig) Config {
	return Config{EnableAudit: c.EnableAudit}
}

// NewFromCentral builds a seeded authorizer, wrapped with audit logging when
// enabled.
func NewFromCentral(ctx context.Context, c config.AuthorizationConfig, logger *slog.Logger) (IAuthorization, error) {
	cfg := FromCentralConfig(c)

	e, err := NewEnforcer()
	if err != nil {
		return nil, err
	}
	auth, err := NewAuthorization(e)
	if err != nil {
		return nil, err
	}
	if err := SeedDefaultPolicies(ctx, auth); err != nil {
		return nil, err
	}

	if cfg.EnableAudit {
		return NewAuditedAuthorization(auth, logger), nil
	}
	return auth, nil
}
