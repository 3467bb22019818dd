package app

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/mindwell_backend/config"
	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/alerts"
	"github.com/Alijeyrad/mindwell_backend/internal/service/genai"
	"github.com/Alijeyrad/mindwell_backend/pkg/authorize"
	"github.com/Alijeyrad/mindwell_backend/pkg/crypto"
	"github.com/Alijeyrad/mindwell_backend/pkg/database"
	"github.com/Alijeyrad/mindwell_backend/pkg/email"
	"github.com/Alijeyrad/mindwell_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/mindwell_backend/pkg/redis"
	"github.com/Alijeyrad/mindwell_backend/pkg/sms"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideRepoClient),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideDomainMetrics),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvideEventPublisher),
	fx.Provide(ProvideGenerator),
)

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return db.Close()
		},
	})
	return db, nil
}

// ProvideRepoClient seals chat text at rest when database.encryption_key is set.
func ProvideRepoClient(db *sql.DB, cfg *config.Config) (*repo.Client, error) {
	var opts []repo.Option
	if cfg.Database.EncryptionKey != "" {
		cipher, err := crypto.NewCipherFromHex(cfg.Database.EncryptionKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, repo.WithCipher(cipher))
	} else {
		slog.Warn("database.encryption_key not set; chat transcripts are stored in plaintext")
	}
	return repo.NewClient(db, opts...), nil
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideAuthorization(cfg *config.Config) (authorize.IAuthorization, error) {
	return authorize.NewFromCentral(context.Background(), cfg.Authorization, slog.Default())
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS)
}

func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name("mindwell"))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideEventPublisher(nc *nats.Conn) alerts.Publisher {
	return nc
}

func ProvideGenerator(cfg *config.Config) genai.Generator {
	if cfg.GenAI.APIKey == "" {
		slog.Warn("genai.api_key not set; chat replies will use fallback text")
	}
	return genai.NewFromConfig(cfg.GenAI)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideDomainMetrics depends on the provider so counters register on the
// exporting meter. Without telemetry the metrics are a nil no-op.
func ProvideDomainMetrics(p *observability.Provider) (*observability.DomainMetrics, error) {
	if p == nil {
		return nil, nil
	}
	return observability.NewDomainMetrics()
}
