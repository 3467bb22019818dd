package app

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/mindwell_backend/config"
	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/alerts"
	"github.com/Alijeyrad/mindwell_backend/internal/service/analytics"
	"github.com/Alijeyrad/mindwell_backend/internal/service/assessment"
	"github.com/Alijeyrad/mindwell_backend/internal/service/chat"
	"github.com/Alijeyrad/mindwell_backend/internal/service/genai"
	"github.com/Alijeyrad/mindwell_backend/internal/service/safety"
	"github.com/Alijeyrad/mindwell_backend/internal/service/stress"
	"github.com/Alijeyrad/mindwell_backend/internal/service/voice"
	"github.com/Alijeyrad/mindwell_backend/pkg/email"
	"github.com/Alijeyrad/mindwell_backend/pkg/observability"
	pasetotoken "github.com/Alijeyrad/mindwell_backend/pkg/paseto"
	"github.com/Alijeyrad/mindwell_backend/pkg/sms"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideClassifier,
		ProvideAssessmentService,
		ProvideChatService,
		ProvideVoiceService,
		ProvideStressService,
		ProvideAnalyticsService,
		ProvideNotifier,
		ProvidePasetoManager,
	),
)

func ProvideClassifier(cfg *config.Config) *safety.Classifier {
	return safety.NewClassifier(cfg.Safety.ExtraPhrases...)
}

func ProvideAssessmentService(db *repo.Client, events alerts.Publisher, metrics *observability.DomainMetrics) assessment.Service {
	return assessment.New(db, events, metrics, slog.Default())
}

func ProvideChatService(
	db *repo.Client,
	classifier *safety.Classifier,
	gen genai.Generator,
	events alerts.Publisher,
	metrics *observability.DomainMetrics,
) chat.Service {
	return chat.New(chat.Params{
		DB:         db,
		Classifier: classifier,
		Generator:  gen,
		Events:     events,
		Metrics:    metrics,
		Logger:     slog.Default(),
	})
}

func ProvideVoiceService(cfg *config.Config) voice.Service {
	return voice.New(cfg.Voice, slog.Default())
}

func ProvideStressService(db *repo.Client) stress.Service {
	return stress.New(db, slog.Default())
}

func ProvideAnalyticsService(db *repo.Client, rdb *redis.Client, cfg *config.Config) analytics.Service {
	return analytics.New(db, rdb, cfg.Analytics, slog.Default())
}

func ProvideNotifier(
	cfg *config.Config,
	mail *email.Client,
	text *sms.Client,
	metrics *observability.DomainMetrics,
) (*alerts.Notifier, error) {
	return alerts.NewNotifier(cfg.Alerts, mail, text, metrics, slog.Default())
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}
