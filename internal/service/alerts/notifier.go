package alerts

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Alijeyrad/mindwell_backend/config"
	"github.com/Alijeyrad/mindwell_backend/pkg/constants"
	"github.com/Alijeyrad/mindwell_backend/pkg/email"
	"github.com/Alijeyrad/mindwell_backend/pkg/observability"
	"github.com/Alijeyrad/mindwell_backend/pkg/sms"
)

// Mailer is satisfied by *email.Client.
type Mailer interface {
	IsEnabled() bool
	Send(ctx context.Context, m email.Message) error
}

// Texter is satisfied by *sms.Client.
type Texter interface {
	IsEnabled() bool
	SendAlert(ctx context.Context, phone, kind, userID string) error
}

// Notifier escalates flag events to the on-call counselor.
type Notifier struct {
	cfg     config.AlertsConfig
	phone   string
	mail    Mailer
	text    Texter
	metrics *observability.DomainMetrics
	logger  *slog.Logger
}

func NewNotifier(cfg config.AlertsConfig, mail Mailer, text Texter, metrics *observability.DomainMetrics, logger *slog.Logger) (*Notifier, error) {
	if logger == nil {
		logger = slog.Default()
	}

	n := &Notifier{cfg: cfg, mail: mail, text: text, metrics: metrics, logger: logger}

	if cfg.CounselorPhone != "" {
		phone, err := sms.NormalizePhone(cfg.CounselorPhone, cfg.PhoneRegion)
		if err != nil {
			return nil, err
		}
		n.phone = phone
	}

	return n, nil
}

// Notify sends every configured channel and returns the joined failures.
// Disabled channels are skipped silently.
func (n *Notifier) Notify(ctx context.Context, ev FlagEvent) error {
	if !n.cfg.Enabled {
		return nil
	}

	var errs []error

	if n.mail != nil && n.mail.IsEnabled() && n.cfg.CounselorEmail != "" {
		msg := email.BuildFlagAlertEmail(email.AlertEmailData{
			To:         n.cfg.CounselorEmail,
			Kind:       ev.Kind,
			UserID:     ev.UserID,
			Severity:   ev.Severity,
			Excerpt:    ev.Excerpt,
			OccurredAt: ev.OccurredAt,
			AppName:    constants.DisplayName,
		})
		if err := n.mail.Send(ctx, msg); err != nil {
			n.metrics.AlertFailed(ctx, "email")
			errs = append(errs, err)
		}
	}

	if n.text != nil && n.text.IsEnabled() && n.phone != "" {
		if err := n.text.SendAlert(ctx, n.phone, ev.Kind, ev.UserID); err != nil {
			n.metrics.AlertFailed(ctx, "sms")
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		n.logger.ErrorContext(ctx, "counselor alert failed",
			slog.String("kind", ev.Kind),
			slog.String("user_id", ev.UserID),
			slog.Any("error", err),
		)
		return err
	}

	n.logger.InfoContext(ctx, "counselor alerted",
		slog.String("kind", ev.Kind),
		slog.String("user_id", ev.UserID),
	)
	return nil
}
