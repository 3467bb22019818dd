package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/mindwell_backend/internal/service/alerts"
	"github.com/Alijeyrad/mindwell_backend/pkg/constants"
)

const (
	alertQueue   = "mindwell-alerts"
	alertTimeout = 30 * time.Second
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc       fx.Lifecycle
	NC       *nats.Conn
	Notifier *alerts.Notifier
}

func RegisterWorkers(p WorkerParams) {
	var sub *nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			sub, err = startAlertWorker(p.NC, p.Notifier)
			return err
		},
		OnStop: func(ctx context.Context) error {
			// The connection drain in ProvideNatsClient flushes pending messages.
			if sub == nil {
				return nil
			}
			return sub.Unsubscribe()
		},
	})
}

// ---------------------------------------------------------------------------
// alert_worker
// ---------------------------------------------------------------------------

// startAlertWorker joins a queue group so each flag event alerts the counselor
// once, however many instances run.
func startAlertWorker(nc *nats.Conn, n *alerts.Notifier) (*nats.Subscription, error) {
	sub, err := nc.QueueSubscribe(constants.SubjectAllFlagged, alertQueue, alertHandler(n))
	if err != nil {
		slog.Error("alert_worker: subscribe flagged events failed", "err", err)
		return nil, err
	}
	slog.Info("alert_worker: started", "subject", constants.SubjectAllFlagged)
	return sub, nil
}

func alertHandler(n *alerts.Notifier) nats.MsgHandler {
	return func(msg *nats.Msg) {
		ev, err := alerts.DecodeEvent(msg.Data)
		if err != nil {
			slog.Warn("alert_worker: dropping malformed event", "subject", msg.Subject, "err", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()

		// Notify logs its own failures.
		_ = n.Notify(ctx, ev)
	}
}
