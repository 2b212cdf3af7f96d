package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"menuorder/internal/core/ports"

	"github.com/lib/pq"
)

const pingInterval = 90 * time.Second

// Listener receives the changes other instances NOTIFY and hands them to
// the local publisher. Changes carrying this instance's origin were already
// delivered locally and are skipped.
type Listener struct {
	dsn     string
	channel string
	origin  string
	local   ports.OrderChangePublisher
	logger  *slog.Logger
}

func NewListener(
	dsn, channel, origin string,
	local ports.OrderChangePublisher,
	logger *slog.Logger,
) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		dsn:     dsn,
		channel: channel,
		origin:  origin,
		local:   local,
		logger:  logger.With(slog.String("component", "order_change_listener")),
	}
}

// Run listens until ctx is done. The connection is re-established by pq
// after failures.
func (l *Listener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.dsn, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			l.logger.Warn("listener connection event", slog.Int("event", int(ev)), slog.String("error", err.Error()))
		}
	})
	defer listener.Close()

	if err := listener.Listen(l.channel); err != nil {
		return err
	}
	l.logger.Info("listening for order changes", slog.String("channel", l.channel))

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect; changes sent meanwhile are lost.
			if n == nil {
				continue
			}
			l.handle(ctx, n.Extra)
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				l.logger.Warn("listener ping failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	var change ports.OrderChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		l.logger.Warn("malformed order change payload", slog.String("error", err.Error()))
		return
	}
	if change.Origin == l.origin {
		return
	}
	if err := l.local.Publish(ctx, change); err != nil {
		l.logger.Warn("local order change delivery failed", slog.String("error", err.Error()))
	}
}
