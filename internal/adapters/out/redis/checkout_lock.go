package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CheckoutLock is a SET NX PX busy flag per session.
type CheckoutLock struct {
	client goredis.UniversalClient
	prefix string
	logger *slog.Logger
}

func NewCheckoutLock(client goredis.UniversalClient, prefix string, logger *slog.Logger) *CheckoutLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutLock{client: client, prefix: prefix, logger: logger}
}

func (l *CheckoutLock) Acquire(
	ctx context.Context,
	venueID kernel.UUID,
	sessionID string,
	ttl time.Duration,
) (func(), error) {
	key := fmt.Sprintf("%scheckout:%s:%s", l.prefix, venueID, sessionID)
	token := kernel.NewUUID().String()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire checkout lock: %w", err)
	}
	if !ok {
		return nil, ports.ErrCheckoutInProgress
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if runErr := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); runErr != nil {
			l.logger.Warn("checkout lock release failed",
				slog.String("key", key),
				slog.String("error", runErr.Error()),
			)
		}
	}, nil
}
