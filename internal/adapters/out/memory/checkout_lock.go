package memory

import (
	"context"
	"sync"
	"time"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/ports"
)

type lease struct {
	token   uint64
	expires time.Time
}

// CheckoutLock is the in-process session busy flag.
type CheckoutLock struct {
	mu     sync.Mutex
	leases map[cartKey]lease
	next   uint64
	now    func() time.Time
}

func NewCheckoutLock() *CheckoutLock {
	return &CheckoutLock{leases: make(map[cartKey]lease), now: time.Now}
}

func (l *CheckoutLock) Acquire(
	_ context.Context,
	venueID kernel.UUID,
	sessionID string,
	ttl time.Duration,
) (func(), error) {
	key := keyOf(venueID, sessionID)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	if held, ok := l.leases[key]; ok && now.Before(held.expires) {
		return nil, ports.ErrCheckoutInProgress
	}

	l.next++
	token := l.next
	l.leases[key] = lease{token: token, expires: now.Add(ttl)}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			// An expired lease may already belong to a newer checkout.
			if held, ok := l.leases[key]; ok && held.token == token {
				delete(l.leases, key)
			}
		})
	}, nil
}
