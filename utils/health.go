package utils

import (
	"context"
	"sync"
	"time"
)

const healthPingTimeout = 3 * time.Second

// Pinger is anything whose reachability can be probed. database.Connector satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor probes the store and keeps the latest snapshot.
type HealthMonitor struct {
	mongo Pinger
	now   func() time.Time

	mu      sync.RWMutex
	current HealthStatus
}

// NewHealthMonitor creates a monitor for the given store.
func NewHealthMonitor(mongo Pinger) *HealthMonitor {
	return &HealthMonitor{mongo: mongo, now: time.Now}
}

// Status returns latest stored health snapshot.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Check pings the store now and records the result.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	status := HealthStatus{
		Mongo:     h.mongo.Ping(ctx) == nil,
		CheckedAt: h.now(),
	}
	h.mu.Lock()
	h.current = status
	h.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is done.
func (h *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		h.Check(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Check(ctx)
			}
		}
	}()
}
