package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter keeps one token bucket per client IP. Stale entries are
// swept periodically so the map does not grow without bound.
type clientLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientEntry
	rps          rate.Limit
	burst        int
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	cl := &clientLimiter{
		clients:     make(map[string]*clientEntry),
		rps:         rate.Limit(rps),
		burst:       burst,
		stopCleanup: make(chan struct{}),
	}
	go cl.startCleanup()
	return cl
}

func (cl *clientLimiter) allow(clientIP string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	entry, exists := cl.clients[clientIP]
	if !exists {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[clientIP] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// startCleanup runs periodic cleanup to remove stale client entries
func (cl *clientLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cl.cleanupStaleEntries()
		case <-cl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (cl *clientLimiter) cleanupStaleEntries() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, entry := range cl.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(cl.clients, ip)
		}
	}
}

// stop gracefully shuts down the cleanup goroutine
func (cl *clientLimiter) stop() {
	cl.shutdownOnce.Do(func() {
		close(cl.stopCleanup)
	})
}
