package server

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/medassist/medassist/internal/auth"
)

// rateLimiter is a fixed-window per-client request limiter. Clients are
// keyed by a hash of their bearer token when present, otherwise by IP.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*windowCounter
}

type windowCounter struct {
	windowStart time.Time
	count       int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*windowCounter),
	}
}

// allow records a request for the client and reports whether it is within
// the limit.
func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok || now.Sub(c.windowStart) >= l.window {
		l.clients[key] = &windowCounter{windowStart: now, count: 1}
		l.sweep(now)
		return true
	}

	c.count++
	return c.count <= l.limit
}

// sweep drops counters whose window has long passed. Called with the lock
// held, only on window rollover, to bound map growth.
func (l *rateLimiter) sweep(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.windowStart) >= 2*l.window {
			delete(l.clients, key)
		}
	}
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !l.allow(clientKey(r), time.Now()) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the requesting client. Authenticated clients are
// keyed by token hash so a shared NAT does not exhaust their quota.
func clientKey(r *http.Request) string {
	if token := auth.BearerToken(r); token != "" {
		sum := sha256.Sum256([]byte(token))
		return "token:" + hex.EncodeToString(sum[:8])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
