package httpmw

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// WithRateLimit applies a per-client-IP token bucket. Limiters for idle
// clients are evicted lazily so the map does not grow without bound.
func WithRateLimit(rps rate.Limit, burst int) func(http.Handler) http.Handler {
	rl := &ipRateLimiter{
		rps:     rps,
		burst:   burst,
		clients: map[string]*clientLimiter{},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*clientLimiter
	sweep   time.Time
}

const clientIdleEviction = 10 * time.Minute

func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.sweep) > clientIdleEviction {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > clientIdleEviction {
				delete(rl.clients, k)
			}
		}
		rl.sweep = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.Allow()
}
