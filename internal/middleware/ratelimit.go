package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters hands out one token bucket per client address and drops
// buckets idle for longer than idle.
type ipLimiters struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	byIP      map[string]*ipLimiter
}

func newIPLimiters(perMinute int, idle time.Duration) *ipLimiters {
	if perMinute < 1 {
		perMinute = 1
	}
	return &ipLimiters{
		every: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
		idle:  idle,
		now:   time.Now,
		byIP:  make(map[string]*ipLimiter),
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		for key, e := range l.byIP {
			if now.Sub(e.lastSeen) >= l.idle {
				delete(l.byIP, key)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.byIP[ip]
	if !ok {
		e = &ipLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.byIP[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimit allows perMinute requests per client IP with an equal burst.
// The client IP is r.RemoteAddr, so chi's RealIP must only run in front of
// it when a trusted proxy sets the forwarding headers.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	limiters := newIPLimiters(perMinute, limiterIdleTTL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(ip); err == nil {
				ip = host
			}
			if !limiters.get(ip).Allow() {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
