package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter throttles a route per caller. Authenticated callers are keyed by
// user id, anonymous ones by remote IP. A caller that exceeds its budget is
// blocked for blockTime. Callers idle longer than idleTTL are evicted.
type RateLimiter struct {
	log       *zap.Logger
	callers   map[string]*caller
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type caller struct {
	limiter      *rate.Limiter
	blockedUntil time.Time
	lastSeen     time.Time
}

func NewRateLimiter(log *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	return &RateLimiter{
		log:       log,
		callers:   make(map[string]*caller),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		// a refilled bucket and an expired block carry no state worth keeping
		idleTTL: per + blockTime,
		now:     time.Now,
	}
}

func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)
		if !l.allow(key) {
			l.log.Warn("RateLimiter.Limit request throttled",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String("caller", key),
			)
			utils.BuildErrorResponse(l.log, w, exceptions.ErrTooManyRequests(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, exists := l.callers[key]
	if !exists {
		c = &caller{limiter: rate.NewLimiter(rate.Every(l.per/time.Duration(l.requests)), l.requests)}
		l.callers[key] = c
	}
	c.lastSeen = now

	if now.Before(c.blockedUntil) {
		return false
	}
	if !c.limiter.AllowN(now, 1) {
		c.blockedUntil = now.Add(l.blockTime)
		return false
	}
	return true
}

// sweep drops idle callers at most once per idleTTL. Caller must hold mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now
	for key, c := range l.callers {
		if now.Sub(c.lastSeen) >= l.idleTTL && !now.Before(c.blockedUntil) {
			delete(l.callers, key)
		}
	}
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.callers)
}

func callerKey(r *http.Request) string {
	if userID := utils.GetAuthUserID(r.Context()); userID != "" {
		return "user:" + userID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
