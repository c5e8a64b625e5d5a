package security

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"videotube-server/internal/util"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type peerAddrKey struct{}

// LoginLimiter : token bucket на IP для login и refresh-token.
// Ключ это адрес TCP соединения; заголовки X-Forwarded-For учитываются только от доверенных прокси.
type LoginLimiter struct {
	mu             sync.Mutex
	visitors       map[string]*visitor
	limit          rate.Limit
	burst          int
	idleTTL        time.Duration
	trustedProxies map[string]struct{}
}

func NewLoginLimiter(requestsPerMinute int, burst int) *LoginLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &LoginLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

// TrustProxies : для запросов от этих адресов ключом будет адрес клиента, выставленный прокси
func (l *LoginLimiter) TrustProxies(addrs ...string) *LoginLimiter {
	l.trustedProxies = make(map[string]struct{}, len(addrs))
	for _, addr := range addrs {
		l.trustedProxies[addr] = struct{}{}
	}
	return l
}

// RememberPeer : сохраняет адрес соединения до того, как middleware.RealIP перепишет RemoteAddr
func RememberPeer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerAddrKey{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientKey(r)) {
			w.Header().Set("Retry-After", "60")
			util.HandleError(w, "too many requests, try again later", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup : удаляет неактивные IP до отмены ctx
func (l *LoginLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.removeIdle(time.Now())
		}
	}
}

func (l *LoginLimiter) removeIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, key)
		}
	}
}

func (l *LoginLimiter) clientKey(r *http.Request) string {
	peer := hostOf(r.RemoteAddr)
	if original, ok := r.Context().Value(peerAddrKey{}).(string); ok && original != "" {
		peer = hostOf(original)
	}
	if _, trusted := l.trustedProxies[peer]; trusted {
		return hostOf(r.RemoteAddr)
	}
	return peer
}

func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
