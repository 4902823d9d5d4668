package web

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/moimlab/moim/server/auth"
	"github.com/moimlab/moim/server/database"
)

var publicRoutes = []string{
	"POST /auth/sign-up",
	"POST /auth/login",
	"GET /categories",
	"GET /cities",
}

func isPublic(r *http.Request) bool {
	route := r.Method + " " + r.URL.Path
	for _, public := range publicRoutes {
		if route == public {
			return true
		}
	}
	return false
}

// auth resolves the bearer token into a session and stores it on the
// request context. Requests outside the public routes fail with 401
// when the token is missing, unknown or expired.
func (h *handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		session, err := h.DB.GetSessionWithUser(ctx, token)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) || errors.Is(err, database.ErrSessionExpired) {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}
			slog.ErrorContext(ctx, "failed to get session", slog.Any("error", err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.SetSession(ctx, *session)))
	})
}

const limiterIdleTTL = time.Hour

func newIPLimiters(every rate.Limit, burst int) *ipLimiters {
	return &ipLimiters{
		every: every,
		burst: burst,
		seen:  map[string]*ipLimiter{},
	}
}

// ipLimiters tracks one token bucket per client IP. Entries idle for
// longer than limiterIdleTTL are swept on the next lookup, so the map
// stays bounded by the set of recently active clients.
type ipLimiters struct {
	mu    sync.Mutex
	every rate.Limit
	burst int
	seen  map[string]*ipLimiter
}

type ipLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

func (l *ipLimiters) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for seenIP, limiter := range l.seen {
		if now.Sub(limiter.lastSeen) > limiterIdleTTL {
			delete(l.seen, seenIP)
		}
	}

	limiter, ok := l.seen[ip]
	if !ok {
		limiter = &ipLimiter{Limiter: rate.NewLimiter(l.every, l.burst)}
		l.seen[ip] = limiter
	}
	limiter.lastSeen = now

	return limiter.Allow()
}

// rateLimit throttles credential endpoints per client IP.
func (h *handler) rateLimit(next http.Handler) http.Handler {
	limiters := newIPLimiters(rate.Every(time.Duration(h.Cfg.Auth.LoginEvery)), h.Cfg.Auth.LoginBurst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiters.allow(ip, h.Now()) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
