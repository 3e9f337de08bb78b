package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const window = time.Minute // Окно времени для сброса счетчика

// clientState хранит состояние rate limiter'а для каждого клиента
type clientState struct {
	lastRequest  time.Time
	requestCount int
	mu           sync.Mutex
}

// RateLimiter ограничивает количество запросов от одного IP-адреса.
type RateLimiter struct {
	maxRequests int
	mu          sync.Mutex // Мьютекс для доступа к map clients
	clients     map[string]*clientState
	now         func() time.Time
}

// NewRateLimiter returns a limiter allowing maxRequests per minute per IP.
// maxRequests <= 0 disables limiting.
func NewRateLimiter(maxRequests int) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		clients:     make(map[string]*clientState),
		now:         time.Now,
	}
}

// Middleware wraps next with the limiter.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Реакции не ограничиваем: каждый клик должен дойти до счетчика
		if l.maxRequests <= 0 || strings.Contains(r.URL.Path, "/reactions/") || r.Method == http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !l.allow(ip) {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
			if r.Header.Get("X-Requested-With") == "XMLHttpRequest" || strings.Contains(r.Header.Get("Accept"), "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Too Many Requests"}`))
				return
			}
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	state, exists := l.clients[ip]
	if !exists {
		state = &clientState{}
		l.clients[ip] = state
	}
	l.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()

	now := l.now()
	if now.Sub(state.lastRequest) > window {
		// Сбросить счетчик, если окно времени прошло
		state.requestCount = 0
		state.lastRequest = now
	}
	state.requestCount++
	return state.requestCount <= l.maxRequests
}

// Cleanup удаляет записи без активности в течение 2-х окон, чтобы избежать утечек памяти.
func (l *RateLimiter) Cleanup() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, state := range l.clients {
		state.mu.Lock()
		if now.Sub(state.lastRequest) > 2*window {
			delete(l.clients, ip)
		}
		state.mu.Unlock()
	}
}
