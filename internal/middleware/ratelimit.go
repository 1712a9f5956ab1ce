package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
	"todoWeb/internal/logger"

	"go.uber.org/zap"
)

// sweepThreshold: после стольких клиентов истёкшие окна вычищаются.
const sweepThreshold = 1024

type window struct {
	count   int
	resetAt time.Time
}

// limiter считает запросы клиента в фиксированном окне.
type limiter struct {
	mtx     sync.Mutex
	rpm     int
	period  time.Duration
	clients map[string]*window
}

func newLimiter(rpm int, period time.Duration) *limiter {
	return &limiter{
		rpm:     rpm,
		period:  period,
		clients: make(map[string]*window),
	}
}

// take засчитывает запрос; ok=false, если лимит окна исчерпан.
func (l *limiter) take(client string, now time.Time) (remaining int, resetAt time.Time, ok bool) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	w, exists := l.clients[client]
	if !exists || now.After(w.resetAt) {
		if !exists && len(l.clients) >= sweepThreshold {
			l.sweep(now)
		}
		w = &window{resetAt: now.Add(l.period)}
		l.clients[client] = w
	}

	if w.count >= l.rpm {
		return 0, w.resetAt, false
	}
	w.count++
	return l.rpm - w.count, w.resetAt, true
}

func (l *limiter) sweep(now time.Time) {
	for client, w := range l.clients {
		if now.After(w.resetAt) {
			delete(l.clients, client)
		}
	}
}

// RateLimit ограничивает число запросов с одного IP в минуту. rpm <= 0 отключает лимит.
// Отказ показывается как страница, с которой пришёл запрос, с сообщением.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	if rpm <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := newLimiter(rpm, time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			ip := clientIP(r)
			remaining, resetAt, ok := l.take(ip, now)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retryAfter := int(math.Ceil(resetAt.Sub(now).Seconds()))
				logger.Warn("HTTP: Превышен лимит запросов",
					zap.String("client_ip", ip),
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestID(r.Context())))

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				renderView(w, r, http.StatusTooManyRequests, viewForPath(r.URL.Path), MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
