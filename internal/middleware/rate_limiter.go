package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

type rateLimiter struct {
	limit     int
	window    time.Duration
	mu        sync.Mutex
	entries   map[string]*rateEntry
	nextPurge time.Time
	now       func() time.Time
}

// RateLimiter allows limit requests per window per client IP. A limit below 1
// disables it.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit < 1 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{limit: limit, window: window, entries: make(map[string]*rateEntry), now: time.Now}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	allowed, retryAfter := rl.allow(c.ClientIP())
	if !allowed {
		secs := int(retryAfter.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
		return
	}
	c.Next()
}

func (rl *rateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.After(rl.nextPurge) {
		rl.purge(now)
		rl.nextPurge = now.Add(5 * rl.window)
	}

	entry, ok := rl.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &rateEntry{windowEnd: now.Add(rl.window)}
		rl.entries[ip] = entry
	}
	entry.count++
	if entry.count > rl.limit {
		return false, entry.windowEnd.Sub(now)
	}
	return true, 0
}

// purge drops expired entries so IPs that never return do not accumulate.
func (rl *rateLimiter) purge(now time.Time) {
	purged := 0
	for ip, entry := range rl.entries {
		if now.After(entry.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(rl.entries)).Msg("rate limiter map purged")
	}
}
