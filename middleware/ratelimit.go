package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// staleAfter is how long an idle client entry survives before it is pruned.
const staleAfter = 10 * time.Minute

type throttleClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle rate-limits requests per client IP. The menu and order route
// groups each carry their own Throttle so heavy menu browsing cannot starve
// order traffic; limits come from configuration.
type Throttle struct {
	mu        sync.Mutex
	clients   map[string]*throttleClient
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

// NewThrottle creates a Throttle allowing perMinute sustained requests per
// client with the given burst.
func NewThrottle(perMinute, burst int) *Throttle {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		clients:   make(map[string]*throttleClient),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

func (t *Throttle) allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if now.Sub(t.lastSweep) > staleAfter {
		for addr, c := range t.clients {
			if now.Sub(c.lastSeen) > staleAfter {
				delete(t.clients, addr)
			}
		}
		t.lastSweep = now
	}

	c, ok := t.clients[ip]
	if !ok {
		c = &throttleClient{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.Allow()
}

// Handler returns the gin middleware enforcing the limit.
func (t *Throttle) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}
