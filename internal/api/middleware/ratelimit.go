package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	pkgErrors "taskboard/pkg/errors"
	"taskboard/pkg/utils"
)

const (
	// maxTrackedClients 超过后淘汰空闲的客户端
	maxTrackedClients = 10000
	clientIdleTTL     = 10 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按客户端 IP 的令牌桶限流
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewRateLimiter perMinute 为每分钟补充的令牌数
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cl, ok := rl.clients[key]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			rl.evictIdle(now)
		}
		cl = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	for key, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > clientIdleTTL {
			delete(rl.clients, key)
		}
	}
}

// RateLimitByIP 超限返回 429
func RateLimitByIP(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			utils.AbortWithError(c, pkgErrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
