package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend/utils"
)

const defaultTrackedClients = 10_000

// RateLimiter holds one token bucket per client key. Least recently seen
// clients are evicted once the cache is full.
type RateLimiter struct {
	clients *lru.Cache
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows limit requests per window with a burst of limit.
func NewRateLimiter(limit int, window time.Duration) (*RateLimiter, error) {
	clients, err := lru.New(defaultTrackedClients)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		clients: clients,
		limit:   rate.Limit(float64(limit) / window.Seconds()),
		burst:   limit,
	}, nil
}

func (rl *RateLimiter) Allow(key string) bool {
	if v, ok := rl.clients.Get(key); ok {
		return v.(*rate.Limiter).Allow()
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	if prev, found, _ := rl.clients.PeekOrAdd(key, limiter); found {
		limiter = prev.(*rate.Limiter)
	}
	return limiter.Allow()
}

// RateLimit limits requests per client IP. A non-positive limit disables it.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	limiter, err := NewRateLimiter(limit, window)
	if err != nil {
		panic(err)
	}

	return func(c *fiber.Ctx) error {
		ip := utils.GetIPAddress(c)
		if !limiter.Allow(ip) {
			slog.Warn("Rate limit exceeded",
				slog.String("type", "http"),
				slog.String("ip", ip),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.Int("limit", limit),
				slog.Duration("window", window))

			return utils.SendError(c, fiber.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests. Please try again later.", nil)
		}
		return c.Next()
	}
}
