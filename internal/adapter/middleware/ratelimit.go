package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Policy is a fixed-window rate limit: at most Limit requests per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Per-endpoint-class policies. Values follow the product's abuse budget:
// reads are cheap, writes and uploads are not.
var DefaultPolicies = map[string]Policy{
	"read":     {Limit: 500, Window: time.Hour},
	"create":   {Limit: 20, Window: time.Hour},
	"update":   {Limit: 30, Window: time.Hour},
	"upload":   {Limit: 10, Window: time.Hour},
	"feedback": {Limit: 30, Window: time.Hour},
	"auth":     {Limit: 10, Window: time.Hour},
	"admin":    {Limit: 50, Window: time.Hour},
}

// RateLimit counts requests per client IP in redis. A redis outage fails
// open: the request proceeds and the error is logged.
func RateLimit(rdb *redis.Client, class string, p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil {
				return next(c)
			}
			key := buildRateKey(class, c.RealIP())

			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("ratelimit: redis incr %s: %v", key, err)
				return next(c)
			}
			if n == 1 {
				if err := rdb.Expire(ctx, key, p.Window).Err(); err != nil {
					log.Printf("ratelimit: redis expire %s: %v", key, err)
				}
			}
			if n > int64(p.Limit) {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"status":  "error",
					"message": "Too many requests. Please try again later.",
					"data":    nil,
				})
			}
			return next(c)
		}
	}
}

func buildRateKey(class, ip string) string {
	return fmt.Sprintf("rl:%s:%s", class, ip)
}
