package middleware

import (
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/campuscollab/server/internal/shared/errors"
	"github.com/campuscollab/server/internal/shared/logger"
	"github.com/campuscollab/server/internal/shared/ratelimit"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitReset is the header for reset time.
	RateLimitReset = "X-RateLimit-Reset"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Name scopes the counters so separate routes do not share a budget.
	Name   string
	Limit  int
	Window time.Duration
	// KeyFunc identifies the caller. Defaults to the client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a middleware that rejects callers over their budget with 429.
// A nil limiter or a non-positive limit disables it. Limiter failures are
// logged and the request is let through.
func RateLimit(limiter ratelimit.Limiter, cfg RateLimitConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string {
			return "ip:" + c.ClientIP()
		}
	}

	return func(c *gin.Context) {
		if limiter == nil || cfg.Limit <= 0 {
			c.Next()
			return
		}

		key := cfg.Name + ":" + cfg.KeyFunc(c)
		res, err := limiter.Allow(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			log.Warn("rate limit check failed", "key", key, logger.Err(err))
			c.Next()
			return
		}

		c.Header(RateLimitLimit, strconv.Itoa(cfg.Limit))
		c.Header(RateLimitRemaining, strconv.Itoa(res.Remaining))
		c.Header(RateLimitReset, strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			c.Header(RetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			response.AbortWithCode(c, http.StatusTooManyRequests, apperrors.CodeRateLimited,
				"too many requests, please try again later")
			return
		}

		c.Next()
	}
}

// RateLimitByUser limits authenticated callers by user ID and anonymous
// ones by IP. It must run after Auth.
func RateLimitByUser(limiter ratelimit.Limiter, name string, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return RateLimit(limiter, RateLimitConfig{
		Name:   name,
		Limit:  limit,
		Window: window,
		KeyFunc: func(c *gin.Context) string {
			if userID := GetUserID(c); userID != uuid.Nil {
				return "user:" + userID.String()
			}
			return "ip:" + c.ClientIP()
		},
	}, log)
}
