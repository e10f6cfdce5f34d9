package middlewares

import (
	"college-portal/app/server/constants"
	"college-portal/app/server/ratelimit"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

// RateLimit 按客户端地址计数，超过上限返回 429 。计数存储不可用时放行请求
func RateLimit(limiter *ratelimit.Limiter, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := c.RealIP()

			res, err := limiter.Allow(c.Request().Context(), client)
			if err != nil {
				l.Error("failed to check rate limit", zap.String("group", limiter.Group()), zap.String("client", client), zap.Error(err))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

			if !res.Allowed {
				h.Set("Retry-After", strconv.FormatInt(res.RetryIn, 10))
				return echo.NewHTTPError(http.StatusTooManyRequests, constants.RateLimitMessage)
			}

			return next(c)
		}
	}
}
