package handlers

import (
	"college-portal/app/server/middlewares"
	"college-portal/app/server/ratelimit"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const eventBodyLimit = "16M" // 超过 5 MiB 但在此范围内的文件由 media.Validate 返回 400

// Limiters 是各路由组各自的限流器
type Limiters struct {
	Events  *ratelimit.Limiter
	Notices *ratelimit.Limiter
	Queries *ratelimit.Limiter
}

// RegisterHandlers 绑定所有接口。限流在认证之前执行
func (a *App) RegisterHandlers(e *echo.Echo, limiters Limiters) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = a.HTTPErrorHandler

	authenticate := middlewares.Authenticate(a.jwt)
	adminAuth := middlewares.AdminAuth(a.jwt)
	limitEvents := middlewares.RateLimit(limiters.Events, a.l)
	limitNotices := middlewares.RateLimit(limiters.Notices, a.l)
	limitQueries := middlewares.RateLimit(limiters.Queries, a.l)

	e.GET("/health", a.HealthCheck)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", a.AuthLogin)
	auth.GET("/me", a.AuthMe, authenticate)
	auth.PUT("/password", a.AuthPasswordUpdate, authenticate)

	notices := api.Group("/notices")
	notices.GET("", a.NoticeList)
	notices.POST("", a.NoticeCreate, limitNotices, adminAuth)
	notices.GET("/:id", a.NoticeGet, adminAuth)
	notices.PUT("/:id", a.NoticeUpdate, limitNotices, adminAuth)
	notices.DELETE("/:id", a.NoticeDelete, limitNotices, adminAuth)

	events := api.Group("/events")
	events.GET("", a.EventList)
	events.POST("", a.EventCreate, limitEvents, adminAuth, middleware.BodyLimit(eventBodyLimit))
	events.DELETE("/:id", a.EventDelete, limitEvents, adminAuth)

	queries := api.Group("/queries")
	queries.GET("", a.QueryList, adminAuth)
	queries.POST("", a.QueryCreate, limitQueries)
	queries.GET("/:id", a.QueryGet, adminAuth)
	queries.PUT("/:id", a.QueryUpdate, adminAuth)
	queries.DELETE("/:id", a.QueryDelete, adminAuth)
}
