package main

import (
	"college-portal/app/server/apidocs"
	"college-portal/app/server/config"
	"college-portal/app/server/constants"
	"college-portal/app/server/handlers"
	"college-portal/app/server/inits"
	"college-portal/app/server/jwt"
	"college-portal/app/server/middlewares"
	"college-portal/app/server/models"
	"college-portal/app/server/ratelimit"
	"college-portal/app/server/repositories"
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString, cfg.Security.AdminUsername, cfg.Security.AdminPassword)
	if err != nil {
		l.Error("error initializing DB connection", zap.Error(err))
		return err
	}

	// 初始化 redis 连接，未配置时使用进程内计数
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Error("error initializing Redis connection", zap.Error(err))
		return err
	}
	var store ratelimit.Store
	if rdb != nil {
		defer rdb.Close()
		store = ratelimit.NewRedisStore(rdb)
	} else {
		l.Warn("REDIS_CONN not set, rate limit counters are kept in memory")
		store = ratelimit.NewMemoryStore()
	}

	limiters, err := newLimiters(store)
	if err != nil {
		l.Error("error initializing rate limiters", zap.Error(err))
		return err
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.JWTSecret, constants.AuthTokenDuration)
	if err != nil {
		l.Error("error initializing JWT", zap.Error(err))
		return err
	}

	// 初始化图床
	mediaStore, err := inits.Media(ctx, cfg)
	if err != nil {
		l.Error("error initializing media store", zap.Error(err))
		return err
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, handlers.Stores{
		Accounts: repositories.NewAccounts(db),
		Notices:  repositories.NewRecords[models.Notice](db),
		Events:   repositories.NewRecords[models.Event](db),
		Queries:  repositories.NewRecords[models.Query](db),
		Media:    mediaStore,
	}, j, cfg.System.IsProd)

	// 准备 echo 服务
	e, err := newEcho(cfg, l, handlerApp, limiters)
	if err != nil {
		l.Error("error initializing server", zap.Error(err))
		return err
	}

	// 启动 echo 服务，收到信号后优雅退出
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	l.Info("shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func newLimiters(store ratelimit.Store) (limiters handlers.Limiters, err error) {
	if limiters.Events, err = ratelimit.New(store, constants.RateLimitGroupEvents, constants.RateLimitMaxEvents, constants.RateLimitWindow); err != nil {
		return limiters, err
	}
	if limiters.Notices, err = ratelimit.New(store, constants.RateLimitGroupNotices, constants.RateLimitMaxNotices, constants.RateLimitWindow); err != nil {
		return limiters, err
	}
	if limiters.Queries, err = ratelimit.New(store, constants.RateLimitGroupQueries, constants.RateLimitMaxQueries, constants.RateLimitWindow); err != nil {
		return limiters, err
	}
	return limiters, nil
}

func newEcho(cfg *config.Config, l *zap.Logger, app *handlers.App, limiters handlers.Limiters) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// 客户端地址，限流依赖于此
	extractor, err := ipExtractor(cfg.System.TrustedProxies)
	if err != nil {
		return nil, err
	}
	e.IPExtractor = extractor

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middlewares.RequestLogger(l))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.System.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 绑定 echo 服务
	app.RegisterHandlers(e, limiters)

	// 静态页面
	if cfg.Static.AdminDir != "" {
		e.Group("/admin", middleware.StaticWithConfig(middleware.StaticConfig{
			Root:       cfg.Static.AdminDir,
			HTML5:      true,
			IgnoreBase: true,
		}))
	}
	if cfg.Static.PublicDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:    cfg.Static.PublicDir,
			HTML5:   true,
			Skipper: skipNonPublic,
		}))
	} else {
		e.GET("/", app.Banner)
	}

	// 添加 API 文档
	if !cfg.System.IsProd {
		if spec, err := apidocs.SpecJSON(context.Background()); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc("/api", spec))
		}
	}

	return e, nil
}

// skipNonPublic 让接口与后台路径不落到前台页面上
func skipNonPublic(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/health" ||
		p == "/api" || strings.HasPrefix(p, "/api/") ||
		p == "/admin" || strings.HasPrefix(p, "/admin/")
}

// ipExtractor 只在请求来自可信代理时读取 X-Forwarded-For
func ipExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	options := make([]echo.TrustOption, 0, len(trustedProxies))
	for _, proxy := range trustedProxies {
		if !strings.Contains(proxy, "/") {
			if strings.Contains(proxy, ":") {
				proxy += "/128"
			} else {
				proxy += "/32"
			}
		}
		_, ipNet, err := net.ParseCIDR(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", proxy, err)
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(options...), nil
}
