package handlers

import (
	"college-portal/app/server/jwt"
	"college-portal/app/server/media"
	"college-portal/app/server/models"
	"college-portal/app/server/repositories"
	"college-portal/app/server/services"
	"go.uber.org/zap"
	"time"
)

type App struct {
	l        *zap.Logger                         // 日志
	accounts repositories.Accounts               // 账户
	notices  repositories.Records[models.Notice] // 公告
	events   repositories.Records[models.Event]  // 活动图片
	queries  repositories.Records[models.Query]  // 留言
	eventSvc *services.EventService              // 活动图片的上传与删除
	jwt      *jwt.JWT                            // JWT ，用于无状态验证
	isProd   bool
	now      func() time.Time
}

type Stores struct {
	Accounts repositories.Accounts
	Notices  repositories.Records[models.Notice]
	Events   repositories.Records[models.Event]
	Queries  repositories.Records[models.Query]
	Media    media.Store
}

func NewApp(l *zap.Logger, stores Stores, j *jwt.JWT, isProd bool) *App {
	return &App{
		l:        l,
		accounts: stores.Accounts,
		notices:  stores.Notices,
		events:   stores.Events,
		queries:  stores.Queries,
		eventSvc: services.NewEventService(l, stores.Events, stores.Media),
		jwt:      j,
		isProd:   isProd,
		now:      time.Now,
	}
}
