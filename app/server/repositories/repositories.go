// Package repositories 封装对数据库的访问，每个集合一个存储对象。
package repositories

import (
	"college-portal/app/server/models"
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// ListOptions 控制列表分页， ShowAll 时忽略 Page 与 Limit
type ListOptions struct {
	ShowAll bool
	Page    int // 从 0 开始
	Limit   int
}

// Record 是可以按通用方式增删改查的内容记录
type Record interface {
	models.Notice | models.Event | models.Query
}

// Records 对应一个内容集合，列表按创建时间倒序
type Records[M Record] interface {
	List(ctx context.Context, opts ListOptions) ([]M, int64, error)
	Get(ctx context.Context, id uint) (*M, error)
	Create(ctx context.Context, record *M) error
	Update(ctx context.Context, record *M) error
	Delete(ctx context.Context, id uint) error
}

type Accounts interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	UpdatePassword(ctx context.Context, id uint, password string) error
	DeleteByUsername(ctx context.Context, username string) error
	Count(ctx context.Context) (int64, error)
}
