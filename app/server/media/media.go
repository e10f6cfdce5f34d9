// Package media 负责把活动图片转存到外部图床，并在删除活动时清理图床上的文件。
package media

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNoFile    = errors.New("no image file uploaded")
	ErrNotImage  = errors.New("only image files are allowed")
	ErrTooLarge  = errors.New("image file is too large")
	ErrBadResult = errors.New("invalid file upload data")
)

// Upload 是一次待转存的文件
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Object 是图床上已保存的文件
type Object struct {
	URL string // 持久访问地址
	Ref string // 删除时使用的句柄
}

type Store interface {
	Upload(ctx context.Context, upload *Upload) (*Object, error)
	Delete(ctx context.Context, ref string) error
}
