package media

import (
	"college-portal/app/server/constants"
	"fmt"
	"mime/multipart"
	"strings"
)

// Validate 在调用图床之前检查文件类型与大小
func Validate(fh *multipart.FileHeader) error {
	if fh == nil {
		return ErrNoFile
	}

	if contentType := fh.Header.Get("Content-Type"); !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}

	if fh.Size > constants.MediaMaxUploadBytes {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, fh.Size)
	}

	return nil
}

// Open 校验后打开上传的文件
func Open(fh *multipart.FileHeader) (*Upload, func() error, error) {
	if err := Validate(fh); err != nil {
		return nil, nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open uploaded file: %w", err)
	}

	return &Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f.Close, nil
}
