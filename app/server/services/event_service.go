// Package services 编排活动图片的生命周期：上传到图床、保存记录、删除时清理图床。
package services

import (
	"college-portal/app/server/media"
	"college-portal/app/server/models"
	"college-portal/app/server/repositories"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"mime/multipart"
)

var ErrUpstream = errors.New("media store failure")

// DeleteResult 分别记录本地记录与图床文件的删除结果
type DeleteResult struct {
	LocalDeleted    bool
	ExternalDeleted bool
}

type EventService struct {
	l      *zap.Logger
	events repositories.Records[models.Event]
	store  media.Store
}

func NewEventService(l *zap.Logger, events repositories.Records[models.Event], store media.Store) *EventService {
	return &EventService{
		l:      l,
		events: events,
		store:  store,
	}
}

// Create 校验并上传图片，然后保存活动记录。
// 校验失败时不会调用图床；记录保存失败时会尝试删除刚上传的文件。
func (s *EventService) Create(ctx context.Context, fh *multipart.FileHeader) (*models.Event, error) {
	upload, closeFile, err := media.Open(fh)
	if err != nil {
		return nil, err
	}
	defer closeFile()

	// 上传到图床
	obj, err := s.store.Upload(ctx, upload)
	if err != nil {
		if errors.Is(err, media.ErrBadResult) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if obj.URL == "" || obj.Ref == "" {
		return nil, media.ErrBadResult
	}

	// 地址与删除句柄一起保存
	event := &models.Event{
		ImageURL:    obj.URL,
		ExternalRef: obj.Ref,
	}
	if err := s.events.Create(ctx, event); err != nil {
		// 清理已经上传的文件，失败时只记录日志
		if delErr := s.store.Delete(context.WithoutCancel(ctx), obj.Ref); delErr != nil {
			s.l.Warn("failed to remove orphaned upload", zap.String("ref", obj.Ref), zap.Error(delErr))
		}
		return nil, fmt.Errorf("save event: %w", err)
	}

	return event, nil
}

// Delete 先尝试删除图床上的文件，无论成功与否都会删除本地记录
func (s *EventService) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	event, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var res DeleteResult

	if event.ExternalRef != "" {
		if err := s.store.Delete(ctx, event.ExternalRef); err != nil {
			s.l.Warn("failed to delete image from media store",
				zap.Uint("id", id),
				zap.String("ref", event.ExternalRef),
				zap.Error(err),
			)
		} else {
			res.ExternalDeleted = true
		}
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return &res, err
	}
	res.LocalDeleted = true

	return &res, nil
}
