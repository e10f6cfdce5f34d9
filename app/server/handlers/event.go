package handlers

import (
	"college-portal/app/server/constants"
	"college-portal/app/server/media"
	"college-portal/app/server/repositories"
	"college-portal/app/server/services"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) EventList(c echo.Context) error {
	rctx := c.Request().Context()

	opts, err := a.listOptions(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest, "Invalid pagination")
	}

	events, count, err := a.events.List(rctx, opts)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	return c.JSON(http.StatusOK, listResponse(a, events, count, opts))
}

func (a *App) EventCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 提取上传的文件
	fh, err := c.FormFile(constants.MediaFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return a.er(c, http.StatusBadRequest, media.ErrNoFile.Error())
		}
		a.l.Debug("failed to read multipart form", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid file upload data")
	}

	event, err := a.eventSvc.Create(rctx, fh)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNoFile):
			return a.er(c, http.StatusBadRequest, media.ErrNoFile.Error())
		case errors.Is(err, media.ErrNotImage):
			return a.er(c, http.StatusBadRequest, "Only image files are allowed!")
		case errors.Is(err, media.ErrTooLarge):
			return a.er(c, http.StatusBadRequest, "Image file must be 5 MB or smaller")
		case errors.Is(err, media.ErrBadResult):
			return a.er(c, http.StatusBadRequest, "Invalid file upload data")
		case errors.Is(err, services.ErrUpstream):
			a.l.Error("failed to upload image", zap.Error(err))
			return a.er(c, http.StatusInternalServerError, "Server error uploading image")
		}
		return fmt.Errorf("create event: %w", err)
	}

	return c.JSON(http.StatusCreated, event)
}

func (a *App) EventDelete(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.paramID(c)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Event image not found")
	}

	res, err := a.eventSvc.Delete(rctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Event image not found")
		}
		return fmt.Errorf("delete event %d: %w", id, err)
	}

	a.l.Debug("event deleted", zap.Uint("id", id), zap.Bool("externalDeleted", res.ExternalDeleted))

	return c.JSON(http.StatusOK, &SuccessMessage{
		Status:  statusSuccess,
		Message: "Event image deleted successfully",
	})
}
