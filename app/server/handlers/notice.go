package handlers

import (
	"college-portal/app/server/models"
	"college-portal/app/server/repositories"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
	"unicode/utf8"
)

// noticeMapFields 只覆盖请求中提供了的字段
func (a *App) noticeMapFields(req *NoticeUpdateRequest, notice *models.Notice) error {
	if title := trimmed(req.Title); title != nil {
		if *title == "" {
			return echo.NewHTTPError(http.StatusBadRequest, messageMissingFields)
		}
		if utf8.RuneCountInString(*title) > 255 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for title")
		}
		notice.Title = *title
	}
	if content := trimmed(req.Content); content != nil {
		if *content == "" {
			return echo.NewHTTPError(http.StatusBadRequest, messageMissingFields)
		}
		notice.Content = *content
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for date")
		}
		notice.Date = date
	}

	return nil
}

func (a *App) NoticeList(c echo.Context) error {
	rctx := c.Request().Context()

	opts, err := a.listOptions(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest, "Invalid pagination")
	}

	notices, count, err := a.notices.List(rctx, opts)
	if err != nil {
		return fmt.Errorf("list notices: %w", err)
	}

	return c.JSON(http.StatusOK, listResponse(a, notices, count, opts))
}

func (a *App) NoticeCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req NoticeCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := c.Validate(&req); err != nil {
		return err
	}

	// 创建，没有日期时使用当前时间
	notice := models.Notice{
		Title:   req.Title,
		Content: req.Content,
		Date:    a.now(),
	}
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			return a.er(c, http.StatusBadRequest, "Invalid value for date")
		}
		notice.Date = date
	}

	if err := a.notices.Create(rctx, &notice); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}

	return c.JSON(http.StatusCreated, &notice)
}

func (a *App) NoticeGet(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.paramID(c)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Notice not found.")
	}

	// 从数据库中获得
	notice, err := a.notices.Get(rctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Notice not found.")
		}
		return fmt.Errorf("get notice %d: %w", id, err)
	}

	return c.JSON(http.StatusOK, notice)
}

func (a *App) NoticeUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.paramID(c)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Notice not found.")
	}

	// 绑定请求体
	var req NoticeUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	// 从数据库中获得
	notice, err := a.notices.Get(rctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Notice not found.")
		}
		return fmt.Errorf("get notice %d: %w", id, err)
	}

	if err := a.noticeMapFields(&req, notice); err != nil {
		return err
	}

	// 更新信息
	if err := a.notices.Update(rctx, notice); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Notice not found.")
		}
		return fmt.Errorf("update notice %d: %w", id, err)
	}

	return c.JSON(http.StatusOK, notice)
}

func (a *App) NoticeDelete(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.paramID(c)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Notice not found.")
	}

	// 删除
	if err := a.notices.Delete(rctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Notice not found.")
		}
		return fmt.Errorf("delete notice %d: %w", id, err)
	}

	return c.JSON(http.StatusOK, &SuccessMessage{
		Status:  statusSuccess,
		Message: "Notice deleted.",
	})
}
