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
)

func (a *App) queryMapFields(req *QueryUpdateRequest, query *models.Query) error {
	if status := trimmed(req.Status); status != nil {
		if !queryStatuses[*status] {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for status")
		}
		query.Status = *status
	}
	if priority := trimmed(req.Priority); priority != nil {
		if !queryPriorities[*priority] {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for priority")
		}
		query.Priority = *priority
	}
	if notes := trimmed(req.AdminNotes); notes != nil {
		query.AdminNotes = *notes
	}

	return nil
}

func (a *App) QueryList(c echo.Context) error {
	rctx := c.Request().Context()

	opts, err := a.listOptions(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest, "Invalid pagination")
	}

	queries, count, err := a.queries.List(rctx, opts)
	if err != nil {
		return fmt.Errorf("list queries: %w", err)
	}

	return c.JSON(http.StatusOK, listResponse(a, queries, count, opts))
}

// QueryCreate 是公开的联系表单提交
func (a *App) QueryCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req QueryCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	for _, field := range []*string{&req.Name, &req.Email, &req.Subject, &req.Message, &req.Priority} {
		*field = strings.TrimSpace(*field)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	query := models.Query{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		Status:   models.QueryStatusNew,
		Priority: models.QueryPriorityMedium,
	}
	if req.Priority != "" {
		query.Priority = req.Priority
	}

	if err := a.queries.Create(rctx, &query); err != nil {
		return fmt.Errorf("create query: %w", err)
	}

	return c.JSON(http.StatusCreated, &DataResponse[*models.Query]{
		Status: statusSuccess,
		Data:   &query,
	})
}

func (a *App) QueryGet(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.paramID(c)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Query not found")
	}

	query, err := a.queries.Get(rctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Query not found")
		}
		return fmt.Errorf("get query %d: %w", id, err)
	}

	return c.JSON(http.StatusOK, &DataResponse[*models.Query]{
		Status: statusSuccess,
		Data:   query,
	})
}

// QueryUpdate 供管理员处理留言：状态、优先级与备注
func (a *App) QueryUpdate(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.paramID(c)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Query not found")
	}

	// 绑定请求体
	var req QueryUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	query, err := a.queries.Get(rctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Query not found")
		}
		return fmt.Errorf("get query %d: %w", id, err)
	}

	if err := a.queryMapFields(&req, query); err != nil {
		return err
	}

	if err := a.queries.Update(rctx, query); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Query not found")
		}
		return fmt.Errorf("update query %d: %w", id, err)
	}

	return c.JSON(http.StatusOK, &DataResponse[*models.Query]{
		Status: statusSuccess,
		Data:   query,
	})
}

func (a *App) QueryDelete(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := a.paramID(c)
	if err != nil {
		return a.er(c, http.StatusNotFound, "Query not found")
	}

	if err := a.queries.Delete(rctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return a.er(c, http.StatusNotFound, "Query not found")
		}
		return fmt.Errorf("delete query %d: %w", id, err)
	}

	return c.JSON(http.StatusOK, &SuccessMessage{
		Status:  statusSuccess,
		Message: "Query deleted",
	})
}
