package handlers

import (
	"college-portal/app/server/repositories"
	"errors"
	"github.com/labstack/echo/v4"
	"math"
)

const (
	paginationDefaultLimit = 100
	paginationMaxLimit     = 100
	paginationMaxPage      = math.MaxInt32
)

var errPageOutOfRange = errors.New("page out of range")

func (a *App) parsePagination(page *uint, limit *uint) (bool, int, int, error) {
	if page == nil && limit == nil {
		// 没有分页参数：展示全部
		return true, -1, -1, nil
	}
	if page != nil && *page == 0 && limit != nil && *limit == 0 {
		// 特殊参数：展示全部
		return true, -1, -1, nil
	}
	// 映射前：第几页，每页限制多少个
	// 映射后：页减一，限制不变
	var parsedPage, parsedLimit uint

	if page == nil || *page < 1 {
		parsedPage = 0
	} else if *page > paginationMaxPage {
		return false, 0, 0, errPageOutOfRange
	} else {
		parsedPage = *page - 1
	}

	if limit == nil || *limit <= 0 {
		parsedLimit = paginationDefaultLimit
	} else if *limit > paginationMaxLimit {
		parsedLimit = paginationMaxLimit
	} else {
		parsedLimit = *limit
	}

	return false, int(parsedPage), int(parsedLimit), nil
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	} else {
		pageMax := count / int64(limit)
		if (count % int64(limit)) != 0 {
			pageMax++
		}
		return pageMax
	}
}

// listOptions 从 ?page=&limit= 中读取分页参数
func (a *App) listOptions(c echo.Context) (repositories.ListOptions, error) {
	var page, limit *uint

	b := echo.QueryParamsBinder(c)
	if c.QueryParam("page") != "" {
		page = new(uint)
		b = b.Uint("page", page)
	}
	if c.QueryParam("limit") != "" {
		limit = new(uint)
		b = b.Uint("limit", limit)
	}
	if err := b.BindError(); err != nil {
		return repositories.ListOptions{}, err
	}

	showAll, p, l, err := a.parsePagination(page, limit)
	if err != nil {
		return repositories.ListOptions{}, err
	}
	return repositories.ListOptions{ShowAll: showAll, Page: p, Limit: l}, nil
}

func listResponse[T any](a *App, records []T, count int64, opts repositories.ListOptions) *ListResponse[T] {
	if records == nil {
		records = []T{}
	}

	res := &ListResponse[T]{
		Status: statusSuccess,
		Data:   records,
		Total:  count,
	}
	if !opts.ShowAll {
		pageMax := a.calcMaxPage(count, false, opts.Limit)
		res.PageMax = &pageMax
	}

	return res
}
