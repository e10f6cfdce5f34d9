package handlers

import (
	"college-portal/app/server/models"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminUsername, adminPassword)

	rec := env.doJSON(t, http.MethodPost, "/api/notices", token, map[string]string{
		"title":   "Exam",
		"content": "Exams start Monday",
		"date":    "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[models.Notice](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Exam", created.Title)
	assert.Equal(t, "Exams start Monday", created.Content)
	assert.True(t, created.Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	// 公开列表，最新的在最前
	rec = env.doJSON(t, http.MethodGet, "/api/notices", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[ListResponse[models.Notice]](t, rec)
	require.NotEmpty(t, list.Data)
	assert.Equal(t, created.ID, list.Data[0].ID)

	path := "/api/notices/" + strconv.FormatUint(uint64(created.ID), 10)

	rec = env.doJSON(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msg := decode[SuccessMessage](t, rec)
	assert.Equal(t, "Notice deleted.", msg.Message)

	rec = env.doJSON(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoticeListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminUsername, adminPassword)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	step := 0
	env.notices.SetClock(func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	})

	for i := 1; i <= 3; i++ {
		rec := env.doJSON(t, http.MethodPost, "/api/notices", token, map[string]string{
			"title":   fmt.Sprintf("Notice %d", i),
			"content": "Body",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.doJSON(t, http.MethodGet, "/api/notices", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[ListResponse[models.Notice]](t, rec)
	require.Len(t, list.Data, 3)
	assert.Equal(t, int64(3), list.Total)
	assert.Nil(t, list.PageMax)
	for i := 1; i < len(list.Data); i++ {
		assert.False(t, list.Data[i].CreatedAt.After(list.Data[i-1].CreatedAt))
	}
	assert.Equal(t, "Notice 3", list.Data[0].Title)

	// 分页
	rec = env.doJSON(t, http.MethodGet, "/api/notices?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = decode[ListResponse[models.Notice]](t, rec)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Notice 1", list.Data[0].Title)
	require.NotNil(t, list.PageMax)
	assert.Equal(t, int64(2), *list.PageMax)

	rec = env.doJSON(t, http.MethodGet, "/api/notices?page=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoticeListPaginationBounds(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminUsername, adminPassword)

	for i := 0; i < 3; i++ {
		rec := env.doJSON(t, http.MethodPost, "/api/notices", token, map[string]string{
			"title":   fmt.Sprintf("Notice %d", i),
			"content": "Body",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// 过大的 limit 被限制为 100
	rec := env.doJSON(t, http.MethodGet, "/api/notices?page=1&limit=18446744073709551615", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[ListResponse[models.Notice]](t, rec)
	assert.Len(t, list.Data, 3)
	require.NotNil(t, list.PageMax)
	assert.Equal(t, int64(1), *list.PageMax)

	for _, query := range []string{
		"page=18446744073709551615&limit=10",
		"page=2147483648&limit=10",
		"limit=18446744073709551616",
	} {
		rec = env.doJSON(t, http.MethodGet, "/api/notices?"+query, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}

	rec = env.doJSON(t, http.MethodGet, "/api/notices?page=2147483647&limit=100", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = decode[ListResponse[models.Notice]](t, rec)
	assert.Empty(t, list.Data)
}

func TestNoticeCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminUsername, adminPassword)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing title", map[string]string{"content": "Body"}},
		{"missing content", map[string]string{"title": "Title"}},
		{"blank title", map[string]string{"title": "   ", "content": "Body"}},
		{"bad date", map[string]string{"title": "Title", "content": "Body", "date": "next tuesday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/notices", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			res := decode[ErrorMessage](t, rec)
			assert.Equal(t, "error", res.Status)
			assert.NotEmpty(t, res.Message)
		})
	}

	assert.Zero(t, env.notices.Len())
}

func TestNoticeCreateDefaultsDateToNow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminUsername, adminPassword)

	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	env.app.now = func() time.Time { return now }

	rec := env.doJSON(t, http.MethodPost, "/api/notices", token, map[string]string{
		"title":   "Holiday",
		"content": "Campus closed",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[models.Notice](t, rec)
	assert.True(t, created.Date.Equal(now))
}

func TestNoticePartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminUsername, adminPassword)

	rec := env.doJSON(t, http.MethodPost, "/api/notices", token, map[string]string{
		"title":   "Exam",
		"content": "Exams start Monday",
		"date":    "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Notice](t, rec)
	path := "/api/notices/" + strconv.FormatUint(uint64(created.ID), 10)

	rec = env.doJSON(t, http.MethodPut, path, token, map[string]string{"title": "Final Exam"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[models.Notice](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Final Exam", updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.True(t, created.Date.Equal(updated.Date))

	rec = env.doJSON(t, http.MethodPut, path, token, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodPut, "/api/notices/999", token, map[string]string{"title": "Nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoticeWriteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.login(t, "viewer", "viewer-password")
	body := map[string]string{"title": "Exam", "content": "Exams start Monday"}

	rec := env.doJSON(t, http.MethodPost, "/api/notices", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", decode[ErrorMessage](t, rec).Message)

	rec = env.doJSON(t, http.MethodPost, "/api/notices", "not-a-token", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode[ErrorMessage](t, rec).Message)

	rec = env.doJSON(t, http.MethodPost, "/api/notices", viewer, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Zero(t, env.notices.Len())
}

func TestNoticeCreateRateLimited(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, adminUsername, adminPassword)
	body := map[string]string{"title": "Exam", "content": "Exams start Monday"}

	for i := 0; i < 30; i++ {
		rec := env.doJSON(t, http.MethodPost, "/api/notices", token, body)
		require.Equal(t, http.StatusCreated, rec.Code, "request %d", i+1)
	}

	rec := env.doJSON(t, http.MethodPost, "/api/notices", token, body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests, please try again later.", decode[ErrorMessage](t, rec).Message)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, 30, env.notices.Len())

	// 读取不受限
	rec = env.doJSON(t, http.MethodGet, "/api/notices", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
