package handlers

import (
	"bytes"
	"college-portal/app/server/constants"
	"college-portal/app/server/jwt"
	"college-portal/app/server/media/mediatest"
	"college-portal/app/server/models"
	"college-portal/app/server/ratelimit"
	"college-portal/app/server/repositories/repotest"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminUsername = "admin"
	adminPassword = "YourStrongPassword"
)

type testEnv struct {
	e        *echo.Echo
	app      *App
	jwt      *jwt.JWT
	accounts *repotest.Accounts
	notices  *repotest.Records[models.Notice]
	events   *repotest.Records[models.Event]
	queries  *repotest.Records[models.Query]
	media    *mediatest.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	j, err := jwt.New("test-secret", constants.AuthTokenDuration)
	require.NoError(t, err)

	env := &testEnv{
		e:        echo.New(),
		jwt:      j,
		accounts: repotest.NewAccounts(),
		notices:  repotest.NewRecords[models.Notice](),
		events:   repotest.NewRecords[models.Event](),
		queries:  repotest.NewRecords[models.Query](),
		media:    mediatest.NewStore(),
	}

	admin := &models.Account{Username: adminUsername, IsAdmin: true}
	admin.SetPassword(adminPassword)
	require.NoError(t, env.accounts.Create(ctx, admin))
	viewer := &models.Account{Username: "viewer"}
	viewer.SetPassword("viewer-password")
	require.NoError(t, env.accounts.Create(ctx, viewer))

	env.app = NewApp(zap.NewNop(), Stores{
		Accounts: env.accounts,
		Notices:  env.notices,
		Events:   env.events,
		Queries:  env.queries,
		Media:    env.media,
	}, j, true)

	store := ratelimit.NewMemoryStore()
	newLimiter := func(group string, max int64) *ratelimit.Limiter {
		l, err := ratelimit.New(store, group, max, constants.RateLimitWindow)
		require.NoError(t, err)
		return l
	}

	env.e.IPExtractor = echo.ExtractIPDirect()
	env.app.RegisterHandlers(env.e, Limiters{
		Events:  newLimiter(constants.RateLimitGroupEvents, constants.RateLimitMaxEvents),
		Notices: newLimiter(constants.RateLimitGroupNotices, constants.RateLimitMaxNotices),
		Queries: newLimiter(constants.RateLimitGroupQueries, constants.RateLimitMaxQueries),
	})

	return env
}

func (env *testEnv) request(t *testing.T, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = "203.0.113.7:40000"
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	return env.request(t, method, path, token, echo.MIMEApplicationJSON, reader)
}

func (env *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	rec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)

	return res.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
