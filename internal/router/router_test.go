package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/config"
	"stockroom/internal/handler"
	"stockroom/internal/logger"
	"stockroom/internal/queue"
	"stockroom/internal/repository"
)

// newTestServer wires the full route table against a mocked database, with
// redis and the event queue disabled.
func newTestServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := repository.NewUserRepo(db)
	manufacturers := repository.NewManufacturerRepo(db)
	items := repository.NewItemRepo(db, manufacturers)
	events := queue.NewPublisher("")

	e := echo.New()
	e.HideBanner = true
	Register(e, Deps{
		Log:           logger.New("test"),
		Users:         users,
		Auth:          handler.NewAuthHandler(users),
		Manufacturers: handler.NewManufacturerHandler(manufacturers, events, nil, config.CacheConfig{}),
		Items:         handler.NewItemHandler(items, events, nil, config.CacheConfig{}),
		RDB:           nil,
		Cache:         config.CacheConfig{},
		RateLimit:     config.RateLimitConfig{},
		TokenTTL:      24 * time.Hour,
	})
	return e, mock
}

func userRows(hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow(1, "alice", hash, time.Now())
}

func TestLoginThenListItems(t *testing.T) {
	e, mock := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	// Login resolves the user once.
	mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(userRows(string(hash)))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice","password":"hunter2"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	// The gate resolves the user again, then the catalogue queries run.
	mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(userRows(string(hash)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items i`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM items i LEFT JOIN manufacturers m`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "name", "category",
			"buying_price", "selling_price", "unit",
			"manufacturer_id", "created_at",
			"m_name", "m_color",
		}))

	req = httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Pagination struct {
			Page int `json:"page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Pagination.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _ := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/items"},
		{http.MethodPost, "/api/items"},
		{http.MethodGet, "/api/manufacturers"},
		{http.MethodDelete, "/api/manufacturers/1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	}
}

func TestHealthzIsPublic(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeaderSet(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
