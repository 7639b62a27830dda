package handler

import (
	"database/sql"
	"encoding/base64"
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

	"stockroom/internal/repository"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthHandler(repository.NewUserRepo(db)), mock
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(7, "alice", string(hash), time.Now()))

	rec := postLogin(t, h, `{"username":"alice","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       uint64 `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(7), resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)

	raw, err := base64.StdEncoding.DecodeString(resp.Token)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "alice:"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginMissingFields(t *testing.T) {
	h, _ := newAuthHandler(t)
	for _, body := range []string{
		`{}`,
		`{"username":"alice"}`,
		`{"password":"hunter2"}`,
		`{"username":"   ","password":"hunter2"}`,
	} {
		rec := postLogin(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, `{"error":"Username and password are required"}`, rec.Body.String())
	}
}

func TestLoginUnknownUser(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	rec := postLogin(t, h, `{"username":"ghost","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", string(hash), time.Now()))

	rec := postLogin(t, h, `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}
