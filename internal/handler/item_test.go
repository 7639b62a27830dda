package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/config"
	"stockroom/internal/queue"
	"stockroom/internal/repository"
)

var itemRowColumns = []string{
	"id", "code", "name", "category",
	"buying_price", "selling_price", "unit",
	"manufacturer_id", "created_at",
	"m_name", "m_color",
}

func newItemHandler(t *testing.T) (*ItemHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	manufacturers := repository.NewManufacturerRepo(db)
	items := repository.NewItemRepo(db, manufacturers)
	return NewItemHandler(items, queue.NewPublisher(""), nil, config.CacheConfig{}), mock
}

func TestItemListPagination(t *testing.T) {
	h, mock := newItemHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items i`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery(`FROM items i LEFT JOIN manufacturers m`).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(4, "HM-01", "hammer", "tools", 50.0, 80.0, "pcs", 1, time.Now(), "Acme", "#ef4444").
			AddRow(9, nil, "nails", "tools", 2.0, 3.0, "box", nil, time.Now(), nil, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/items?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Name          string  `json:"name"`
			ProfitPercent float64 `json:"profit_percent"`
			Manufacturer  *struct {
				Name string `json:"name"`
			} `json:"manufacturer"`
		} `json:"data"`
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 5, resp.Pagination.Limit)
	assert.Equal(t, int64(23), resp.Pagination.Total)
	assert.Equal(t, int64(5), resp.Pagination.TotalPages)

	require.Len(t, resp.Data, 2)
	assert.Equal(t, "hammer", resp.Data[0].Name)
	assert.InDelta(t, 60.0, resp.Data[0].ProfitPercent, 0.001)
	require.NotNil(t, resp.Data[0].Manufacturer)
	assert.Equal(t, "Acme", resp.Data[0].Manufacturer.Name)
	assert.Nil(t, resp.Data[1].Manufacturer, "items without a supplier still list")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemListDefaults(t *testing.T) {
	h, mock := newItemHandler(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items i`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM items i LEFT JOIN manufacturers m`).
		WillReturnRows(sqlmock.NewRows(itemRowColumns))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp itemListResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, int64(0), resp.Pagination.TotalPages)
	assert.Empty(t, resp.Data)
}

func TestItemListSearchError(t *testing.T) {
	h, mock := newItemHandler(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items i`).
		WillReturnError(assert.AnError)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestItemDeleteNoContent(t *testing.T) {
	h, mock := newItemHandler(t)
	mock.ExpectExec("DELETE FROM items WHERE id=").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/items/4", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
