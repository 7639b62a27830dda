package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/config"
	"stockroom/internal/logger"
	"stockroom/internal/middleware"
	"stockroom/internal/model"
	"stockroom/internal/queue"
	"stockroom/internal/repository"
)

// ItemHandler serves the catalogue endpoints.
type ItemHandler struct {
	Items  *repository.ItemRepo
	Events *queue.Publisher
	RDB    *redis.Client
	Cache  config.CacheConfig
}

func NewItemHandler(repo *repository.ItemRepo, events *queue.Publisher, rdb *redis.Client, cache config.CacheConfig) *ItemHandler {
	return &ItemHandler{Items: repo, Events: events, RDB: rdb, Cache: cache}
}

type itemReq struct {
	Code           *string `json:"code"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	BuyingPrice    float64 `json:"buying_price"`
	SellingPrice   float64 `json:"selling_price"`
	Unit           string  `json:"unit"`
	ManufacturerID *uint64 `json:"manufacturer_id"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type itemListResp struct {
	Data       []model.Item `json:"data"`
	Pagination pagination   `json:"pagination"`
}

// List handles GET /api/items?page&limit&search&manufacturer_id with the
// multi-term search described by the repository layer.
func (h *ItemHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	manufacturerID := c.QueryParam("manufacturer_id")
	if manufacturerID == "" {
		manufacturerID = "all"
	}

	q := repository.ItemQuery{
		Page:           page,
		Limit:          limit,
		Search:         c.QueryParam("search"),
		ManufacturerID: manufacturerID,
	}

	items, total, err := h.Items.Search(c.Request().Context(), q)
	if err != nil {
		logger.FromContext(c.Request().Context()).Error().Err(err).Msg("item search failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, itemListResp{
		Data: items,
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: repository.TotalPages(total, limit),
		},
	})
}

// Create handles POST /api/items. Fields are passed through as-is; required
// fields are enforced by the client form, matching the original behavior.
func (h *ItemHandler) Create(c echo.Context) error {
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	created, err := h.Items.Create(ctx, model.Item{
		Code:           req.Code,
		Name:           req.Name,
		Category:       req.Category,
		BuyingPrice:    req.BuyingPrice,
		SellingPrice:   req.SellingPrice,
		Unit:           req.Unit,
		ManufacturerID: req.ManufacturerID,
	})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("create item failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.afterMutation(c, queue.ActionCreated, created.ID, created.Name)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/items/:id as a full replace of the editable
// fields.
func (h *ItemHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	updated, err := h.Items.Update(ctx, model.Item{
		ID:             id,
		Code:           req.Code,
		Name:           req.Name,
		Category:       req.Category,
		BuyingPrice:    req.BuyingPrice,
		SellingPrice:   req.SellingPrice,
		Unit:           req.Unit,
		ManufacturerID: req.ManufacturerID,
	})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Uint64("id", id).Msg("update item failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.afterMutation(c, queue.ActionUpdated, updated.ID, updated.Name)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/items/:id.
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	if err := h.Items.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Error().Err(err).Uint64("id", id).Msg("delete item failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.afterMutation(c, queue.ActionDeleted, id, "")
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) afterMutation(c echo.Context, action string, id uint64, name string) {
	ctx := c.Request().Context()
	if err := middleware.FlushCache(ctx, h.RDB, h.Cache.Prefix); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("cache flush failed")
	}
	actor := ""
	if u, ok := middleware.CurrentUser(c); ok {
		actor = u.Username
	}
	_ = h.Events.Publish(ctx, queue.StockEvent{
		Entity:     "item",
		Action:     action,
		EntityID:   id,
		Name:       name,
		Actor:      actor,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
