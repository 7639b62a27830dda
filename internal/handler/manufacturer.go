package handler

import (
	"net/http"
	"strconv"
	"strings"
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

// ManufacturerHandler serves the supplier CRUD endpoints.
type ManufacturerHandler struct {
	Manufacturers *repository.ManufacturerRepo
	Events        *queue.Publisher
	RDB           *redis.Client
	Cache         config.CacheConfig
}

func NewManufacturerHandler(repo *repository.ManufacturerRepo, events *queue.Publisher, rdb *redis.Client, cache config.CacheConfig) *ManufacturerHandler {
	return &ManufacturerHandler{Manufacturers: repo, Events: events, RDB: rdb, Cache: cache}
}

type manufacturerReq struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Color         string  `json:"color"`
}

// List handles GET /api/manufacturers: every supplier, name-ascending,
// unpaginated.
func (h *ManufacturerHandler) List(c echo.Context) error {
	out, err := h.Manufacturers.List(c.Request().Context())
	if err != nil {
		logger.FromContext(c.Request().Context()).Error().Err(err).Msg("list manufacturers failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/manufacturers. Name is the only validated field;
// when no badge color is supplied one is assigned from the palette,
// avoiding colors already in use.
func (h *ManufacturerHandler) Create(c echo.Context) error {
	var req manufacturerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name is required"})
	}

	ctx := c.Request().Context()
	if req.Color == "" {
		used, err := h.Manufacturers.UsedColors(ctx)
		if err != nil {
			logger.FromContext(ctx).Error().Err(err).Msg("used colors lookup failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		req.Color = model.NextColor(used)
	}

	created, err := h.Manufacturers.Create(ctx, model.Manufacturer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Color:         req.Color,
	})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("create manufacturer failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.afterMutation(c, queue.ActionCreated, created.ID, created.Name)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/manufacturers/:id as a full replace of the
// editable fields.
func (h *ManufacturerHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req manufacturerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	updated, err := h.Manufacturers.Update(ctx, model.Manufacturer{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Color:         req.Color,
	})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Uint64("id", id).Msg("update manufacturer failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.afterMutation(c, queue.ActionUpdated, updated.ID, updated.Name)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/manufacturers/:id. Items referencing the
// supplier are orphaned to NULL by the schema, not checked here.
func (h *ManufacturerHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	if err := h.Manufacturers.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Error().Err(err).Uint64("id", id).Msg("delete manufacturer failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.afterMutation(c, queue.ActionDeleted, id, "")
	return c.NoContent(http.StatusNoContent)
}

// afterMutation flushes the response cache and publishes a stock event.
// Both are best-effort; the mutation already succeeded.
func (h *ManufacturerHandler) afterMutation(c echo.Context, action string, id uint64, name string) {
	ctx := c.Request().Context()
	if err := middleware.FlushCache(ctx, h.RDB, h.Cache.Prefix); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("cache flush failed")
	}
	actor := ""
	if u, ok := middleware.CurrentUser(c); ok {
		actor = u.Username
	}
	_ = h.Events.Publish(ctx, queue.StockEvent{
		Entity:     "manufacturer",
		Action:     action,
		EntityID:   id,
		Name:       name,
		Actor:      actor,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
